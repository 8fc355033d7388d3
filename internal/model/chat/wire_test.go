package chat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawtalk/backend/internal/model/chat"
)

func TestCurrentQueryEmptyContents(t *testing.T) {
	var req chat.ChatRequest
	require.NoError(t, json.Unmarshal([]byte(`{"contents":[]}`), &req))
	assert.Equal(t, "", req.CurrentQuery())
}

func TestCurrentQueryUsesLastTurnFirstPart(t *testing.T) {
	req := chat.ChatRequest{Contents: []chat.Turn{
		{Role: "user", Parts: []map[string]string{{"text": "first"}}},
		{Role: "model", Parts: []map[string]string{{"text": "reply"}}},
		{Role: "user", Parts: []map[string]string{{"text": "last"}, {"text": "ignored"}}},
	}}
	assert.Equal(t, "last", req.CurrentQuery())
}

func TestCurrentQueryMissingTextKey(t *testing.T) {
	req := chat.ChatRequest{Contents: []chat.Turn{
		{Role: "user", Parts: []map[string]string{{"inlineData": "abc"}}},
	}}
	assert.Equal(t, "", req.CurrentQuery())

	req = chat.ChatRequest{Contents: []chat.Turn{{Role: "user"}}}
	assert.Equal(t, "", req.CurrentQuery())
}

func TestNewChatResponseShape(t *testing.T) {
	data, err := json.Marshal(chat.NewChatResponse("임대차 계약은 ..."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"임대차 계약은 ..."}]}}]}`, string(data))
}
