package ai_test

import (
	"context"
	"testing"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawtalk/backend/internal/service/ai"
)

func TestArkChatModelWithToolsReturnsCopy(t *testing.T) {
	cm, err := ai.NewArkChatModel(context.Background(), &ark.ChatModelConfig{APIKey: "ark-test", Model: "doubao-pro"})
	require.NoError(t, err)

	var _ model.ToolCallingChatModel = cm

	info := &schema.ToolInfo{
		Name: ai.SearchToolName,
		Desc: "search the web",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Required: true},
		}),
	}

	bound, err := cm.WithTools([]*schema.ToolInfo{info})
	require.NoError(t, err)
	require.NotNil(t, bound)

	boundArk, ok := bound.(*ai.ArkChatModel)
	require.True(t, ok)
	assert.NotSame(t, cm, boundArk)
	assert.NotSame(t, cm.ChatModel, boundArk.ChatModel)
}

func TestArkChatModelWithToolsRejectsNilInfo(t *testing.T) {
	cm, err := ai.NewArkChatModel(context.Background(), &ark.ChatModelConfig{APIKey: "ark-test", Model: "doubao-pro"})
	require.NoError(t, err)

	_, err = cm.WithTools([]*schema.ToolInfo{nil})
	assert.Error(t, err)
}

func TestArkChatModelWithToolsUninitialized(t *testing.T) {
	_, err := (&ai.ArkChatModel{}).WithTools(nil)
	assert.Error(t, err)
}
