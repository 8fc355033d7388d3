package ai_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawtalk/backend/internal/model/chat"
	"github.com/lawtalk/backend/internal/service/ai"
)

// scriptedModel asks for one search and then answers.
type scriptedModel struct {
	mu    sync.Mutex
	calls [][]*schema.Message
	tools []*schema.ToolInfo
}

func (m *scriptedModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, input)

	if len(m.calls) == 1 {
		return schema.AssistantMessage("", []schema.ToolCall{{
			ID:   "call-1",
			Type: "function",
			Function: schema.FunctionCall{
				Name:      ai.SearchToolName,
				Arguments: `{"query":"임대차 계약"}`,
			},
		}}), nil
	}
	return schema.AssistantMessage("임대차 계약은 ...", nil), nil
}

func (m *scriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *scriptedModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	m.mu.Lock()
	m.tools = tools
	m.mu.Unlock()
	return m, nil
}

func TestReactAgentRunsSearchThenAnswers(t *testing.T) {
	srv, received := newTavilyServer(t, []ai.SearchResult{{URL: "https://law.go.kr/1", Content: "주택임대차보호법"}})
	searchTool, err := ai.NewSearchTool(ai.NewTavilySearch(ai.TavilyConfig{APIKey: "tvly-test", BaseURL: srv.URL}))
	require.NoError(t, err)

	chatModel := &scriptedModel{}
	agent, err := ai.NewReactAgent(context.Background(), chatModel, []tool.BaseTool{searchTool}, 6)
	require.NoError(t, err)

	svc := ai.NewService(agent)
	answer, err := svc.Answer(context.Background(), "임대차 계약이 뭐야?", []chat.Exchange{{Question: "안녕", Answer: ai.GreetingReply}})
	require.NoError(t, err)
	assert.Equal(t, "임대차 계약은 ...", answer)

	assert.Equal(t, "임대차 계약", (*received)["query"])
	require.Len(t, chatModel.tools, 1)
	assert.Equal(t, ai.SearchToolName, chatModel.tools[0].Name)

	require.Len(t, chatModel.calls, 2)
	second := chatModel.calls[1]
	last := second[len(second)-1]
	assert.Equal(t, schema.Tool, last.Role)
	assert.Contains(t, last.Content, "주택임대차보호법")
}

func TestReactAgentInvokeKeepsInputState(t *testing.T) {
	noop, err := utils.InferTool("noop", "does nothing", func(context.Context, ai.SearchInput) (string, error) {
		return "", nil
	})
	require.NoError(t, err)

	chatModel := &scriptedModel{calls: [][]*schema.Message{nil}}
	agent, err := ai.NewReactAgent(context.Background(), chatModel, []tool.BaseTool{noop}, 6)
	require.NoError(t, err)

	input := ai.BuildMessages("질문", nil)
	output, err := agent.Invoke(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, output, len(input)+1)
	assert.Equal(t, input[0], output[0])
	assert.Equal(t, "임대차 계약은 ...", output[len(output)-1].Content)
}

func TestNewReactAgentRequiresModel(t *testing.T) {
	_, err := ai.NewReactAgent(context.Background(), nil, nil, 6)
	assert.Error(t, err)
}
