package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
)

// ReactAgent runs eino's ReAct loop: the model decides whether to call a
// tool, tool output is fed back, and the loop ends on a plain answer.
type ReactAgent struct {
	agent *react.Agent
}

// NewReactAgent binds tools to chatModel and compiles the agent graph.
func NewReactAgent(ctx context.Context, chatModel model.ToolCallingChatModel, tools []tool.BaseTool, maxStep int) (*ReactAgent, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: tools,
		},
		MaxStep: maxStep,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile react agent: %w", err)
	}

	return &ReactAgent{agent: agent}, nil
}

// Invoke runs the agent over messages and returns them followed by the final answer.
func (a *ReactAgent) Invoke(ctx context.Context, messages []*schema.Message) ([]*schema.Message, error) {
	final, err := a.agent.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	output := make([]*schema.Message, 0, len(messages)+1)
	output = append(output, messages...)
	if final != nil {
		output = append(output, final)
	}
	return output, nil
}
