package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkChatModel 让火山方舟模型满足 ToolCallingChatModel。
// ark 只提供会修改自身的 BindTools，这里在副本上绑定工具。
type ArkChatModel struct {
	*ark.ChatModel
}

// NewArkChatModel creates an Ark backed chat model.
func NewArkChatModel(ctx context.Context, cfg *ark.ChatModelConfig) (*ArkChatModel, error) {
	cm, err := ark.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &ArkChatModel{ChatModel: cm}, nil
}

// WithTools returns a copy bound to tools; the receiver is left untouched.
func (m *ArkChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	if m == nil || m.ChatModel == nil {
		return nil, errors.New("ark chat model is not initialized")
	}

	bound := *m.ChatModel
	if err := bound.BindTools(tools); err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}
	return &ArkChatModel{ChatModel: &bound}, nil
}
