package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

var _ model.ToolCallingChatModel = (*OpenAIChatModel)(nil)

// OpenAIConfig configures OpenAIChatModel.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// OpenAIChatModel adapts the chat completions API to eino's chat model
// interface so the ReAct agent can drive it.
type OpenAIChatModel struct {
	api   *openai.Client
	cfg   OpenAIConfig
	tools []openai.Tool
}

// NewOpenAIChatModel creates a model bound to no tools.
func NewOpenAIChatModel(cfg OpenAIConfig) *OpenAIChatModel {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIChatModel{
		api: openai.NewClientWithConfig(clientCfg),
		cfg: cfg,
	}
}

// WithTools returns a copy of the model that offers tools on every request.
func (m *OpenAIChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	converted, err := toAPITools(tools)
	if err != nil {
		return nil, err
	}
	clone := *m
	clone.tools = converted
	return &clone, nil
}

// Generate sends one chat completion request and returns the first choice.
func (m *OpenAIChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	req, err := m.buildRequest(input, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := m.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai returned empty response")
	}

	choice := resp.Choices[0]
	out := fromAPIMessage(choice.Message)
	out.ResponseMeta = &schema.ResponseMeta{
		FinishReason: string(choice.FinishReason),
		Usage: &schema.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	return out, nil
}

// Stream generates the full message and emits it as a single chunk.
func (m *OpenAIChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (m *OpenAIChatModel) buildRequest(input []*schema.Message, opts ...model.Option) (openai.ChatCompletionRequest, error) {
	temperature := m.cfg.Temperature
	maxTokens := m.cfg.MaxTokens
	modelName := m.cfg.Model
	options := model.GetCommonOptions(&model.Options{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Model:       &modelName,
	}, opts...)

	tools := m.tools
	if len(options.Tools) > 0 {
		converted, err := toAPITools(options.Tools)
		if err != nil {
			return openai.ChatCompletionRequest{}, err
		}
		tools = converted
	}

	req := openai.ChatCompletionRequest{
		Model:    *options.Model,
		Messages: toAPIMessages(input),
		Tools:    tools,
	}
	if options.Temperature != nil {
		req.Temperature = *options.Temperature
	}
	if options.MaxTokens != nil {
		req.MaxCompletionTokens = *options.MaxTokens
	}
	return req, nil
}

func toAPIMessages(msgs []*schema.Message) []openai.ChatCompletionMessage {
	res := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, msg := range msgs {
		if msg == nil {
			continue
		}

		apiMsg := openai.ChatCompletionMessage{
			Content: msg.Content,
		}
		switch msg.Role {
		case schema.System:
			apiMsg.Role = openai.ChatMessageRoleSystem
		case schema.Assistant:
			apiMsg.Role = openai.ChatMessageRoleAssistant
			for _, call := range msg.ToolCalls {
				apiMsg.ToolCalls = append(apiMsg.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Function.Name,
						Arguments: call.Function.Arguments,
					},
				})
			}
		case schema.Tool:
			apiMsg.Role = openai.ChatMessageRoleTool
			apiMsg.ToolCallID = msg.ToolCallID
		default:
			apiMsg.Role = openai.ChatMessageRoleUser
		}
		res = append(res, apiMsg)
	}
	return res
}

func fromAPIMessage(msg openai.ChatCompletionMessage) *schema.Message {
	out := &schema.Message{
		Role:    schema.Assistant,
		Content: msg.Content,
	}
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
			ID:   call.ID,
			Type: string(call.Type),
			Function: schema.FunctionCall{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		})
	}
	return out
}

func toAPITools(tools []*schema.ToolInfo) ([]openai.Tool, error) {
	res := make([]openai.Tool, 0, len(tools))
	for _, info := range tools {
		if info == nil {
			continue
		}

		params := json.RawMessage(`{"type":"object","properties":{}}`)
		if info.ParamsOneOf != nil {
			js, err := info.ParamsOneOf.ToJSONSchema()
			if err != nil {
				return nil, fmt.Errorf("failed to convert parameters of tool %s: %w", info.Name, err)
			}
			if js != nil {
				raw, err := json.Marshal(js)
				if err != nil {
					return nil, fmt.Errorf("failed to encode parameters of tool %s: %w", info.Name, err)
				}
				params = raw
			}
		}

		res = append(res, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        info.Name,
				Description: info.Desc,
				Parameters:  params,
			},
		})
	}
	return res, nil
}
