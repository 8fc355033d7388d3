package config

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"

	"github.com/lawtalk/backend/internal/service/ai"
)

// NewSearchTool builds the Tavily tool offered to the agent.
func (c SearchConfig) NewSearchTool() (tool.InvokableTool, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	searchTool, err := ai.NewSearchTool(ai.NewTavilySearch(ai.TavilyConfig{
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		MaxResults: c.MaxResults,
		Timeout:    c.Timeout,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create search tool: %w", err)
	}
	return searchTool, nil
}

// NewAssistant wires the chat model, the search tool and the agent into the
// assistant service. Any failure here should stop the process.
func (c *Config) NewAssistant(ctx context.Context) (*ai.Service, error) {
	chatModel, err := c.AI.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	searchTool, err := c.Search.NewSearchTool()
	if err != nil {
		return nil, err
	}

	agent, err := ai.NewReactAgent(ctx, chatModel, []tool.BaseTool{searchTool}, c.AI.MaxStep)
	if err != nil {
		return nil, err
	}

	return ai.NewService(agent, ai.WithTimeout(c.AI.Timeout)), nil
}
