package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawtalk/backend/internal/service/ai"
)

func TestNewAssistant(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TAVILY_API_KEY", "tvly-test")

	cfg, err := Load()
	require.NoError(t, err)

	assistant, err := cfg.NewAssistant(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, assistant)
}

func TestNewAssistantFailsWithoutSearchKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.NewAssistant(context.Background())
	assert.ErrorContains(t, err, "TAVILY_API_KEY")
}

func TestNewSearchTool(t *testing.T) {
	cfg := SearchConfig{APIKey: "tvly-test", MaxResults: 1}

	searchTool, err := cfg.NewSearchTool()
	require.NoError(t, err)

	info, err := searchTool.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ai.SearchToolName, info.Name)
}
