package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/lawtalk/backend/internal/service/ai"
)

const (
	ProviderOpenAI = "openai"
	ProviderArk    = "ark"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Search SearchConfig
	Chat   ChatConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	aiCfg, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	search, err := loadSearchConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: aiCfg, Search: search, Chat: chat}, nil
}

// Validate 一次性汇总所有缺失的凭据，启动时直接失败。
func (c *Config) Validate() error {
	var errs []error
	if err := c.AI.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Search.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8000" 或 "127.0.0.1:8000"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig 描述大模型及 agent 相关配置。
type AIConfig struct {
	Provider    string
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature float32
	MaxTokens   int
	MaxStep     int
	Timeout     time.Duration
}

// Validate checks that the selected provider has its credential and model.
func (c AIConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.APIKey == "" {
			return errors.New("OPENAI_API_KEY is required")
		}
	case ProviderArk:
		if c.APIKey == "" && (c.AccessKey == "" || c.SecretKey == "") {
			return errors.New("ARK_API_KEY or ARK_ACCESS_KEY + ARK_SECRET_KEY is required")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model name is required for provider %s", c.Provider)
	}
	return nil
}

// NewChatModel 按配置的提供方创建支持工具调用的模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ToolCallingChatModel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	temperature := c.Temperature
	maxTokens := c.MaxTokens

	switch c.Provider {
	case ProviderArk:
		cm, err := ai.NewArkChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     c.BaseURL,
			Region:      c.Region,
			APIKey:      c.APIKey,
			AccessKey:   c.AccessKey,
			SecretKey:   c.SecretKey,
			Model:       c.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create ark chat model: %w", err)
		}
		return cm, nil
	default:
		return ai.NewOpenAIChatModel(ai.OpenAIConfig{
			APIKey:      c.APIKey,
			BaseURL:     c.BaseURL,
			Model:       c.Model,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		}), nil
	}
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI))

	temperature, err := parseOptionalFloat32Env("LLM_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("LLM_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	maxStep, err := parseOptionalIntEnv("AGENT_MAX_STEP")
	if err != nil {
		return AIConfig{}, err
	}

	timeout, err := parseDurationEnv("AGENT_TIMEOUT", 60*time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	cfg := AIConfig{
		Provider:    provider,
		Temperature: 0.5,
		MaxTokens:   1024,
		MaxStep:     12,
		Timeout:     timeout,
	}
	if temperature != nil {
		cfg.Temperature = *temperature
	}
	if maxTokens != nil {
		cfg.MaxTokens = *maxTokens
	}
	if maxStep != nil && *maxStep > 0 {
		cfg.MaxStep = *maxStep
	}

	switch provider {
	case ProviderArk:
		cfg.APIKey = strings.TrimSpace(os.Getenv("ARK_API_KEY"))
		cfg.AccessKey = strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY"))
		cfg.SecretKey = strings.TrimSpace(os.Getenv("ARK_SECRET_KEY"))
		cfg.Model = strings.TrimSpace(os.Getenv("ARK_MODEL"))
		cfg.BaseURL = getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3")
		cfg.Region = getEnvOrDefault("ARK_REGION", "cn-beijing")
	default:
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		cfg.Model = getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini")
		cfg.BaseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	}

	return cfg, nil
}

// SearchConfig 描述 Tavily 搜索工具配置。
type SearchConfig struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
}

// Validate checks the search credential.
func (c SearchConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("TAVILY_API_KEY is required")
	}
	return nil
}

func loadSearchConfig() (SearchConfig, error) {
	maxResults, err := parseOptionalIntEnv("TAVILY_MAX_RESULTS")
	if err != nil {
		return SearchConfig{}, err
	}

	timeout, err := parseDurationEnv("TAVILY_TIMEOUT", 15*time.Second)
	if err != nil {
		return SearchConfig{}, err
	}

	cfg := SearchConfig{
		APIKey:     strings.TrimSpace(os.Getenv("TAVILY_API_KEY")),
		BaseURL:    getEnvOrDefault("TAVILY_BASE_URL", ai.DefaultTavilyBaseURL),
		MaxResults: 1,
		Timeout:    timeout,
	}
	if maxResults != nil && *maxResults > 0 {
		cfg.MaxResults = *maxResults
	}
	return cfg, nil
}

// ChatConfig controls how much history is replayed to the agent.
type ChatConfig struct {
	HistoryLimit int
}

func loadChatConfig() (ChatConfig, error) {
	limit, err := parseOptionalIntEnv("CHAT_HISTORY_LIMIT")
	if err != nil {
		return ChatConfig{}, err
	}
	if limit == nil || *limit < 0 {
		return ChatConfig{}, nil
	}
	return ChatConfig{HistoryLimit: *limit}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	if value == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, value)
	}
	return d, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
