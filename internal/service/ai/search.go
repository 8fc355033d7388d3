package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
)

const (
	DefaultTavilyBaseURL = "https://api.tavily.com"

	SearchToolName = "tavily_search_results_json"
	searchToolDesc = "A search engine optimized for comprehensive, accurate, and trusted results. " +
		"Useful for when you need to answer questions about current events or look up laws, precedents and legal procedures. " +
		"Input should be a search query."
)

// SearchResult is one hit returned to the agent.
type SearchResult struct {
	Title   string  `json:"title,omitempty"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// TavilyConfig configures TavilySearch.
type TavilyConfig struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// TavilySearch calls the Tavily search API.
type TavilySearch struct {
	apiKey     string
	baseURL    string
	maxResults int
	client     *http.Client
}

// NewTavilySearch creates a client. MaxResults defaults to 1.
func NewTavilySearch(cfg TavilyConfig) *TavilySearch {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultTavilyBaseURL
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 1
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &TavilySearch{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		maxResults: maxResults,
		client:     client,
	}
}

type tavilyRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []SearchResult `json:"results"`
}

// Search returns at most the configured number of results for query.
func (t *TavilySearch) Search(ctx context.Context, query string) ([]SearchResult, error) {
	payload, err := json.Marshal(tavilyRequest{
		Query:       query,
		MaxResults:  t.maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &SearchError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := decoded.Results
	if len(results) > t.maxResults {
		results = results[:t.maxResults]
	}
	log.Printf("[search] query=%q results=%d", query, len(results))
	return results, nil
}

// SearchInput is the argument schema the agent fills in.
type SearchInput struct {
	Query string `json:"query" jsonschema:"description=search query to look up"`
}

// NewSearchTool exposes t to the agent as an invokable tool.
func NewSearchTool(t *TavilySearch) (tool.InvokableTool, error) {
	return utils.InferTool(SearchToolName, searchToolDesc, func(ctx context.Context, input SearchInput) ([]SearchResult, error) {
		return t.Search(ctx, input.Query)
	})
}
