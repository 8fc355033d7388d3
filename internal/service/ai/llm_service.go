package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/lawtalk/backend/internal/model/chat"
)

// Agent is the reasoning and tool-use runtime the assistant delegates to.
// Invoke receives the conversation state and returns the resulting message
// collection, which includes the input state followed by whatever the agent produced.
type Agent interface {
	Invoke(ctx context.Context, messages []*schema.Message) ([]*schema.Message, error)
}

// Service assembles conversations for the agent and extracts its answer.
type Service struct {
	agent   Agent
	timeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithTimeout bounds every agent call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService creates the assistant around agent.
func NewService(agent Agent, opts ...Option) *Service {
	s := &Service{agent: agent}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer asks the agent to answer query in the light of history. history is
// never modified; recording the new exchange is up to the caller.
func (s *Service) Answer(ctx context.Context, query string, history []chat.Exchange) (string, error) {
	if s == nil || s.agent == nil {
		return "", ErrAgentUnavailable
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	messages := BuildMessages(query, history)
	started := time.Now()

	output, err := s.agent.Invoke(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to invoke agent: %w", err)
	}

	answer, ok := LastAssistantText(output)
	if !ok {
		log.Printf("[agent] no assistant message in %d outputs, using fallback", len(output))
		return FallbackAnswer, nil
	}

	log.Printf("[agent] answered with history=%d, length=%d, took=%s", len(history), len(answer), time.Since(started).Round(time.Millisecond))
	return answer, nil
}

// BuildMessages lays out the system instruction, every prior exchange as a
// user/assistant pair, and finally the new query.
func BuildMessages(query string, history []chat.Exchange) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)*2+2)
	messages = append(messages, schema.SystemMessage(SystemInstruction))
	for _, exchange := range history {
		messages = append(messages,
			schema.UserMessage(exchange.Question),
			schema.AssistantMessage(exchange.Answer, nil),
		)
	}
	return append(messages, schema.UserMessage(query))
}

// LastAssistantText returns the content of the last assistant-authored
// message. It reports false when there is none or that message has no text.
func LastAssistantText(messages []*schema.Message) (string, bool) {
	var texts []string
	for _, msg := range messages {
		if msg != nil && msg.Role == schema.Assistant {
			texts = append(texts, msg.Content)
		}
	}
	if len(texts) == 0 {
		return "", false
	}

	last := texts[len(texts)-1]
	if strings.TrimSpace(last) == "" {
		return "", false
	}
	return last, true
}
