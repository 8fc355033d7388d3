package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrAgentUnavailable means the service was started without a usable agent.
	ErrAgentUnavailable = errors.New("agent is not configured")
	// ErrMalformedInput marks requests that could not be decoded.
	ErrMalformedInput = errors.New("malformed input")
)

// Kind groups failures by what the caller can do about them.
type Kind int

const (
	KindInternal Kind = iota
	KindConfiguration
	KindTimeout
	KindRejected
	KindMalformedInput
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTimeout:
		return "external-call-timeout"
	case KindRejected:
		return "external-call-rejected"
	case KindMalformedInput:
		return "malformed-input"
	default:
		return "internal"
	}
}

// SearchError is returned when the search API answers with a non-2xx status.
type SearchError struct {
	StatusCode int
	Body       string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search request failed with status %d: %s", e.StatusCode, e.Body)
}

// Classify maps an error returned by Answer (or the gateway around it) to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}

	var (
		apiErr     *openai.APIError
		requestErr *openai.RequestError
		searchErr  *SearchError
	)
	switch {
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrAgentUnavailable):
		return KindConfiguration
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &apiErr), errors.As(err, &requestErr), errors.As(err, &searchErr):
		return KindRejected
	default:
		return KindInternal
	}
}
