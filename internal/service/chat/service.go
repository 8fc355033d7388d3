package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lawtalk/backend/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionRequired = errors.New("session id is required")
)

// Service keeps conversation history per session in memory. Nothing survives a restart.
type Service struct {
	mu           sync.RWMutex
	sessions     map[string]chat.Session
	exchanges    map[string][]chat.Exchange
	historyLimit int
}

// NewService bootstraps the in-memory store. historyLimit caps how many of the
// most recent exchanges History returns; zero or less means no cap.
func NewService(historyLimit int) *Service {
	if historyLimit < 0 {
		historyLimit = 0
	}
	return &Service{
		sessions:     make(map[string]chat.Session),
		exchanges:    make(map[string][]chat.Exchange),
		historyLimit: historyLimit,
	}
}

// CreateSession provisions a fresh anonymous session.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.exchanges[session.ID] = make([]chat.Exchange, 0, 16)
	s.mu.Unlock()

	return session, nil
}

// Append records a completed exchange, creating the session on first use.
func (s *Service) Append(_ context.Context, sessionID string, exchange chat.Exchange) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	if exchange.CreatedAt.IsZero() {
		exchange.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		s.sessions[sessionID] = chat.Session{ID: sessionID, CreatedAt: exchange.CreatedAt}
	}
	s.exchanges[sessionID] = append(s.exchanges[sessionID], exchange)
	return nil
}

// History returns a copy of the session's exchanges in insertion order.
// Unknown sessions have an empty history.
func (s *Service) History(_ context.Context, sessionID string) ([]chat.Exchange, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	exchanges := s.exchanges[sessionID]
	start := 0
	if s.historyLimit > 0 && len(exchanges) > s.historyLimit {
		start = len(exchanges) - s.historyLimit
	}

	copied := make([]chat.Exchange, len(exchanges)-start)
	copy(copied, exchanges[start:])
	return copied, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Reset drops a session together with its history.
func (s *Service) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.exchanges, sessionID)
	return nil
}
