package chat

import "time"

// DefaultSessionID is used when a caller does not name a session.
const DefaultSessionID = "default"

// Session captures an anonymous conversation and its accumulated exchanges.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
