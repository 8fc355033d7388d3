package chat

import "time"

// Exchange is one completed question/answer turn kept as conversation context.
type Exchange struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}
