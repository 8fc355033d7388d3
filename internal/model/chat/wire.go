package chat

// RoleModel is the role attached to every answer the gateway returns.
const RoleModel = "model"

// Turn is one role-tagged entry of a request or response.
type Turn struct {
	Role  string              `json:"role"`
	Parts []map[string]string `json:"parts"`
}

// ChatRequest is the body accepted by POST /chat.
type ChatRequest struct {
	Contents  []Turn `json:"contents"`
	SessionID string `json:"sessionId,omitempty"`
}

// Candidate wraps a single answer turn.
type Candidate struct {
	Content Turn `json:"content"`
}

// ChatResponse is the success body of POST /chat.
type ChatResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// CurrentQuery returns the text of the first part of the last turn.
// Missing turns, parts or text keys all yield the empty string.
func (r ChatRequest) CurrentQuery() string {
	if len(r.Contents) == 0 {
		return ""
	}
	last := r.Contents[len(r.Contents)-1]
	if len(last.Parts) == 0 {
		return ""
	}
	return last.Parts[0]["text"]
}

// NewChatResponse wraps answer as the single model candidate.
func NewChatResponse(answer string) ChatResponse {
	return ChatResponse{
		Candidates: []Candidate{{
			Content: Turn{
				Role:  RoleModel,
				Parts: []map[string]string{{"text": answer}},
			},
		}},
	}
}
