// Package api provides types for talking to a chat-completion server.
package api

import "encoding/json"

// Role constants for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ModelDescriptor is a server-advertised identity and capability record
// for a selectable backend model.
type ModelDescriptor struct {
	ID             string `json:"id"`
	Family         string `json:"family"`
	MaxInputTokens int    `json:"maxInputTokens"`
}

// Message is a single message in a conversation. A conversation is an
// ordered slice of messages in chronological turn order; callers extend
// it by appending, never by mutating in place.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the body POSTed to /chat.
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatReply is the validated success shape of a /chat response.
type ChatReply struct {
	Content string         `json:"content"`
	Usage   map[string]any `json:"usage"`
}

// ChatResult is the decoded outcome of a /chat call. It is a tagged
// union chosen by a decode attempt: Reply is set when the body carried
// a "content" field, otherwise Raw holds whatever JSON the server
// returned (error bodies have no fixed schema). Raw is nil when the
// body was not JSON at all, which callers can report as its own
// outcome.
type ChatResult struct {
	Status int
	Reply  *ChatReply
	Raw    json.RawMessage
}

// ModelList is the decoded outcome of a /models call. Decoded is true
// when the body parsed as a descriptor array; otherwise Raw holds the
// fallback payload.
type ModelList struct {
	Status  int
	Models  []ModelDescriptor
	Decoded bool
	Raw     json.RawMessage
}

// HealthResult is the outcome of a /health call. Body is the response
// body as received, printed as-is by callers.
type HealthResult struct {
	Status int
	Body   []byte
}
