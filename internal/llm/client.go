// In file: internal/llm/client.go

// Package llm contains the language-model boundary of the gateway: the
// client interface the orchestrator talks to, and its Ollama and Gemini
// implementations.
package llm

import (
	"context"
	"errors"
)

// Role represents the originator of a message in a conversation.
// Using a defined type and constants prevents typos and improves code clarity.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a model exchange.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ErrUnavailable is returned when the model backend is unreachable or
// produces a malformed response. It is the only error the orchestrator
// lets escape to the transport layer, where it becomes a 503.
var ErrUnavailable = errors.New("language model unavailable or returned an invalid response")

// Client is the universal interface every model backend must implement.
// Temperature is passed per call: the classification path runs at 0 for
// determinism, the rephrasing paths at 0.4 and 0.2.
type Client interface {
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
}
