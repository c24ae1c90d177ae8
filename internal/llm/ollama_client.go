// In file: internal/llm/ollama_client.go
package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// OllamaClient talks to a local Ollama daemon over its chat API.
type OllamaClient struct {
	client *ollama.Client
	model  string
}

var _ Client = (*OllamaClient)(nil)

// NewOllamaClient creates a client for the given host (e.g.
// "http://127.0.0.1:11434") and model name.
func NewOllamaClient(host, model string) (*OllamaClient, error) {
	if host == "" {
		host = "http://127.0.0.1:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama host %q: %w", host, err)
	}

	httpClient := &http.Client{
		Timeout: defaultTimeout,
	}
	return &OllamaClient{
		client: ollama.NewClient(u, httpClient),
		model:  model,
	}, nil
}

// Complete performs a blocking, non-streamed chat completion. Any network
// or protocol fault is wrapped in ErrUnavailable so the caller can map it
// to a service-unavailable condition without inspecting the cause.
func (c *OllamaClient) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	chatMessages := make([]ollama.Message, len(messages))
	for i, msg := range messages {
		chatMessages[i] = ollama.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    c.model,
		Messages: chatMessages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": temperature,
		},
	}

	var text strings.Builder
	err := c.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		text.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(text.String()), nil
}
