// In file: internal/llm/gemini_client.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the client for interacting with Google's Gemini models.
// It is the alternative backend, selected with LLM_PROVIDER=gemini.
type GeminiClient struct {
	client  *genai.Client
	modelID string
}

var _ Client = (*GeminiClient)(nil)

func NewGeminiClient(apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelID: modelID}, nil
}

// Complete performs a standard, blocking request to the Gemini API.
// The leading system message (if any) becomes the system instruction; the
// remaining history is replayed through a chat session. The generative
// model is built per call so concurrent turns never share mutable state.
func (c *GeminiClient) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	model := c.client.GenerativeModel(c.modelID)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(4096)

	if len(messages) > 0 && messages[0].Role == RoleSystem {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(messages[0].Content)},
		}
		messages = messages[1:]
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("%w: no user message to send", ErrUnavailable)
	}

	chat := model.StartChat()
	chat.History = toGeminiContentHistory(messages[:len(messages)-1])

	last := messages[len(messages)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty Gemini response", ErrUnavailable)
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(text.String()), nil
}

// toGeminiContentHistory converts our message history into the Gemini
// role/content shape. Gemini uses "model" where we use "assistant".
func toGeminiContentHistory(messages []Message) []*genai.Content {
	history := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}
