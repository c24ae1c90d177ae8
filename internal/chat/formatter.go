// In file: internal/chat/formatter.go
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/streamtech/chat-gateway/internal/llm"
	"github.com/streamtech/chat-gateway/internal/toolcall"
)

// Formatter turns raw tool output into a natural-language reply, and
// answers conversationally when no tool applies. Both paths go through the
// language model under their own system instruction; neither may invent
// facts or mention tools.
type Formatter struct {
	llm llm.Client
}

func NewFormatter(client llm.Client) *Formatter {
	return &Formatter{llm: client}
}

// FormatToolResult rephrases a raw tool result for the user. The tool name
// and its rendered output are handed to the model as data, never shown to
// the user directly.
func (f *Formatter) FormatToolResult(ctx context.Context, userPrompt, toolName, toolResult string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: formatterPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(
			"Question utilisateur : %s\n\nOutil utilisé : %s\n\nDonnées retournées : %s",
			userPrompt, toolName, toolResult)},
	}
	return f.llm.Complete(ctx, messages, formatTemperature)
}

// AnswerWithoutTools answers the utterance conversationally, tools
// disabled. If the model still tries to emit a call, a fixed text-only
// clarification is substituted.
func (f *Formatter) AnswerWithoutTools(ctx context.Context, userPrompt string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: noToolsPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}
	reply, err := f.llm.Complete(ctx, messages, converseTemperature)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(strings.TrimSpace(reply), toolcall.Marker) {
		return textOnlyFallback, nil
	}
	return reply, nil
}
