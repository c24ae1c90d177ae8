// In file: internal/chat/leakguard.go
package chat

import "strings"

// The leak guard keeps internal tool-call syntax out of user-facing text.
// It is applied to the direct-answer branch of the classification path:
// when the model discusses tools without emitting a proper call, the turn
// is re-answered on the tool-free path instead.

// newLeakMarkers builds the fixed marker list scanned by the guard: the
// literal call marker plus the bare name of every allow-listed tool,
// lowercased.
func newLeakMarkers(allowList []string) []string {
	markers := make([]string, 0, len(allowList)+1)
	markers = append(markers, "tool:")
	for _, name := range allowList {
		markers = append(markers, strings.ToLower(name))
	}
	return markers
}

// containsToolMention reports whether any marker appears in the text,
// case-insensitively.
func containsToolMention(text string, markers []string) bool {
	lowered := strings.ToLower(text)
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
