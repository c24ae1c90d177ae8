// In file: internal/chat/title.go
package chat

import (
	"regexp"
	"strings"
)

// Title extraction for catalog lookups. A quoted substring wins outright;
// otherwise an ordered list of common French phrasings is tried, first
// match wins; otherwise the whole trimmed utterance is the title.

var quotedTitleRegex = regexp.MustCompile(`["“”']([^"“”']+)["“”']`)

var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cherche\s+(.+)$`),
	regexp.MustCompile(`(?i)film\s+(.+)$`),
	regexp.MustCompile(`(?i)(?:du film|le film|de|du|sur|pour)\s+(.+)$`),
	regexp.MustCompile(`(?i)parle\s+moi\s+d['’]?\s*(.+)$`),
}

// ExtractTitle pulls a probable movie title out of a free-text utterance.
func ExtractTitle(prompt string) string {
	if m := quotedTitleRegex.FindStringSubmatch(prompt); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, pattern := range titlePatterns {
		if m := pattern.FindStringSubmatch(prompt); m != nil {
			return strings.TrimRight(strings.TrimSpace(m[1]), ".!? ")
		}
	}
	return strings.TrimRight(strings.TrimSpace(prompt), ".!? ")
}
