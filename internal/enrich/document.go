// In file: internal/enrich/document.go

// Package enrich supplies supplementary factual data about a movie or
// series from French Wikipedia: production facts (budget, box office,
// admissions), awards and a short summary that the catalog provider does
// not carry. Documents are cached on disk, one JSON file per slugified
// query, and reused across turns unless a refresh is requested.
package enrich

import (
	"regexp"
	"strings"
	"time"
)

// Document is the structured result of one enrichment fetch. A failed
// lookup still yields a Document with Error set; failure pages are cached
// like any other result.
type Document struct {
	Query           string            `json:"query"`
	URL             string            `json:"wikipedia_url,omitempty"`
	Title           string            `json:"title,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	Infobox         map[string]string `json:"infobox,omitempty"`
	InfoboxPriority map[string]string `json:"infobox_priority,omitempty"`
	Awards          string            `json:"recompenses,omitempty"`
	FetchedAt       time.Time         `json:"fetched_at,omitempty"`
	Error           string            `json:"error,omitempty"`
}

var slugCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Slugify normalizes a query into the cache key used on disk.
func Slugify(text string) string {
	cleaned := slugCleaner.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "_")
	cleaned = strings.Trim(cleaned, "_")
	if cleaned == "" {
		return "unknown"
	}
	return cleaned
}
