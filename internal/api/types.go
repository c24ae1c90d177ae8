// In file: internal/api/types.go

// Package api defines the request/response wire types of the gateway's
// public HTTP surface.
package api

// ChatRequest is the body of a chat turn.
type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// ChatResponse carries the assistant's reply plus cache/latency metadata.
type ChatResponse struct {
	Response    string `json:"response"`
	LatencyMS   int64  `json:"latency_ms,omitempty"`
	CacheStatus string `json:"cache_status,omitempty"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}
