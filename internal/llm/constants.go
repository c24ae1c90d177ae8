// In file: internal/llm/constants.go
package llm

import "time"

// This file centralizes constants shared across the model clients to avoid
// redeclaration errors.
const (
	defaultTimeout = 60 * time.Second
)
