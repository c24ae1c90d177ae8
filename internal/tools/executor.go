// In file: internal/tools/executor.go
package tools

import "context"

// ToolExecutor defines the standard interface for any tool hosted by the
// tool server.
//
// By having all tools implement this interface, the server can manage and
// execute them in a standardized, plug-and-play fashion without knowing the
// specific details of each tool's implementation.
type ToolExecutor interface {
	// Name returns the tool's invocation name, exactly as it appears in
	// the gateway's allow-list and in the TOOL: call syntax.
	Name() string

	// Execute runs the actual logic of the tool. Arguments arrive as raw
	// strings; each tool coerces and validates what it needs. The returned
	// value may be a string (rendered as text content), a number, or a
	// map (rendered as a typed data payload).
	Execute(ctx context.Context, args map[string]string) (any, error)
}
