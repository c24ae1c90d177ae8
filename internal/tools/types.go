// In file: internal/tools/types.go

// Package tools defines the tool-execution boundary of the gateway: the
// executor interface implemented by every tool, the registry that hosts them
// in the tool server, and the wire envelope exchanged between the chat
// gateway and the tool server.
//
// The envelope deliberately mirrors the shape returned by MCP-style tool
// runtimes: a typed `data` payload for deterministic tools, a structured
// content object for tools that return key/value documents, and a list of
// text content blocks for tools that return prose. The gateway normalizes
// these heterogeneous shapes into a single tagged Result.
package tools

// CallRequest is the body of a tool invocation sent to the tool server.
// Argument values are raw strings; each tool coerces what it needs.
type CallRequest struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args"`
}

// ContentBlock is one unit of textual tool output.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallEnvelope is the tool server's reply. At most one of the payload
// fields is populated for a given tool, but the gateway must tolerate any
// combination and resolve them in a fixed order (see Normalize).
type CallEnvelope struct {
	Data              any            `json:"data,omitempty"`
	StructuredContent map[string]any `json:"structured_content,omitempty"`
	Content           []ContentBlock `json:"content,omitempty"`
}

// ErrorReply is the tool server's failure body.
type ErrorReply struct {
	Error string `json:"error"`
}
