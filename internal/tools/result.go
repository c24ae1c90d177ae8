// In file: internal/tools/result.go
package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResultKind tags the three shapes a tool execution may produce.
type ResultKind int

const (
	// KindStructured carries a typed payload (number, object, list).
	KindStructured ResultKind = iota
	// KindText carries plain prose produced by the tool.
	KindText
	// KindOpaque carries a string conversion of a reply the gateway could
	// not interpret any other way.
	KindOpaque
)

// Result is the single, uniform representation of a tool's output inside
// the gateway. It is produced and consumed within one turn, never persisted.
type Result struct {
	Kind    ResultKind
	Payload any    // set for KindStructured
	Text    string // set for KindText and KindOpaque
}

// Normalize resolves a wire envelope into a Result using a fixed inspection
// order: typed data payload, then structured content, then the first text
// content block, then a string conversion of the whole envelope. The order
// matters because local deterministic tools and remote catalog tools return
// different shapes through the same boundary.
func Normalize(env CallEnvelope) Result {
	if env.Data != nil {
		return Result{Kind: KindStructured, Payload: env.Data}
	}
	if len(env.StructuredContent) > 0 {
		return Result{Kind: KindStructured, Payload: env.StructuredContent}
	}
	if len(env.Content) > 0 {
		return Result{Kind: KindText, Text: env.Content[0].Text}
	}
	raw, err := json.Marshal(env)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", env))
	}
	return Result{Kind: KindOpaque, Text: string(raw)}
}

// TextResult wraps already-rendered prose as a Result.
func TextResult(text string) Result {
	return Result{Kind: KindText, Text: text}
}

// StructuredResult wraps a typed payload as a Result.
func StructuredResult(payload any) Result {
	return Result{Kind: KindStructured, Payload: payload}
}

// Value returns the result's native payload: the typed payload for
// structured results, the text otherwise.
func (r Result) Value() any {
	if r.Kind == KindStructured {
		return r.Payload
	}
	return r.Text
}

// Render produces the textual form of the result, as handed to the
// response formatter or returned verbatim on the direct-pass branches.
func (r Result) Render() string {
	switch r.Kind {
	case KindStructured:
		if s, ok := r.Payload.(string); ok {
			return s
		}
		raw, err := json.Marshal(r.Payload)
		if err != nil {
			return fmt.Sprintf("%v", r.Payload)
		}
		return string(raw)
	default:
		return r.Text
	}
}

// FormatFloat renders a float the way the multiply tool's output is worded:
// the shortest representation that still shows a decimal point, so 3 reads
// as "3.0" and 6.25 stays "6.25".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
