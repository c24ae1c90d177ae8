// In file: internal/toolcall/codec.go

// Package toolcall implements the compact wire notation the gateway uses to
// exchange tool invocations with the language model:
//
//	TOOL:name(key1=value1,key2=value2)
//
// Values are raw strings at this layer. Any typed coercion (e.g. the float
// operands of multiply) happens later, in the tool gateway.
package toolcall

import (
	"fmt"
	"sort"
	"strings"
)

// Marker is the literal prefix the model must emit before a tool call.
// It has to be reproduced bit-exact in prompts and parsers alike.
const Marker = "TOOL:"

// Call is a parsed tool invocation: a name plus provisionally untyped
// string arguments.
type Call struct {
	Name string
	Args map[string]string
}

// Parse decodes a string of the form `name(k1=v1,k2=v2)` or a bare `name`.
// Argument segments without an '=' are silently dropped; this leniency is
// intentional and matched by the tests, so do not turn it into an error.
func Parse(text string) Call {
	text = strings.TrimSpace(text)

	name, body, found := strings.Cut(text, "(")
	call := Call{
		Name: strings.TrimSpace(name),
		Args: make(map[string]string),
	}
	if !found {
		return call
	}

	body = strings.TrimSuffix(strings.TrimSpace(body), ")")
	for _, segment := range strings.Split(body, ",") {
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		call.Args[key] = strings.TrimSpace(value)
	}
	return call
}

// ExtractCall scans a model reply for the call marker. When present it
// parses everything after the marker and reports true.
func ExtractCall(reply string) (Call, bool) {
	_, rest, found := strings.Cut(reply, Marker)
	if !found {
		return Call{}, false
	}
	return Parse(rest), true
}

// ContainsMarker reports whether the reply carries the literal call marker.
func ContainsMarker(reply string) bool {
	return strings.Contains(reply, Marker)
}

// String re-serializes the call into `name(k=v,...)` notation. Keys are
// sorted so the output is stable for logging and for the formatter prompt.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name + "()"
	}
	keys := make([]string, 0, len(c.Args))
	for k := range c.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, c.Args[k]))
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(pairs, ", "))
}
