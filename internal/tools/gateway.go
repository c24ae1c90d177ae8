// In file: internal/tools/gateway.go
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Gateway is the sole chokepoint through which the chat side executes a
// tool. Each invocation opens its own connection to the tool server and
// closes it when the call completes.
//
// The gateway has no allow-list awareness: it will attempt to execute
// whatever name it is handed. Callers are responsible for rejecting names
// outside the allow-list before reaching this point.
type Gateway struct {
	baseURL string
	timeout time.Duration
}

// NewGateway creates a gateway that targets the given tool server base URL
// (e.g. "http://127.0.0.1:3333").
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: 30 * time.Second,
	}
}

// Invoke executes a tool by name and normalizes its reply into a Result.
//
// For tools declared numeric (only multiply today) both arguments are
// coerced to floating point before invocation, and the textual result is
// rendered as "<a> × <b> fait <value>".
func (g *Gateway) Invoke(ctx context.Context, name string, args map[string]string) (Result, error) {
	isMultiply := strings.EqualFold(name, "multiply")
	var a, b float64
	if isMultiply {
		var err error
		if a, err = strconv.ParseFloat(args["a"], 64); err != nil {
			return Result{}, fmt.Errorf("invalid operand a=%q for multiply: %w", args["a"], err)
		}
		if b, err = strconv.ParseFloat(args["b"], 64); err != nil {
			return Result{}, fmt.Errorf("invalid operand b=%q for multiply: %w", args["b"], err)
		}
	}

	env, err := g.call(ctx, CallRequest{Name: name, Args: args})
	if err != nil {
		return Result{}, err
	}
	result := Normalize(env)

	if isMultiply {
		value := result.Render()
		if f, ok := result.Payload.(float64); ok {
			value = FormatFloat(f)
		}
		return TextResult(fmt.Sprintf("%s × %s fait %s", FormatFloat(a), FormatFloat(b), value)), nil
	}
	return result, nil
}

// call performs one round trip to the tool server. The HTTP client is
// built per call with keep-alives disabled, so the connection lives only
// as long as the invocation.
func (g *Gateway) call(ctx context.Context, req CallRequest) (CallEnvelope, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return CallEnvelope{}, fmt.Errorf("failed to encode tool call: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/rpc/call", bytes.NewReader(body))
	if err != nil {
		return CallEnvelope{}, fmt.Errorf("failed to create tool call request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Close = true

	client := &http.Client{
		Timeout:   g.timeout,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return CallEnvelope{}, fmt.Errorf("tool server unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return CallEnvelope{}, fmt.Errorf("failed to read tool server reply: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var failure ErrorReply
		if json.Unmarshal(raw, &failure) == nil && failure.Error != "" {
			return CallEnvelope{}, fmt.Errorf("tool '%s' failed: %s", req.Name, failure.Error)
		}
		return CallEnvelope{}, fmt.Errorf("tool server returned status %d", resp.StatusCode)
	}

	var env CallEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return CallEnvelope{}, fmt.Errorf("failed to decode tool server reply: %w", err)
	}
	return env, nil
}
