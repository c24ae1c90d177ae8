// In file: internal/chat/orchestrator.go

// Package chat implements the tool-routing orchestrator: per turn it
// decides whether to answer the utterance directly from the language model
// or to invoke exactly one tool through the gateway, and turns the raw
// result into a safe natural-language reply.
package chat

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/streamtech/chat-gateway/internal/enrich"
	"github.com/streamtech/chat-gateway/internal/llm"
	"github.com/streamtech/chat-gateway/internal/toolcall"
	"github.com/streamtech/chat-gateway/internal/tools"
)

// ToolInvoker is the capability boundary through which tools execute.
// Implemented by tools.Gateway; narrowed here so tests can fake it.
type ToolInvoker interface {
	Invoke(ctx context.Context, name string, args map[string]string) (tools.Result, error)
}

// Enricher is the web-content enrichment collaborator, consumed read-only.
type Enricher interface {
	Fetch(ctx context.Context, query string, refresh bool) (*enrich.Document, error)
}

// Config carries the immutable routing tables, fixed at startup.
type Config struct {
	// AllowList is the only set of tool names the orchestrator will ever
	// execute, however a call was derived.
	AllowList []string `yaml:"allow_list"`
	// RequiredArgs maps a tool name to the argument keys that must be
	// present and non-empty before invocation.
	RequiredArgs map[string][]string `yaml:"required_args"`
}

// titleTools are the catalog lookups whose missing title argument is
// backfilled from the utterance instead of asking the user.
var titleTools = map[string]struct{}{
	"search_movie":      {},
	"get_movie_details": {},
	"get_movie_rating":  {},
}

// Orchestrator is the per-turn decision pipeline. All fields are immutable
// after construction; a turn carries no shared mutable state, so concurrent
// turns are safe.
type Orchestrator struct {
	llm          llm.Client
	gateway      ToolInvoker
	enricher     Enricher
	formatter    *Formatter
	allowList    map[string]struct{}
	requiredArgs map[string][]string
	leakMarkers  []string
	rules        []fastRule
}

// fastRule pairs a deterministic predicate with the handler that resolves
// the turn when the predicate matches. Evaluated in declaration order,
// first match wins.
type fastRule struct {
	name  string
	match func(prompt string) bool
	run   func(ctx context.Context, prompt string) string
}

func NewOrchestrator(client llm.Client, gateway ToolInvoker, enricher Enricher, cfg Config) *Orchestrator {
	o := &Orchestrator{
		llm:          client,
		gateway:      gateway,
		enricher:     enricher,
		formatter:    NewFormatter(client),
		allowList:    make(map[string]struct{}, len(cfg.AllowList)),
		requiredArgs: cfg.RequiredArgs,
		leakMarkers:  newLeakMarkers(cfg.AllowList),
	}
	for _, name := range cfg.AllowList {
		o.allowList[name] = struct{}{}
	}
	o.rules = o.buildFastRules()
	return o
}

// Answer resolves one chat turn. The only error it returns wraps
// llm.ErrUnavailable; every other failure is converted into a fixed
// user-readable apology or clarification.
func (o *Orchestrator) Answer(ctx context.Context, prompt string) (string, error) {
	// Greetings never bind a tool: every fast predicate excludes them, so
	// they fall through to direct model answering below.
	for _, rule := range o.rules {
		if rule.match(prompt) {
			log.Printf("🔍 Fast path matched: %s", rule.name)
			return rule.run(ctx, prompt), nil
		}
	}
	return o.classifyAndAnswer(ctx, prompt)
}

// buildFastRules declares the deterministic rule chain. Order is a
// contract: short free-text is tried before the keyword rules, and the
// broad catalog rule comes last.
func (o *Orchestrator) buildFastRules() []fastRule {
	return []fastRule{
		{
			name:  "short-title",
			match: isShortTitlePrompt,
			run: func(ctx context.Context, prompt string) string {
				return invokeOrFallback(apologyTool, func() (string, error) {
					result, err := o.gateway.Invoke(ctx, "get_movie_details",
						map[string]string{"title": ExtractTitle(prompt)})
					if err != nil {
						return "", err
					}
					return result.Render(), nil
				})
			},
		},
		{
			name:  "time",
			match: isTimePrompt,
			run: func(ctx context.Context, prompt string) string {
				return invokeOrFallback(apologyTime, func() (string, error) {
					result, err := o.gateway.Invoke(ctx, "GetTime", nil)
					if err != nil {
						return "", err
					}
					return timeReply(result.Render()), nil
				})
			},
		},
		{
			name:  "screen-time",
			match: isScreenTimePrompt,
			run: func(ctx context.Context, prompt string) string {
				return invokeOrFallback(apologyScreenTime, func() (string, error) {
					result, err := o.gateway.Invoke(ctx, "recommend_screen_time", nil)
					if err != nil {
						return "", err
					}
					return o.formatter.FormatToolResult(ctx, prompt, "recommend_screen_time()", result.Render())
				})
			},
		},
		{
			name:  "password",
			match: isPasswordPrompt,
			run: func(ctx context.Context, prompt string) string {
				return invokeOrFallback(apologyPassword, func() (string, error) {
					result, err := o.gateway.Invoke(ctx, "retrieve_password", nil)
					if err != nil {
						return "", err
					}
					return o.formatter.FormatToolResult(ctx, prompt, "retrieve_password()", result.Render())
				})
			},
		},
		{
			name:  "upcoming",
			match: isUpcomingPrompt,
			run: func(ctx context.Context, prompt string) string {
				return invokeOrFallback(apologyTool, func() (string, error) {
					args := map[string]string{
						"top_n": strconv.Itoa(firstInteger(prompt, 5)),
					}
					result, err := o.gateway.Invoke(ctx, "get_upcoming_movies", args)
					if err != nil {
						return "", err
					}
					return result.Render(), nil
				})
			},
		},
		{
			name:  "about",
			match: isAboutPrompt,
			run: func(ctx context.Context, prompt string) string {
				return invokeOrFallback(apologyTool, func() (string, error) {
					result, err := o.gateway.Invoke(ctx, "get_movie_details",
						map[string]string{"title": ExtractTitle(prompt)})
					if err != nil {
						return "", err
					}
					return result.Render(), nil
				})
			},
		},
		{
			name:  "catalog",
			match: isCatalogPrompt,
			run: func(ctx context.Context, prompt string) string {
				return invokeOrFallback(apologyTool, func() (string, error) {
					return o.answerCatalog(ctx, prompt)
				})
			},
		},
	}
}

// answerCatalog runs the broad catalog branch: infer one tool call, invoke
// it, optionally merge an enrichment document, and rephrase the payload.
func (o *Orchestrator) answerCatalog(ctx context.Context, prompt string) (string, error) {
	call := inferCatalogCall(prompt)
	result, err := o.gateway.Invoke(ctx, call.Name, call.Args)
	if err != nil {
		return "", err
	}

	payload := result
	if o.enricher != nil && needsEnrichment(prompt) {
		subject := call.Args["title"]
		if subject == "" {
			subject = prompt
		}
		doc, err := o.enricher.Fetch(ctx, subject, false)
		if err != nil {
			return "", err
		}
		payload = tools.StructuredResult(map[string]any{
			"tmdb":      result.Value(),
			"wikipedia": doc,
		})
	}

	return o.formatter.FormatToolResult(ctx, prompt, call.String(), payload.Render())
}

// classifyAndAnswer is the single-pass LLM classification path, reached
// only when no fast rule matched.
func (o *Orchestrator) classifyAndAnswer(ctx context.Context, prompt string) (string, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: classifierPrompt},
		{Role: llm.RoleUser, Content: prompt},
	}
	reply, err := o.llm.Complete(ctx, messages, classifyTemperature)
	if err != nil {
		return "", err
	}

	call, hasCall := toolcall.ExtractCall(reply)
	if !hasCall {
		// No proper call, but tool vocabulary leaking into the draft means
		// the model is talking about tools; re-answer with tools disabled.
		if containsToolMention(reply, o.leakMarkers) {
			log.Println("⚠️ Leak guard tripped; re-answering without tools.")
			return o.formatter.AnswerWithoutTools(ctx, prompt)
		}
		return reply, nil
	}

	if _, allowed := o.allowList[call.Name]; !allowed {
		log.Printf("⚠️ Model requested unlisted tool '%s'; refusing.", call.Name)
		return o.formatter.AnswerWithoutTools(ctx, prompt)
	}

	if _, needsTitle := titleTools[call.Name]; needsTitle && call.Args["title"] == "" {
		call.Args["title"] = ExtractTitle(prompt)
	}

	if missing := o.missingArgs(call); len(missing) > 0 {
		return missingArgsPrefix + strings.Join(missing, ", ") + ".", nil
	}

	result, err := o.gateway.Invoke(ctx, call.Name, call.Args)
	if err != nil {
		log.Printf("❌ Tool '%s' failed: %v", call.Name, err)
		return apologyTool, nil
	}
	return o.formatter.FormatToolResult(ctx, prompt, call.String(), result.Render())
}

// missingArgs lists the required argument keys that are absent or empty,
// preserving the table's declaration order so the clarification message is
// stable.
func (o *Orchestrator) missingArgs(call toolcall.Call) []string {
	var missing []string
	for _, key := range o.requiredArgs[call.Name] {
		if call.Args[key] == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

// invokeOrFallback runs a tool-invocation thunk and converts any failure
// into the branch's fixed apology. Fast-path failures are never fatal to
// the turn; there are no retries.
func invokeOrFallback(fallback string, thunk func() (string, error)) string {
	reply, err := thunk()
	if err != nil {
		log.Printf("❌ Fast-path invocation failed: %v", err)
		return fallback
	}
	return reply
}

// timeReply renders the clock tool's raw timestamp as an "Il est HHhMM"
// phrase, echoing the raw value when it does not parse.
func timeReply(raw string) string {
	if t, err := time.Parse(tools.TimeLayout, raw); err == nil {
		return "Il est " + t.Format("15h04") + "."
	}
	return "Il est " + raw + "."
}
