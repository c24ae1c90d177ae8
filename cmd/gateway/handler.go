// In file: cmd/gateway/handler.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/streamtech/chat-gateway/internal/api"
	"github.com/streamtech/chat-gateway/internal/chat"
	"github.com/streamtech/chat-gateway/internal/enrich"
	"github.com/streamtech/chat-gateway/internal/llm"
	ver "github.com/streamtech/chat-gateway/internal/version"
)

const cacheTTL = 10 * time.Minute

// GatewayHandler holds the dependencies for the HTTP handlers.
type GatewayHandler struct {
	orchestrator *chat.Orchestrator
	enricher     *enrich.Fetcher
	rdb          *redis.Client // nil when the response cache is disabled
}

// NewGatewayHandler creates a handler with its dependencies injected.
func NewGatewayHandler(orc *chat.Orchestrator, enricher *enrich.Fetcher, rdb *redis.Client) *GatewayHandler {
	return &GatewayHandler{orchestrator: orc, enricher: enricher, rdb: rdb}
}

// HandleChat is the main entry point: one user turn in, one answer out.
func (h *GatewayHandler) HandleChat(c *gin.Context) {
	start := time.Now()

	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body: 'prompt' is required."})
		return
	}

	if h.rdb != nil {
		key := ver.GenerateVersionedCacheKey("chatcache", req.Prompt)
		if cached, err := h.rdb.Get(c.Request.Context(), key).Result(); err == nil {
			var resp api.ChatResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				resp.LatencyMS = time.Since(start).Milliseconds()
				resp.CacheStatus = "HIT"
				log.Printf("✅ Cache HIT for key: %s", key)
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	answer, err := h.orchestrator.Answer(c.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			log.Printf("❌ LLM unavailable: %v", err)
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "Le modèle de langage est indisponible. Réessayez plus tard."})
			return
		}
		log.Printf("❌ Chat turn failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Une erreur interne est survenue."})
		return
	}

	resp := api.ChatResponse{
		Response:  answer,
		LatencyMS: time.Since(start).Milliseconds(),
	}

	if h.rdb != nil {
		resp.CacheStatus = "MISS"
		key := ver.GenerateVersionedCacheKey("chatcache", req.Prompt)
		if payload, err := json.Marshal(resp); err == nil {
			// Cache write failures are logged, never surfaced.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := h.rdb.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
					log.Printf("⚠️ Failed to write response cache: %v", err)
				}
			}()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// HandleScrapeWiki exposes the Wikipedia enrichment collaborator directly,
// mainly for inspection and cache warming.
func (h *GatewayHandler) HandleScrapeWiki(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Query parameter 'query' is required."})
		return
	}
	refresh := c.Query("refresh") == "true"

	doc, err := h.enricher.Fetch(c.Request.Context(), query, refresh)
	if err != nil {
		log.Printf("❌ Wikipedia scrape failed for %q: %v", query, err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "Erreur lors du scraping Wikipedia."})
		return
	}
	c.JSON(http.StatusOK, doc)
}
