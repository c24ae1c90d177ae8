// In file: cmd/gateway/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/streamtech/chat-gateway/internal/chat"
	"github.com/streamtech/chat-gateway/internal/enrich"
	"github.com/streamtech/chat-gateway/internal/llm"
	"github.com/streamtech/chat-gateway/internal/tools"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Streamtech Chat Gateway | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	llmClient, err := initializeLLMClient(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("⚠️ Could not connect to Redis at %s, response cache disabled: %v", cfg.RedisAddr, err)
			rdb = nil
		} else {
			log.Println("✅ Redis response cache enabled.")
		}
	}

	invoker := tools.NewGateway(cfg.ToolServerURL)
	enricher := enrich.NewFetcher(cfg.WikiBaseURL, cfg.WikiCacheDir)

	orchestrator := chat.NewOrchestrator(llmClient, invoker, enricher, chat.Config{
		AllowList:    cfg.ToolTable.AllowList,
		RequiredArgs: cfg.ToolTable.RequiredArgs,
	})

	gatewayHandler := NewGatewayHandler(orchestrator, enricher, rdb)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	engine.Use(corsMiddleware())

	apiGroup := engine.Group("/api")
	{
		apiGroup.POST("/chat", gatewayHandler.HandleChat)
		apiGroup.GET("/scrape/wiki", gatewayHandler.HandleScrapeWiki)
	}
	// Legacy route kept for older frontends.
	engine.POST("/chat", gatewayHandler.HandleChat)

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeLLMClient creates the configured language model client.
func initializeLLMClient(cfg *AppConfig) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		log.Printf("✅ LLM client initialized (gemini, model=%s).", cfg.GeminiModel)
		return client, nil
	case "ollama":
		client, err := llm.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		log.Printf("✅ LLM client initialized (ollama, model=%s).", cfg.OllamaModel)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// corsMiddleware allows the local frontend to call the gateway.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Gateway is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
