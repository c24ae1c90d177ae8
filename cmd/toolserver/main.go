// In file: cmd/toolserver/main.go
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
	"github.com/joho/godotenv"

	"github.com/streamtech/chat-gateway/internal/tools"
)

// main starts the tool server: a small RPC endpoint that executes the
// registered tools on behalf of the chat gateway.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("🚀 Starting Streamtech Tool Server")

	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	table, err := tools.LoadTable(getEnv("TOOLS_CONFIG", "configs/tools.yaml"))
	if err != nil {
		log.Fatalf("❌ FATAL: Failed to load tool table: %v", err)
	}

	manager, err := initializeToolManager(table)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	engine.POST("/rpc/call", handleCall(manager))

	srv := &http.Server{Addr: fmt.Sprintf(":%s", getEnv("TOOL_SERVER_PORT", "3333")), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeToolManager creates and registers all available tools.
func initializeToolManager(table *tools.Table) (*tools.ToolManager, error) {
	manager := tools.NewToolManager()

	manager.Register(tools.NewTimeTool())
	manager.Register(tools.NewMultiplyTool())
	manager.Register(tools.NewPasswordTool())
	manager.Register(tools.NewScreenTimeTool())
	manager.Register(tools.NewCompareRatingsTool())

	apiKey := os.Getenv("TMDB_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	tmdb := tools.NewTMDBClient(apiKey, getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"))
	manager.Register(tools.NewSearchMovieTool(tmdb))
	manager.Register(tools.NewMovieDetailsTool(tmdb))
	manager.Register(tools.NewMovieRatingTool(tmdb))
	manager.Register(tools.NewRecommendMoviesTool(tmdb, table.Genres))
	manager.Register(tools.NewUpcomingMoviesTool(tmdb))

	scraper := tools.NewPopularScraper(getEnv("TMDB_SITE_URL", "https://www.themoviedb.org"))
	manager.Register(tools.NewPopularMoviesTool(scraper))
	manager.Register(tools.NewPopularSeriesTool(scraper))

	log.Printf("✅ Tool Manager initialized with %d tools.", manager.ToolCount())
	return manager, nil
}

// handleCall executes one tool call and wraps the result in the wire
// envelope the gateway expects. String results travel as a content block,
// everything else as structured data.
func handleCall(manager *tools.ToolManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tools.CallRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, tools.ErrorReply{Error: "invalid request body"})
			return
		}

		result, err := manager.Execute(c.Request.Context(), req.Name, req.Args)
		if err != nil {
			log.Printf("❌ Tool %q failed: %v", req.Name, err)
			c.JSON(http.StatusInternalServerError, tools.ErrorReply{Error: err.Error()})
			return
		}

		var env tools.CallEnvelope
		switch v := result.(type) {
		case string:
			env.Content = []tools.ContentBlock{{Type: "text", Text: v}}
		default:
			env.Data = v
		}
		c.JSON(http.StatusOK, env)
	}
}

// getEnv is a helper to read an env var or return a default.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Tool server is listening on http://localhost%s", srv.Addr)
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
