// In file: cmd/gateway/config.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/streamtech/chat-gateway/internal/tools"
)

// AppConfig holds all configuration for the gateway, loaded from the
// environment and the tool table file.
type AppConfig struct {
	Port          string
	LLMProvider   string // "ollama" (default) or "gemini"
	OllamaHost    string
	OllamaModel   string
	GeminiAPIKey  string
	GeminiModel   string
	ToolServerURL string
	WikiBaseURL   string
	WikiCacheDir  string
	// RedisAddr enables the response cache when set; empty disables it.
	RedisAddr string
	ToolTable *tools.Table
}

// LoadConfig loads configuration from a .env file, environment variables,
// and the tool table YAML.
func LoadConfig() (*AppConfig, error) {
	// Only attempt to load a .env file in local development. In release
	// mode configuration is provided directly as environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Port:          getEnv("PORT", "8000"),
		LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
		OllamaHost:    getEnv("OLLAMA_URL", "http://127.0.0.1:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.1"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		ToolServerURL: getEnv("TOOL_SERVER_URL", "http://127.0.0.1:3333"),
		WikiBaseURL:   getEnv("WIKI_BASE_URL", "https://fr.wikipedia.org"),
		WikiCacheDir:  getEnv("WIKI_CACHE_DIR", "data/cache/wiki"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
	}

	table, err := tools.LoadTable(getEnv("TOOLS_CONFIG", "configs/tools.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load tool table: %w", err)
	}
	cfg.ToolTable = table

	if cfg.LLMProvider == "gemini" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("LLM_PROVIDER=gemini requires GEMINI_API_KEY")
	}
	return cfg, nil
}

// getEnv is a helper to read an env var or return a default.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
