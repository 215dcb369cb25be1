package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the copilot service. Everything
// comes from environment variables; a local .env file is loaded when present.
type Config struct {
	GeminiAPIKey          string
	GeminiModel           string
	TransactionHistoryURL string
	Port                  string
	UpstreamTimeout       time.Duration
}

const (
	defaultModel      = "gemini-2.5-flash"
	defaultHistoryURL = "http://transactionhistory:8080"
	defaultPort       = "8080"

	// Single attempt, bounded; no retries anywhere in this service.
	defaultUpstreamTimeout = 10 * time.Second
)

// Load reads configuration from the environment. A missing .env file is not
// an error; a missing GEMINI_API_KEY is reported by the oracle at call time,
// not here, so the service can still serve degraded replies.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getEnv("GEMINI_MODEL", defaultModel),
		TransactionHistoryURL: getEnv("TRANSACTION_HISTORY_URL", defaultHistoryURL),
		Port:                  getEnv("PORT", defaultPort),
		UpstreamTimeout:       defaultUpstreamTimeout,
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
