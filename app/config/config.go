package config

import (
	"os"

	"github.com/joho/godotenv"

	"postify/app/logger"
)

// DefaultAPIBaseURL is the public test fixture the client talks to when
// no override is configured. It does not persist writes.
const DefaultAPIBaseURL = "https://jsonplaceholder.typicode.com"

// Config holds the runtime settings for the client core.
type Config struct {
	// APIBaseURL is the base URL of the remote post API.
	APIBaseURL string
	// SessionDir is the directory for the persisted session database.
	SessionDir string
	// MemorySession forces the in-memory session storage fallback.
	MemorySession bool
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing values fall back to defaults; Load never fails.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		APIBaseURL:    DefaultAPIBaseURL,
		SessionDir:    "data/session",
		MemorySession: false,
	}

	if v := os.Getenv("POSTIFY_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("POSTIFY_SESSION_DIR"); v != "" {
		cfg.SessionDir = v
	}
	if os.Getenv("POSTIFY_MEMORY_SESSION") == "true" {
		cfg.MemorySession = true
	}

	return cfg
}
