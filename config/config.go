package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:8081"

// Config holds everything the client needs at startup. The base URL is
// fixed for the lifetime of a run, matching the build-time constant of
// the original frontend.
type Config struct {
	// BaseURL is the root of the remote invoice service, no trailing slash.
	BaseURL string
	// Timeout bounds every HTTP exchange. Zero means no timeout.
	Timeout time.Duration
	// SessionFile is where the auth token and cached profile live.
	SessionFile string
}

// Load reads configuration from a .env file (if present) and the
// environment. Unlike the server side, a missing .env is fine here:
// the defaults point at a local backend.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:     defaultBaseURL,
		Timeout:     time.Duration(envInt("INVOICEGEN_TIMEOUT_SECONDS", 30)) * time.Second,
		SessionFile: defaultSessionFile(),
	}
	if v := os.Getenv("INVOICEGEN_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("INVOICEGEN_SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	return cfg
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "invoicegen", "session.json")
}
