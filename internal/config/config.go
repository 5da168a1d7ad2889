package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerURL   = "http://127.0.0.1:8000"
	defaultHTTPTimeout = 10 * time.Second
	defaultStateDB     = "quiz-console.db"
)

type Config struct {
	ServerURL   string
	HTTPTimeout time.Duration
	StateDBPath string
}

// Load reads .env when present, then the environment. A missing .env file is
// not an error; flags in cmd override whatever is returned here.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		ServerURL:   defaultServerURL,
		HTTPTimeout: defaultHTTPTimeout,
		StateDBPath: defaultStateDB,
	}

	if value := os.Getenv("QUIZ_SERVER_URL"); value != "" {
		cfg.ServerURL = value
	}
	if value := os.Getenv("QUIZ_HTTP_TIMEOUT"); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			cfg.HTTPTimeout = parsed
		}
	}
	if value := os.Getenv("QUIZ_STATE_DB"); value != "" {
		cfg.StateDBPath = value
	}

	return cfg
}
