package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing. An empty DB_PATH
// means "resolve the per-user path at startup".
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", "127.0.0.1:8721"),
		DBPath:   envOr("DB_PATH", ""),
		LogLevel: envOr("LOG_LEVEL", "INFO"),
	}
}

// Validate checks the configuration after defaults and path resolution
// have been applied.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
