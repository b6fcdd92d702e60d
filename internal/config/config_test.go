package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"mathdeck/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := config.Load()

	assert.Equal(t, "127.0.0.1:8721", cfg.Addr)
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := config.Load()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := config.Config{
		Addr:     ":8721",
		DBPath:   "test.db",
		LogLevel: "INFO",
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := config.Config{
		Addr:     "",
		DBPath:   "test.db",
		LogLevel: "INFO",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := config.Config{
		Addr:     ":8721",
		DBPath:   "",
		LogLevel: "INFO",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := config.Config{
		Addr:     ":8721",
		DBPath:   "test.db",
		LogLevel: "VERBOSE",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
