// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/fairshare/internal/receipt"
)

// Config holds the settings shared by the server and the CLI.
type Config struct {
	Port            int
	LogLevel        string
	LogFormat       string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	ScanTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads the configuration from environment variables. When envFile is
// non-empty and exists it is loaded first; variables already set in the
// environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", receipt.DefaultGeminiModel),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", receipt.DefaultGeminiBaseURL),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(getEnv("PORT", "8080")); err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	if cfg.ScanTimeout, err = durationEnv("SCAN_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	return cfg, nil
}

// ScanningEnabled reports whether receipt scanning can be offered.
func (c *Config) ScanningEnabled() bool {
	return c.GeminiAPIKey != ""
}

// Gemini returns the receipt scanner settings.
func (c *Config) Gemini() receipt.GeminiConfig {
	return receipt.GeminiConfig{
		APIKey:  c.GeminiAPIKey,
		Model:   c.GeminiModel,
		BaseURL: c.GeminiBaseURL,
		Timeout: c.ScanTimeout,
	}
}

// LogValue keeps the API key out of logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("port", c.Port),
		slog.String("log_level", c.LogLevel),
		slog.String("log_format", c.LogFormat),
		slog.Bool("scanning", c.ScanningEnabled()),
		slog.String("gemini_model", c.GeminiModel),
		slog.Duration("scan_timeout", c.ScanTimeout),
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return d, nil
}
