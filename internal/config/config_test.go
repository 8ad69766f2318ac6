package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairshare/internal/receipt"
)

var keys = []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "SCAN_TIMEOUT", "SHUTDOWN_TIMEOUT"}

// clearEnv blanks every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, receipt.DefaultGeminiModel, cfg.GeminiModel)
	assert.Equal(t, receipt.DefaultGeminiBaseURL, cfg.GeminiBaseURL)
	assert.Equal(t, 60*time.Second, cfg.ScanTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.ScanningEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("SCAN_TIMEOUT", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.ScanningEnabled())

	gemini := cfg.Gemini()
	assert.Equal(t, "secret", gemini.APIKey)
	assert.Equal(t, 5*time.Second, gemini.Timeout)

	assert.NotContains(t, cfg.LogValue().String(), "secret")
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	for _, k := range keys {
		os.Unsetenv(k)
	}
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_MODEL=gemini-test\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", cfg.GeminiModel)
	assert.Equal(t, "warn", cfg.LogLevel, "process environment wins over the file")
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"PORT":             "eighty",
		"SCAN_TIMEOUT":     "soon",
		"SHUTDOWN_TIMEOUT": "-1s",
		"LOG_FORMAT":       "xml",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load("")
			assert.ErrorContains(t, err, key)
		})
	}
}
