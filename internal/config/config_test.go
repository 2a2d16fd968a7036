package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("IKB_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "https://api.ikb.gg/ai", cfg.BaseURL)
	assert.Equal(t, "game", cfg.SearchType)
	assert.Equal(t, 5, cfg.MaxResults)
	assert.Equal(t, 60, cfg.RateLimit.Requests)
	assert.Equal(t, 60_000, cfg.RateLimit.WindowMS)
	assert.False(t, cfg.Memory.Enabled)
	assert.Equal(t, "ollama", cfg.Embedding.Provider)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("IKB_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadInvalidRateLimit(t *testing.T) {
	t.Setenv("IKB_API_KEY", "test-key")
	t.Setenv("IKB_RATE_LIMIT__REQUESTS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRateLimit)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("IKB_API_KEY", "env-key")
	t.Setenv("IKB_SEARCH_TYPE", "teams")
	t.Setenv("IKB_FILTERS__SPORT", "nfl")
	t.Setenv("IKB_FILTERS__DATE", "2024-10-13")
	t.Setenv("IKB_RATE_LIMIT__REQUESTS", "10")
	t.Setenv("IKB_MEMORY__ENABLED", "true")
	t.Setenv("IKB_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "teams", cfg.SearchType)
	assert.Equal(t, "nfl", cfg.Filters.Sport)
	assert.Equal(t, "2024-10-13", cfg.Filters.Date)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.True(t, cfg.Memory.Enabled)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ikb.yaml")
	yaml := []byte(`
api_key: file-key
search_type: players
rate_limit:
  requests: 30
memory:
  enabled: true
  namespace: custom
`)
	require.NoError(t, os.WriteFile(path, yaml, 0644))

	t.Setenv("IKB_CONFIG", path)
	t.Setenv("IKB_SEARCH_TYPE", "teams") // env beats file

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "teams", cfg.SearchType)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.True(t, cfg.Memory.Enabled)
	assert.Equal(t, "custom", cfg.Memory.Namespace)
	assert.Equal(t, "games", cfg.Memory.Database, "unset file keys keep defaults")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "input %q", tt.in)
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("hello", "sport", "nba")

	assert.Contains(t, stderr.String(), "hello")
	assert.Contains(t, file.String(), `"msg":"hello"`)
	assert.Contains(t, file.String(), `"sport":"nba"`)
	assert.Contains(t, file.String(), `"app":"ikb"`, "every record carries the app tag")
}

func TestSetupLoggerClosesFile(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.APIKey = "test-key"
	cfg.LogFile = filepath.Join(dir, "ikb.log")

	logger, cleanup := SetupLogger(cfg)
	logger.Info("startup")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"app":"ikb"`)
}

func TestSetupLoggerBadPathFallsBack(t *testing.T) {
	cfg := New()
	cfg.LogFile = filepath.Join(t.TempDir(), "missing", "nested", "ikb.log")

	logger, cleanup := SetupLogger(cfg)
	require.NotNil(t, logger)
	require.NoError(t, cleanup(), "fallback cleanup is a no-op")
}
