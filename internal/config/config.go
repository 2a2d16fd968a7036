// Package config loads plugin configuration by layering defaults, an
// optional YAML file, and environment variables.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ikb-gg/ikb-go/internal/ikb"
)

// ErrMissingAPIKey is returned when no IKB API key is configured.
var ErrMissingAPIKey = errors.New("api_key must not be empty")

// ErrInvalidRateLimit is returned when the rate limit window or request
// count is not positive.
var ErrInvalidRateLimit = errors.New("rate_limit requests and window_ms must be positive")

// Filters holds default query parameters applied when the search text
// omits them.
type Filters struct {
	// Sport overrides the built-in "nba" default when set.
	Sport string `koanf:"sport"`

	// Date overrides the current-UTC-date default when set (YYYY-MM-DD).
	Date string `koanf:"date"`
}

// RateLimit bounds outgoing IKB API calls per plugin instance.
type RateLimit struct {
	Requests int `koanf:"requests"`
	WindowMS int `koanf:"window_ms"`
}

// Memory configures the SurrealDB-backed game memory store.
type Memory struct {
	// Enabled selects the SurrealDB store; when false a no-op store is
	// used and fetched data is not persisted.
	Enabled   bool   `koanf:"enabled"`
	URL       string `koanf:"url"`
	Namespace string `koanf:"namespace"`
	Database  string `koanf:"database"`
	User      string `koanf:"user"`
	Pass      string `koanf:"pass"`
	AuthLevel string `koanf:"auth_level"`
}

// Embedding configures the embedder used for memory labels.
type Embedding struct {
	// Provider is "ollama" or "voyage".
	Provider  string `koanf:"provider"`
	Model     string `koanf:"model"`
	Dimension int    `koanf:"dimension"`

	// VoyageAPIKey is only required when Provider is "voyage".
	VoyageAPIKey string `koanf:"voyage_api_key"`
}

// Config contains all plugin settings.
type Config struct {
	// APIKey authenticates against the IKB API. Required.
	APIKey string `koanf:"api_key"`

	// BaseURL points at the IKB API root.
	BaseURL string `koanf:"base_url"`

	// SearchType selects the response view: game, teams, or players.
	SearchType string `koanf:"search_type"`

	// MaxResults caps results per search. The upstream API returns one
	// record per date, so this is a forward-compatibility knob.
	MaxResults int `koanf:"max_results"`

	Filters   Filters   `koanf:"filters"`
	RateLimit RateLimit `koanf:"rate_limit"`
	Memory    Memory    `koanf:"memory"`
	Embedding Embedding `koanf:"embedding"`

	// Logging
	LogFile  string `koanf:"log_file"`
	LogLevel string `koanf:"log_level"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		BaseURL:    ikb.DefaultBaseURL,
		SearchType: "game",
		MaxResults: 5,
		RateLimit: RateLimit{
			Requests: 60,
			WindowMS: 60_000,
		},
		Memory: Memory{
			Enabled:   false,
			URL:       "ws://localhost:8000/rpc",
			Namespace: "ikb",
			Database:  "games",
			User:      "root",
			Pass:      "root",
			AuthLevel: "root",
		},
		Embedding: Embedding{
			Provider: "ollama",
			Model:    "all-minilm:l6-v2",
		},
		LogFile:  "/tmp/ikb-go.log",
		LogLevel: "INFO",
	}
}

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if IKB_CONFIG is set
//  3. env (prefix IKB_, double underscore for nesting: IKB_FILTERS__SPORT)
func Load() (*Config, error) {
	cfg := *New()

	k := koanf.New(".")

	if path := os.Getenv("IKB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// IKB_API_KEY -> api_key, IKB_RATE_LIMIT__REQUESTS -> rate_limit.requests
	envProvider := env.Provider("IKB_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ikb_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.WindowMS <= 0 {
		return nil, ErrInvalidRateLimit
	}
	return &cfg, nil
}

// Level parses the configured log level, defaulting to INFO.
func (c *Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
