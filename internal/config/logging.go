package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// appAttr tags every record so host-side log collectors can separate this
// plugin's output from the agent runtime's own. MCP servers share stderr
// with whatever launched them.
const appAttr = "ikb"

// SetupLogger builds the plugin's dual-output logger from the loaded
// config: human-readable text on stderr, JSON to the configured log file.
// Returns the logger and a cleanup function that closes the file.
func SetupLogger(cfg *Config) (*slog.Logger, func() error) {
	level := cfg.Level()
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Stderr-only beats refusing to start over a bad log path.
		slog.Error("failed to open log file, using stderr only", "error", err, "file", cfg.LogFile)
		return tag(slog.New(stderrHandler)), func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
	return tag(logger), file.Close
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return tag(slog.New(slogmulti.Fanout(stderrHandler, fileHandler)))
}

func tag(l *slog.Logger) *slog.Logger {
	return l.With("app", appAttr)
}
