package memory

import (
	"context"
	"log/slog"
)

// NoopStore discards records. Used when the plugin runs without a memory
// backend (memory.enabled=false) and in tests.
type NoopStore struct {
	Logger *slog.Logger
}

// Compile-time check that NoopStore implements Store.
var _ Store = (*NoopStore)(nil)

// CreateMemory logs and drops the record.
func (s *NoopStore) CreateMemory(_ context.Context, rec Record, opts CreateOptions) error {
	if s.Logger != nil {
		s.Logger.Debug("memory store disabled, dropping record",
			"label", rec.Label, "games", len(rec.Games), "embed", opts.Embed)
	}
	return nil
}
