// Package memory hands fetched game data to the host agent's memory store.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ikb-gg/ikb-go/internal/ikb"
)

// Record is one durable memory entry: the raw game payload for a single
// (sport, date) query plus a human-readable label. Ownership passes to the
// store on a successful CreateMemory.
type Record struct {
	ID        string           `json:"id"`
	Label     string           `json:"label"`
	Sport     string           `json:"sport"`
	Date      string           `json:"date"`
	Games     []ikb.GameRecord `json:"games"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewRecord builds a memory record for a fetch result.
func NewRecord(sport, date string, games []ikb.GameRecord) Record {
	return Record{
		ID:        uuid.New().String(),
		Label:     fmt.Sprintf("%s game data for %s", sport, date),
		Sport:     sport,
		Date:      date,
		Games:     games,
		CreatedAt: time.Now().UTC(),
	}
}

// CreateOptions control how a record is stored.
type CreateOptions struct {
	// Embed requests an embedding of the record label so the host can
	// retrieve the memory semantically.
	Embed bool
}

// Store is the memory-manager capability this plugin consumes. The
// concrete store is supplied by whatever runtime embeds the plugin.
type Store interface {
	CreateMemory(ctx context.Context, rec Record, opts CreateOptions) error
}
