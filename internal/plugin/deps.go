// Package plugin implements the IKB sports-search action and its MCP surface.
package plugin

import (
	"context"
	"log/slog"
	"time"

	"github.com/ikb-gg/ikb-go/internal/format"
	"github.com/ikb-gg/ikb-go/internal/ikb"
	"github.com/ikb-gg/ikb-go/internal/memory"
	"github.com/ikb-gg/ikb-go/internal/metrics"
	"github.com/ikb-gg/ikb-go/internal/query"
	"github.com/ikb-gg/ikb-go/internal/ratelimit"
)

// GamesFetcher is the upstream-API capability the pipeline consumes.
// *ikb.Client implements it; tests substitute fakes.
type GamesFetcher interface {
	FetchGames(ctx context.Context, sport, date string) (*ikb.GamesResponse, error)
	GamesURL(sport, date string) string
}

// Dependencies holds shared services for the action pipeline and tool
// handlers. Passed to handler factories via closure capture.
type Dependencies struct {
	Fetcher GamesFetcher
	Store   memory.Store
	Limiter ratelimit.Limiter
	Metrics *metrics.Collector
	Logger  *slog.Logger

	// Defaults are the configured filter values, overridable per query.
	Defaults query.Defaults

	// View is the configured searchType.
	View format.View
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d *Dependencies) observe(op string, start time.Time) {
	if d.Metrics != nil {
		d.Metrics.RecordTiming(op, time.Since(start))
	}
}
