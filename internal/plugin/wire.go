package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ikb-gg/ikb-go/internal/config"
	"github.com/ikb-gg/ikb-go/internal/embedding"
	"github.com/ikb-gg/ikb-go/internal/format"
	"github.com/ikb-gg/ikb-go/internal/ikb"
	"github.com/ikb-gg/ikb-go/internal/memory"
	"github.com/ikb-gg/ikb-go/internal/metrics"
	"github.com/ikb-gg/ikb-go/internal/query"
	"github.com/ikb-gg/ikb-go/internal/ratelimit"
)

// BuildDependencies wires up all plugin dependencies from configuration.
// The returned cleanup function closes the memory store connection if one
// was opened; it is safe to call even when no store was created.
func BuildDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(context.Context), error) {
	client, err := ikb.NewClient(cfg.APIKey, ikb.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, nil, fmt.Errorf("init IKB client: %w", err)
	}

	collector := metrics.NewCollector()
	limiter := ratelimit.NewFixedWindow(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowMS)*time.Millisecond,
	)

	var store memory.Store = &memory.NoopStore{Logger: logger}
	cleanup := func(context.Context) {}

	if cfg.Memory.Enabled {
		embedder, err := embedding.New(embedding.Config{
			Provider:          embedding.ProviderType(cfg.Embedding.Provider),
			Model:             cfg.Embedding.Model,
			ExpectedDimension: cfg.Embedding.Dimension,
			VoyageAPIKey:      cfg.Embedding.VoyageAPIKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init embedder: %w", err)
		}
		timed := embedding.WithTiming(embedder, func(d time.Duration) {
			collector.RecordTiming(metrics.OpEmbedding, d)
		})
		logger.Info("embedder initialized", "provider", cfg.Embedding.Provider, "model", embedder.Model())

		surreal, err := memory.NewSurrealStore(ctx, memory.SurrealConfig{
			URL:       cfg.Memory.URL,
			Namespace: cfg.Memory.Namespace,
			Database:  cfg.Memory.Database,
			Username:  cfg.Memory.User,
			Password:  cfg.Memory.Pass,
			AuthLevel: cfg.Memory.AuthLevel,
		}, timed, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect memory store: %w", err)
		}
		if err := surreal.InitSchema(ctx); err != nil {
			_ = surreal.Close(ctx)
			return nil, nil, fmt.Errorf("init memory schema: %w", err)
		}

		store = surreal
		cleanup = func(ctx context.Context) {
			_ = surreal.Close(ctx)
		}
	}

	deps := &Dependencies{
		Fetcher: client,
		Store:   store,
		Limiter: limiter,
		Metrics: collector,
		Logger:  logger,
		Defaults: query.Defaults{
			Sport: cfg.Filters.Sport,
			Date:  cfg.Filters.Date,
		},
		View: format.ParseView(cfg.SearchType),
	}
	return deps, cleanup, nil
}
