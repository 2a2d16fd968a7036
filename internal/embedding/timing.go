package embedding

import (
	"context"
	"time"
)

// timedEmbedder wraps an Embedder and reports the duration of each
// successful Embed call to an observer.
type timedEmbedder struct {
	inner   Embedder
	observe func(time.Duration)
}

// WithTiming decorates an Embedder so callers can record per-call latency
// without the embedding package knowing about any metrics backend.
func WithTiming(inner Embedder, observe func(time.Duration)) Embedder {
	if observe == nil {
		return inner
	}
	return &timedEmbedder{inner: inner, observe: observe}
}

func (t *timedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vec, err := t.inner.Embed(ctx, text)
	if err == nil {
		t.observe(time.Since(start))
	}
	return vec, err
}

func (t *timedEmbedder) Model() string { return t.inner.Model() }

func (t *timedEmbedder) Dimension() int { return t.inner.Dimension() }
