package plugin

import (
	"context"
	"errors"
	"time"

	"github.com/ikb-gg/ikb-go/internal/format"
	"github.com/ikb-gg/ikb-go/internal/ikb"
	"github.com/ikb-gg/ikb-go/internal/memory"
	"github.com/ikb-gg/ikb-go/internal/metrics"
	"github.com/ikb-gg/ikb-go/internal/query"
)

// ActionName is the action identifier registered with the host runtime.
const ActionName = "IKB_SEARCH"

// RateLimitMessage is the exact user-facing text for denied calls.
const RateLimitMessage = "Rate limit exceeded. Please try again later."

// ErrRateLimited indicates the fixed-window limiter denied the call.
// No network or store call was made.
var ErrRateLimited = errors.New("rate limit exceeded")

// ActionResult is the uniform shape returned to the host runtime.
type ActionResult struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// Execute runs the full pipeline for one query:
// validate → interpret → rate-limit gate → fetch → memory write → format.
// The memory write is awaited; its failure fails the whole action.
func Execute(ctx context.Context, deps *Dependencies, text, viewOverride string) (*format.Result, error) {
	log := deps.logger()

	cleaned, err := query.Validate(text)
	if err != nil {
		return nil, err
	}

	q := query.Interpret(cleaned, deps.Defaults)

	// The gate comes before any network or store contact.
	if !deps.Limiter.Allow() {
		log.Warn("rate limit exceeded", "sport", q.Sport, "date", q.Date)
		return nil, ErrRateLimited
	}

	view := deps.View
	if viewOverride != "" {
		view = format.ParseView(viewOverride)
	}
	if view == "" {
		view = format.ViewGame
	}

	start := time.Now()
	resp, err := deps.Fetcher.FetchGames(ctx, q.Sport, q.Date)
	deps.observe(metrics.OpFetch, start)
	if err != nil {
		log.Error("fetch failed", "sport", q.Sport, "date", q.Date, "error", err)
		return nil, err
	}

	rec := memory.NewRecord(q.Sport, q.Date, resp.Data)
	start = time.Now()
	if err := deps.Store.CreateMemory(ctx, rec, memory.CreateOptions{Embed: true}); err != nil {
		log.Error("memory write failed", "label", rec.Label, "error", err)
		return nil, err
	}
	deps.observe(metrics.OpMemoryWrite, start)

	start = time.Now()
	result := format.NewResult(q.Sport, q.Date, deps.Fetcher.GamesURL(q.Sport, q.Date), view, resp.Data)
	deps.observe(metrics.OpFormat, start)

	log.Info("search completed",
		"sport", q.Sport, "date", q.Date, "view", view, "games", len(resp.Data),
		"rate_remaining", deps.Limiter.Remaining())
	return &result, nil
}

// Handle converts the pipeline outcome into the host-facing result shape.
// Nothing propagates uncaught past this boundary.
func Handle(ctx context.Context, deps *Dependencies, text, viewOverride string) ActionResult {
	result, err := Execute(ctx, deps, text, viewOverride)
	if err != nil {
		return ActionResult{Success: false, Response: failureMessage(err)}
	}
	return ActionResult{Success: true, Response: result.Snippet}
}

// failureMessage maps an error kind to its user-facing message.
func failureMessage(err error) string {
	var upstream *ikb.UpstreamError
	switch {
	case errors.Is(err, ErrRateLimited):
		return RateLimitMessage
	case errors.Is(err, query.ErrEmptyQuery):
		return `Please provide a search query, e.g. "nba games 2024-03-01".`
	case errors.As(err, &upstream):
		return "Sports data request failed: " + upstream.Status
	case errors.Is(err, ikb.ErrNetwork):
		return "Sports data request failed: could not reach the IKB API."
	case errors.Is(err, memory.ErrWrite):
		return "Fetched game data but failed to store it. Please try again."
	default:
		return "Sports search failed: " + err.Error()
	}
}
