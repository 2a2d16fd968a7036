package plugin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/ikb-gg/ikb-go/internal/format"
	"github.com/ikb-gg/ikb-go/internal/ikb"
	"github.com/ikb-gg/ikb-go/internal/memory"
	"github.com/ikb-gg/ikb-go/internal/metrics"
	"github.com/ikb-gg/ikb-go/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	resp      *ikb.GamesResponse
	err       error
	calls     int
	lastSport string
	lastDate  string
}

func (f *fakeFetcher) FetchGames(_ context.Context, sport, date string) (*ikb.GamesResponse, error) {
	f.calls++
	f.lastSport = sport
	f.lastDate = date
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeFetcher) GamesURL(sport, date string) string {
	return fmt.Sprintf("https://api.ikb.gg/ai/%s/%s", sport, date)
}

type fakeStore struct {
	err      error
	calls    int
	lastRec  memory.Record
	lastOpts memory.CreateOptions
}

func (s *fakeStore) CreateMemory(_ context.Context, rec memory.Record, opts memory.CreateOptions) error {
	s.calls++
	s.lastRec = rec
	s.lastOpts = opts
	return s.err
}

type fakeLimiter struct {
	allow     bool
	remaining int
}

func (l *fakeLimiter) Allow() bool    { return l.allow }
func (l *fakeLimiter) Remaining() int { return l.remaining }

func gamesResponse() *ikb.GamesResponse {
	return &ikb.GamesResponse{
		Data: []ikb.GameRecord{{
			Game: ikb.Game{
				Status:    "Final",
				Scheduled: "2024-03-01T19:30:00Z",
				HomeTeam:  "Celtics",
				AwayTeam:  "Lakers",
				HomeScore: 112,
				AwayScore: 105,
				Venue:     "TD Garden",
				Quarters: []ikb.QuarterScore{
					{Quarter: 1, AwayScore: 20, HomeScore: 18},
					{Quarter: 2, AwayScore: 15, HomeScore: 20},
				},
			},
		}},
		Metadata: ikb.Metadata{Count: 1},
	}
}

func testDeps(f *fakeFetcher, s *fakeStore, allow bool) *Dependencies {
	return &Dependencies{
		Fetcher: f,
		Store:   s,
		Limiter: &fakeLimiter{allow: allow},
		Metrics: metrics.NewCollector(),
		View:    format.ViewGame,
	}
}

func TestHandleSuccess(t *testing.T) {
	fetcher := &fakeFetcher{resp: gamesResponse()}
	store := &fakeStore{}
	deps := testDeps(fetcher, store, true)

	res := Handle(context.Background(), deps, "nba games on 2024-03-01", "")

	require.True(t, res.Success)
	assert.Contains(t, res.Response, "Lakers 105 @ Celtics 112")
	assert.Contains(t, res.Response, "Q1: 20-18, Q2: 15-20")

	assert.Equal(t, "nba", fetcher.lastSport)
	assert.Equal(t, "2024-03-01", fetcher.lastDate)

	require.Equal(t, 1, store.calls, "memory write is awaited on every success")
	assert.Equal(t, "nba game data for 2024-03-01", store.lastRec.Label)
	assert.True(t, store.lastOpts.Embed)
}

func TestHandleRateLimited(t *testing.T) {
	fetcher := &fakeFetcher{resp: gamesResponse()}
	store := &fakeStore{}
	deps := testDeps(fetcher, store, false)

	res := Handle(context.Background(), deps, "nba games", "")

	assert.False(t, res.Success)
	assert.Equal(t, "Rate limit exceeded. Please try again later.", res.Response)
	assert.Zero(t, fetcher.calls, "no HTTP request when the limiter denies")
	assert.Zero(t, store.calls, "no memory write when the limiter denies")
}

func TestHandleEmptyQuery(t *testing.T) {
	fetcher := &fakeFetcher{resp: gamesResponse()}
	deps := testDeps(fetcher, &fakeStore{}, true)

	res := Handle(context.Background(), deps, "   ", "")

	assert.False(t, res.Success)
	assert.Contains(t, res.Response, "Please provide a search query")
	assert.Zero(t, fetcher.calls, "validation failure precedes any network call")
}

func TestHandleUpstreamError(t *testing.T) {
	fetcher := &fakeFetcher{err: &ikb.UpstreamError{StatusCode: 502, Status: "502 Bad Gateway"}}
	store := &fakeStore{}
	deps := testDeps(fetcher, store, true)

	res := Handle(context.Background(), deps, "nba games", "")

	assert.False(t, res.Success)
	assert.Equal(t, "Sports data request failed: 502 Bad Gateway", res.Response)
	assert.Zero(t, store.calls, "failed fetches are not recorded")
}

func TestHandleNetworkError(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("%w: connection refused", ikb.ErrNetwork)}
	deps := testDeps(fetcher, &fakeStore{}, true)

	res := Handle(context.Background(), deps, "nba games", "")

	assert.False(t, res.Success)
	assert.Contains(t, res.Response, "could not reach the IKB API")
}

func TestHandleMemoryWriteFailureFailsAction(t *testing.T) {
	fetcher := &fakeFetcher{resp: gamesResponse()}
	store := &fakeStore{err: fmt.Errorf("%w: db unavailable", memory.ErrWrite)}
	deps := testDeps(fetcher, store, true)

	res := Handle(context.Background(), deps, "nba games", "")

	assert.False(t, res.Success)
	assert.Contains(t, res.Response, "failed to store")
}

func TestHandleZeroGamesIsSuccess(t *testing.T) {
	fetcher := &fakeFetcher{resp: &ikb.GamesResponse{}}
	store := &fakeStore{}
	deps := testDeps(fetcher, store, true)

	res := Handle(context.Background(), deps, "nba games on 2024-07-15", "")

	assert.True(t, res.Success)
	assert.Empty(t, res.Response)
	assert.Equal(t, 1, store.calls, "empty fetches are still recorded")
}

func TestExecuteViewSelection(t *testing.T) {
	resp := gamesResponse()
	resp.Data[0].Teams = []ikb.TeamStatLine{{Name: "Lakers", Alias: "LAL", Score: 105}}

	tests := []struct {
		name       string
		configured format.View
		override   string
		contains   string
	}{
		{"configured view", format.ViewTeams, "", "Lakers (LAL)"},
		{"override beats config", format.ViewTeams, "game", "Q1: 20-18"},
		{"unknown override falls back to game", format.ViewTeams, "boxscore", "Q1: 20-18"},
		{"empty config defaults to game", "", "", "Q1: 20-18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := testDeps(&fakeFetcher{resp: resp}, &fakeStore{}, true)
			deps.View = tt.configured

			result, err := Execute(context.Background(), deps, "nba games", tt.override)
			require.NoError(t, err)
			assert.Contains(t, result.Snippet, tt.contains)
		})
	}
}

func TestExecuteUsesConfiguredDefaults(t *testing.T) {
	fetcher := &fakeFetcher{resp: &ikb.GamesResponse{}}
	deps := testDeps(fetcher, &fakeStore{}, true)
	deps.Defaults = query.Defaults{Sport: "nfl", Date: "2024-10-13"}

	_, err := Execute(context.Background(), deps, "scores please", "")
	require.NoError(t, err)

	assert.Equal(t, "nfl", fetcher.lastSport)
	assert.Equal(t, "2024-10-13", fetcher.lastDate)
}

func TestExecuteResultShape(t *testing.T) {
	deps := testDeps(&fakeFetcher{resp: gamesResponse()}, &fakeStore{}, true)

	result, err := Execute(context.Background(), deps, "nba games on 2024-03-01", "")
	require.NoError(t, err)

	assert.Equal(t, "NBA games for 2024-03-01", result.Title)
	assert.Equal(t, "https://api.ikb.gg/ai/nba/2024-03-01", result.URL)
	assert.Equal(t, format.Source, result.Source)
	assert.Equal(t, "nba", result.Metadata.Sport)
	assert.Equal(t, "2024-03-01", result.Metadata.Date)
}

func TestExecuteRateLimitedSentinel(t *testing.T) {
	deps := testDeps(&fakeFetcher{}, &fakeStore{}, false)

	_, err := Execute(context.Background(), deps, "nba games", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestSuccessLogsRemainingBudget(t *testing.T) {
	var buf bytes.Buffer
	deps := testDeps(&fakeFetcher{resp: gamesResponse()}, &fakeStore{}, true)
	deps.Limiter = &fakeLimiter{allow: true, remaining: 42}
	deps.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	_, err := Execute(context.Background(), deps, "nba games", "")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "rate_remaining=42")
}

func TestMetricsRecorded(t *testing.T) {
	deps := testDeps(&fakeFetcher{resp: gamesResponse()}, &fakeStore{}, true)

	_, err := Execute(context.Background(), deps, "nba games", "")
	require.NoError(t, err)

	snap := deps.Metrics.Snapshot()
	require.NotNil(t, snap.Fetch)
	assert.Equal(t, int64(1), snap.Fetch.Count)
	require.NotNil(t, snap.MemoryWrite)
	require.NotNil(t, snap.Format)
}
