// Package ratelimit provides the plugin's fixed-window request limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Defaults for the IKB plugin: at most 60 calls per 60-second window.
const (
	DefaultRequests = 60
	DefaultWindow   = 60 * time.Second
)

// Limiter gates calls to the upstream API. Allow reports whether a call
// may proceed and records it in the same step. Remaining reports the
// unused slots in the current window for logging.
type Limiter interface {
	Allow() bool
	Remaining() int
}

// FixedWindow allows at most limit calls per window. The counter resets
// deterministically at window boundaries; increment-and-check is atomic
// under the mutex so concurrent callers cannot overshoot. time.Now's
// monotonic reading drives the boundary check.
type FixedWindow struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	count       int

	now func() time.Time
}

// Compile-time check that FixedWindow implements Limiter.
var _ Limiter = (*FixedWindow)(nil)

// NewFixedWindow creates a limiter. Non-positive arguments fall back to
// the plugin defaults.
func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	if limit <= 0 {
		limit = DefaultRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &FixedWindow{
		limit:       limit,
		window:      window,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Allow consumes one slot in the current window, returning false when the
// window is exhausted. Denied calls are not recorded.
func (l *FixedWindow) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}

	if l.count >= l.limit {
		return false
	}
	l.count++
	return true
}

// Remaining reports the unused slots in the current window.
func (l *FixedWindow) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.now().Sub(l.windowStart) >= l.window {
		return l.limit
	}
	return l.limit - l.count
}
