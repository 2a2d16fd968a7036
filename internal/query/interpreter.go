// Package query turns free-form user text into a structured search query.
package query

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ikb-gg/ikb-go/internal/ikb"
)

// ErrEmptyQuery indicates the query text was empty or whitespace-only.
var ErrEmptyQuery = errors.New("query must not be empty")

// datePattern matches the first YYYY-MM-DD substring. The value is used
// verbatim; calendar validity is the upstream API's problem.
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Query is the ephemeral (sport, date) pair derived from user text.
// It is never persisted.
type Query struct {
	Sport string
	Date  string
}

// Defaults are the configured fallback filter values. Empty fields fall
// back to nba and the current UTC date.
type Defaults struct {
	Sport string
	Date  string
}

// Validate cleans the raw query text, failing on empty input.
// This runs before any network or store call.
func Validate(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return "", ErrEmptyQuery
	}
	return cleaned, nil
}

// Interpret extracts a date and sport from text, filling gaps from the
// defaults. It always succeeds; sparse input yields a default-filled query.
//
// The nfl keyword set is checked before nba, so text mentioning both
// resolves to nfl.
func Interpret(text string, defaults Defaults) Query {
	q := Query{Sport: defaults.Sport, Date: defaults.Date}
	if q.Sport == "" {
		q.Sport = ikb.SportNBA
	}
	if q.Date == "" {
		q.Date = time.Now().UTC().Format("2006-01-02")
	}

	if match := datePattern.FindString(text); match != "" {
		q.Date = match
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "nfl") || strings.Contains(lower, "football"):
		q.Sport = ikb.SportNFL
	case strings.Contains(lower, "nba") || strings.Contains(lower, "basketball"):
		q.Sport = ikb.SportNBA
	}

	return q
}
