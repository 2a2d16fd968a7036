package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain text", "nba games today", "nba games today", false},
		{"surrounding whitespace", "  lakers score \n", "lakers score", false},
		{"empty", "", "", true},
		{"whitespace only", "   \t\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrEmptyQuery)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpretDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare date", "2024-03-01", "2024-03-01"},
		{"date inside sentence", "show me games on 2024-03-01 please", "2024-03-01"},
		{"first of two dates wins", "from 2024-01-15 to 2024-02-20", "2024-01-15"},
		{"invalid calendar date passes through", "scores for 2024-13-40", "2024-13-40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.text, Defaults{})
			assert.Equal(t, tt.want, got.Date)
		})
	}
}

func TestInterpretDateDefaultsToTodayUTC(t *testing.T) {
	got := Interpret("who won last night", Defaults{})
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), got.Date)
}

func TestInterpretDateDefaultFromConfig(t *testing.T) {
	got := Interpret("who won", Defaults{Date: "2024-06-01"})
	assert.Equal(t, "2024-06-01", got.Date)

	// Text always overrides the configured default.
	got = Interpret("who won on 2024-07-04", Defaults{Date: "2024-06-01"})
	assert.Equal(t, "2024-07-04", got.Date)
}

func TestInterpretSport(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"nfl keyword", "nfl scores", "nfl"},
		{"football keyword", "Sunday FOOTBALL results", "nfl"},
		{"nba keyword", "NBA standings", "nba"},
		{"basketball keyword", "basketball games tonight", "nba"},
		{"both keywords prefer nfl", "nba and nfl games", "nfl"},
		{"neither keyword defaults nba", "games tonight", "nba"},
		{"case insensitive", "NfL please", "nfl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.text, Defaults{})
			assert.Equal(t, tt.want, got.Sport)
		})
	}
}

func TestInterpretSportDefaultFromConfig(t *testing.T) {
	got := Interpret("games tonight", Defaults{Sport: "nfl"})
	assert.Equal(t, "nfl", got.Sport)

	// Explicit keyword beats the configured default.
	got = Interpret("basketball tonight", Defaults{Sport: "nfl"})
	assert.Equal(t, "nba", got.Sport)
}
