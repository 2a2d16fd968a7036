// Package format renders IKB game records into the plugin's text views.
package format

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ikb-gg/ikb-go/internal/ikb"
)

// View selects one of the three textual renderings of a game record.
type View string

const (
	ViewGame    View = "game"
	ViewTeams   View = "teams"
	ViewPlayers View = "players"
)

// Source tags every result produced by this plugin.
const Source = "ikb"

// relevanceScore is constant; the plugin returns at most one result per
// query so there is nothing to rank against.
const relevanceScore = 1.0

// maxPlayers caps the players view at the top fantasy performers.
const maxPlayers = 10

// ParseView normalizes a view mode string. Unrecognized values fall back
// to the game view rather than failing the query.
func ParseView(s string) View {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case ViewTeams:
		return ViewTeams
	case ViewPlayers:
		return ViewPlayers
	default:
		return ViewGame
	}
}

// Metadata describes what a Result was rendered from.
type Metadata struct {
	Sport string `json:"sport"`
	Date  string `json:"date"`
	View  View   `json:"view"`
}

// Result is the formatted output for one query. It is produced once and
// never retained.
type Result struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Snippet  string   `json:"snippet"`
	Score    float64  `json:"score"`
	Source   string   `json:"source"`
	Metadata Metadata `json:"metadata"`
}

// NewResult renders the first game record of a fetch into a Result.
// Zero records yield an empty snippet; that is still a successful result.
func NewResult(sport, date, url string, view View, games []ikb.GameRecord) Result {
	snippet := ""
	if len(games) > 0 {
		snippet = Render(&games[0], view)
	}

	return Result{
		Title:   fmt.Sprintf("%s games for %s", strings.ToUpper(sport), date),
		URL:     url,
		Snippet: snippet,
		Score:   relevanceScore,
		Source:  Source,
		Metadata: Metadata{
			Sport: sport,
			Date:  date,
			View:  view,
		},
	}
}

// Render produces one text block for the record in the requested view.
func Render(rec *ikb.GameRecord, view View) string {
	if rec == nil {
		return ""
	}

	switch view {
	case ViewTeams:
		return renderTeams(rec.Teams)
	case ViewPlayers:
		return renderPlayers(rec.Players)
	default:
		return renderGame(&rec.Game)
	}
}

func renderGame(g *ikb.Game) string {
	quarters := make([]string, len(g.Quarters))
	for i, q := range g.Quarters {
		quarters[i] = fmt.Sprintf("Q%d: %d-%d", q.Quarter, q.AwayScore, q.HomeScore)
	}

	lines := []string{
		fmt.Sprintf("%s %d @ %s %d", g.AwayTeam, g.AwayScore, g.HomeTeam, g.HomeScore),
		scheduledDate(g.Scheduled),
		strings.Join(quarters, ", "),
		"Status: " + g.Status,
		"Venue: " + g.Venue,
	}
	return strings.Join(lines, "\n")
}

func renderTeams(teams []ikb.TeamStatLine) string {
	blocks := make([]string, len(teams))
	for i, t := range teams {
		blocks[i] = strings.Join([]string{
			fmt.Sprintf("%s (%s)", t.Name, t.Alias),
			fmt.Sprintf("Score: %d", t.Score),
			fmt.Sprintf("FG%%: %s, 3PT%%: %s", percent(t.FieldGoalsPercentage), percent(t.ThreePointsPercentage)),
			fmt.Sprintf("Rebounds: %d, Assists: %d", t.Rebounds, t.Assists),
			fmt.Sprintf("Steals: %d, Blocks: %d", t.Steals, t.Blocks),
		}, "\n")
	}
	return strings.Join(blocks, "\n\n")
}

func renderPlayers(players []ikb.PlayerStatLine) string {
	active := make([]ikb.PlayerStatLine, 0, len(players))
	for _, p := range players {
		if p.Played {
			active = append(active, p)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].FantasyValue() > active[j].FantasyValue()
	})

	if len(active) > maxPlayers {
		active = active[:maxPlayers]
	}

	blocks := make([]string, len(active))
	for i, p := range active {
		blocks[i] = strings.Join([]string{
			fmt.Sprintf("%s (%s) - %d:%02d", p.Name, p.Position, p.Minutes, p.Seconds),
			fmt.Sprintf("Points: %d, Rebounds: %d, Assists: %d", p.Points, p.Rebounds, p.Assists),
			fmt.Sprintf("FG: %d/%d, 3PT: %d/%d",
				p.FieldGoalsMade, p.FieldGoalsAttempted,
				p.ThreePointsMade, p.ThreePointsAttempted),
		}, "\n")
	}
	return strings.Join(blocks, "\n\n")
}

// percent formats a 0-100 percentage with exactly one fractional digit,
// rounding half away from zero.
func percent(v float64) string {
	return fmt.Sprintf("%.1f", math.Round(v*10)/10)
}

// scheduledDate renders the game's scheduled timestamp as a readable date.
// Unparseable timestamps pass through unchanged.
func scheduledDate(scheduled string) string {
	t, err := time.Parse(time.RFC3339, scheduled)
	if err != nil {
		return scheduled
	}
	return t.Format("January 2, 2006")
}
