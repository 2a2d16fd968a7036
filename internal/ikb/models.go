// Package ikb provides the HTTP client and data model for the IKB sports API.
package ikb

// Sport identifiers accepted by the API path.
const (
	SportNBA = "nba"
	SportNFL = "nfl"
)

// GamesResponse is the top-level payload returned by GET /ai/{sport}/{date}.
type GamesResponse struct {
	Data     []GameRecord `json:"data"`
	Metadata Metadata     `json:"metadata"`
}

// Metadata carries the record count reported by the API.
type Metadata struct {
	Count int `json:"count"`
}

// GameRecord is one sporting event with its embedded team and player lines.
// Teams and players are always scoped to this single game.
type GameRecord struct {
	Game    Game             `json:"game"`
	Teams   []TeamStatLine   `json:"teams"`
	Players []PlayerStatLine `json:"players"`
}

// Game holds the event-level fields of a record.
type Game struct {
	Season    string         `json:"season"`
	Status    string         `json:"status"`
	Scheduled string         `json:"scheduled"`
	HomeTeam  string         `json:"homeTeam"`
	AwayTeam  string         `json:"awayTeam"`
	HomeScore int            `json:"homeScore"`
	AwayScore int            `json:"awayScore"`
	Venue     string         `json:"venue"`
	Quarters  []QuarterScore `json:"quarters"`
}

// QuarterScore is one per-period score pair, ordered as received.
type QuarterScore struct {
	Quarter   int `json:"quarter"`
	AwayScore int `json:"awayScore"`
	HomeScore int `json:"homeScore"`
}

// TeamStatLine is the per-team aggregate for one game.
// Percentages are 0-100 as reported upstream.
type TeamStatLine struct {
	Name                  string  `json:"name"`
	Alias                 string  `json:"alias"`
	Score                 int     `json:"score"`
	FieldGoalsPercentage  float64 `json:"fieldGoalsPct"`
	ThreePointsPercentage float64 `json:"threePointsPct"`
	Rebounds              int     `json:"rebounds"`
	Assists               int     `json:"assists"`
	Steals                int     `json:"steals"`
	Blocks                int     `json:"blocks"`
	Turnovers             int     `json:"turnovers"`
}

// PlayerStatLine is one player's performance in one game.
// FantasyPoints is optional upstream; nil means the API did not compute it
// and sorting treats it as zero.
type PlayerStatLine struct {
	Name                 string   `json:"name"`
	Position             string   `json:"position"`
	Played               bool     `json:"played"`
	Minutes              int      `json:"minutes"`
	Seconds              int      `json:"seconds"`
	Points               int      `json:"points"`
	Rebounds             int      `json:"rebounds"`
	Assists              int      `json:"assists"`
	Steals               int      `json:"steals"`
	Blocks               int      `json:"blocks"`
	FieldGoalsMade       int      `json:"fieldGoalsMade"`
	FieldGoalsAttempted  int      `json:"fieldGoalsAttempted"`
	ThreePointsMade      int      `json:"threePointsMade"`
	ThreePointsAttempted int      `json:"threePointsAttempted"`
	FreeThrowsMade       int      `json:"freeThrowsMade"`
	FreeThrowsAttempted  int      `json:"freeThrowsAttempted"`
	FantasyPoints        *float64 `json:"fantasyPoints,omitempty"`
}

// FantasyValue returns the fantasy points with the documented zero default.
func (p *PlayerStatLine) FantasyValue() float64 {
	if p.FantasyPoints == nil {
		return 0
	}
	return *p.FantasyPoints
}
