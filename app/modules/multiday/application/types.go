package multidayservice

import (
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// PointRule maps a finishing place to the points it earns.
type PointRule struct {
	Place  int     `json:"place"`
	Points float64 `json:"points"`
}

// PayoutRule maps a finishing place to its share of the purse. Exactly one
// of Percent and Fixed is meaningful per rule.
type PayoutRule struct {
	Place   int     `json:"place"`
	Percent float64 `json:"percent,omitempty"`
	Fixed   float64 `json:"fixed,omitempty"`
}

// Event is a multi-day competition spanning several scored rounds.
type Event struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	NumDays     int          `json:"num_days"`
	NumRounds   int          `json:"num_rounds"`
	Status      string       `json:"status"`
	Pot         float64      `json:"pot"`
	PointSystem []PointRule  `json:"point_system"`
	Payouts     []PayoutRule `json:"payout_structure"`
}

// EventPlayer is one entry on the event's master roster.
type EventPlayer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Team *int   `json:"team,omitempty"`
}

// EventRound is one round of the event with everything needed to score it:
// the snapshot plus the mapping from round-local player ids to the event
// roster.
type EventRound struct {
	TournamentID int64                          `json:"tournament_id"`
	Name         string                         `json:"name"`
	DayNumber    int                            `json:"day_number"`
	RoundNumber  int                            `json:"round_number"`
	Status       sharedtypes.RoundStatus        `json:"status"`
	IsTeamGame   bool                           `json:"is_team_game"`
	Snapshot     sharedtypes.RoundSnapshot      `json:"-"`
	PlayerLinks  map[sharedtypes.PlayerID]int64 `json:"-"`
}

// RoundResult is one player's (or team anchor's) finish in one round.
type RoundResult struct {
	TournamentID int64   `json:"tournament_id"`
	RoundName    string  `json:"round_name"`
	DayNumber    int     `json:"day_number"`
	RoundNumber  int     `json:"round_number"`
	Position     int     `json:"position"`
	Points       float64 `json:"points"`
	GrossTotal   int     `json:"gross_total"`
	ToPar        int     `json:"to_par"`
}

// Standing is one row of the overall event leaderboard.
type Standing struct {
	PlayerID     int64         `json:"player_id"`
	PlayerName   string        `json:"player_name"`
	Team         *int          `json:"team,omitempty"`
	TotalPoints  float64       `json:"total_points"`
	Wins         int           `json:"wins"`
	TotalStrokes int           `json:"total_strokes"`
	Position     int           `json:"position"`
	RoundResults []RoundResult `json:"round_results"`
}
