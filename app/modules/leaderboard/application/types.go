package leaderboardservice

import (
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// PlayerView is the identity block attached to every leaderboard row.
type PlayerView struct {
	ID              sharedtypes.PlayerID `json:"id"`
	Name            string               `json:"name"`
	HandicapIndex   float64              `json:"handicap_index"`
	CourseHandicap  int                  `json:"course_handicap"`
	DisplayHandicap int                  `json:"display_handicap"`
	Team            *int                 `json:"team,omitempty"`
	TeeColor        string               `json:"tee_color,omitempty"`
}

// HoleScore is one cell of the scorecard. Gross and Net are nil for holes
// not yet played; Strokes is the fair-allocation dot count and is always
// present.
type HoleScore struct {
	Hole            int      `json:"hole"`
	Par             int      `json:"par"`
	Gross           *int     `json:"gross"`
	Net             *int     `json:"net"`
	Strokes         int      `json:"strokes"`
	Greenie         bool     `json:"greenie,omitempty"`
	GreenieDistance *float64 `json:"greenie_distance,omitempty"`
}

// StatLine counts score types across the holes a player has finished.
type StatLine struct {
	Birdies int `json:"birdies"` // includes eagles and better
	Pars    int `json:"pars"`
	Bogeys  int `json:"bogeys"`
	Doubles int `json:"doubles"`
	Others  int `json:"others"`
}

// SkinAward is one hole won outright in a skins game.
type SkinAward struct {
	Hole       int                  `json:"hole"`
	PlayerID   sharedtypes.PlayerID `json:"player_id"`
	PlayerName string               `json:"player_name"`
	Value      float64              `json:"value"`
	Carryovers int                  `json:"carryovers"`
}

// PlayerResult is one ranked leaderboard row.
type PlayerResult struct {
	Player      PlayerView  `json:"player"`
	GrossTotal  int         `json:"gross_total"`
	NetTotal    int         `json:"net_total"`
	Front9Gross int         `json:"front9_gross"`
	Back9Gross  int         `json:"back9_gross"`
	Front9Net   int         `json:"front9_net"`
	Back9Net    int         `json:"back9_net"`
	HolesPlayed int         `json:"holes_played"`
	ToPar       int         `json:"to_par"`
	ToParNet    int         `json:"to_par_net"`
	Stats       StatLine    `json:"stats"`
	GreeniesWon int         `json:"greenies_won"`
	HoleScores  []HoleScore `json:"hole_scores"`

	// Match play only.
	MatchStatus string `json:"match_status,omitempty"`
	HolesWon    int    `json:"holes_won,omitempty"`

	// Skins only.
	SkinsWon   []SkinAward `json:"skins_won,omitempty"`
	SkinsTotal float64     `json:"skins_total,omitempty"`
}

// TeamResult is one ranked team row for scramble / best ball.
type TeamResult struct {
	Team       int            `json:"team"`
	Players    []PlayerResult `json:"players"`
	GrossTotal int            `json:"gross_total"`
	NetTotal   int            `json:"net_total"`
}

// Settlement is one consolidated payment between two players.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// Leaderboard is the full computed view of a round. It is derived data:
// recomputed on demand from the current snapshot, never stored.
type Leaderboard struct {
	GameType       sharedtypes.GameType     `json:"game_type"`
	HandicapMode   sharedtypes.HandicapMode `json:"handicap_mode"`
	LowestHandicap int                      `json:"lowest_handicap"` // net mode only
	TotalPar       int                      `json:"total_par"`
	Front9Par      int                      `json:"front9_par"`
	Back9Par       int                      `json:"back9_par"`
	GreenieHoles   []sharedtypes.HoleNumber `json:"greenie_holes,omitempty"`
	Players        []PlayerResult           `json:"players"`
	Teams          []TeamResult             `json:"teams,omitempty"`
	Skins          []SkinAward              `json:"skins,omitempty"`
	SkinsCarryover int                      `json:"skins_carryover,omitempty"`
	HighLow        *HighLowStandings        `json:"high_low,omitempty"`
	Settlements    []Settlement             `json:"settlements"`
}

// SegmentPoints accumulates high-low points over one Nassau segment.
type SegmentPoints struct {
	StartHole   int    `json:"start_hole"`
	EndHole     int    `json:"end_hole"`
	Team1Points int    `json:"team1_points"`
	Team2Points int    `json:"team2_points"`
	HolesPlayed int    `json:"holes_played"`
	Winner      string `json:"winner"` // "team1", "team2", or "tie"
	Margin      int    `json:"margin"`
}

// HighLowHole is the per-hole detail of a high-low match. Incomplete holes
// (one side missing every score) carry Incomplete=true and no points.
type HighLowHole struct {
	Hole            int    `json:"hole"`
	Incomplete      bool   `json:"incomplete,omitempty"`
	Team1Low        int    `json:"team1_low,omitempty"`
	Team1High       int    `json:"team1_high,omitempty"`
	Team2Low        int    `json:"team2_low,omitempty"`
	Team2High       int    `json:"team2_high,omitempty"`
	LowPointWinner  string `json:"low_point_winner,omitempty"`
	HighPointWinner string `json:"high_point_winner,omitempty"`
	Team1Points     int    `json:"team1_points"`
	Team2Points     int    `json:"team2_points"`
}

// HighLowTeam labels one side of a high-low match.
type HighLowTeam struct {
	Name    string                 `json:"name"`
	Players []sharedtypes.PlayerID `json:"players"`
}

// HighLowStandings is the computed state of a two-team high-low match with
// Nassau-style segment scoring.
type HighLowStandings struct {
	Team1       HighLowTeam                              `json:"team1"`
	Team2       HighLowTeam                              `json:"team2"`
	HoleResults []HighLowHole                            `json:"hole_results"`
	Segments    map[sharedtypes.BetSegment]SegmentPoints `json:"segments"`
	Overall     SegmentPoints                            `json:"overall"`
}
