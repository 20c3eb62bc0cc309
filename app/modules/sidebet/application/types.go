package sidebetservice

import (
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// SegmentStatus is the live match state of one bet segment.
type SegmentStatus struct {
	Segment        sharedtypes.BetSegment `json:"segment"`
	StartHole      int                    `json:"start_hole"`
	EndHole        int                    `json:"end_hole"`
	Amount         float64                `json:"amount"`
	Party1Wins     int                    `json:"party1_wins"`
	Party2Wins     int                    `json:"party2_wins"`
	Ties           int                    `json:"ties"`
	HolesPlayed    int                    `json:"holes_played"`
	HolesRemaining int                    `json:"holes_remaining"`
	Diff           int                    `json:"diff"` // positive = party1 up
	Leader         string                 `json:"leader"`
	ClosedOut      bool                   `json:"closed_out"`
	Dormie         bool                   `json:"dormie"`
	Display        string                 `json:"display"`
}

// SkinsHoleWin records one hole won outright in a skins-style bet.
type SkinsHoleWin struct {
	Hole     int                  `json:"hole"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Units    int                  `json:"units"` // 1 + carryovers consumed
}

// SkinsStatus is the live state of a skins-style side bet: every party member
// competes individually for per-hole units.
type SkinsStatus struct {
	Wins      []SkinsHoleWin               `json:"wins"`
	Units     map[sharedtypes.PlayerID]int `json:"units"`
	Carryover int                          `json:"carryover"`
}

// BetStatus is the computed state of one side bet plus its presses. Presses
// are reported as children and never feed back into the parent's segments.
type BetStatus struct {
	Bet      sharedtypes.SideBet `json:"bet"`
	Segments []SegmentStatus     `json:"segments,omitempty"`
	Skins    *SkinsStatus        `json:"skins,omitempty"`
	Presses  []BetStatus         `json:"presses,omitempty"`
}
