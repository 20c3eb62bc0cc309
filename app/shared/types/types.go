package sharedtypes

// GameType identifies the competition format for a round.
type GameType string

const (
	GameTypeStrokePlay GameType = "stroke_play"
	GameTypeMatchPlay  GameType = "match_play"
	GameTypeScramble   GameType = "scramble"
	GameTypeBestBall   GameType = "best_ball"
	GameTypeHighLow    GameType = "high_low"
	GameTypeSkins      GameType = "skins"
	GameTypeNassau     GameType = "nassau"
)

// IsTeamGame reports whether the format is scored per team rather than per player.
func (g GameType) IsTeamGame() bool {
	switch g {
	case GameTypeScramble, GameTypeBestBall, GameTypeHighLow:
		return true
	}
	return false
}

// HandicapMode controls how playing handicaps are derived before stroke allocation.
type HandicapMode string

const (
	HandicapModeNone  HandicapMode = "none"  // everyone plays scratch
	HandicapModeGross HandicapMode = "gross" // full course handicap
	HandicapModeNet   HandicapMode = "net"   // relative to the lowest handicap in the round
)

// NassauFormat splits 18 holes into betting segments.
type NassauFormat string

const (
	NassauNines NassauFormat = "9-9"
	NassauSixes NassauFormat = "6-6-6"
)

// RoundStatus tracks a round through its lifecycle.
type RoundStatus string

const (
	RoundStatusSetup     RoundStatus = "setup"
	RoundStatusScheduled RoundStatus = "scheduled"
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
)

type (
	PlayerID   int64
	HoleNumber int
	BetID      int64
)

// Hole is one hole of the course being played. Immutable once fetched.
type Hole struct {
	Number         HoleNumber     `json:"number"`
	Par            int            `json:"par"`
	HandicapRating int            `json:"handicap_rating"` // 1 = hardest; 0 = unknown
	Yardages       map[string]int `json:"yardages,omitempty"`
}

// Player is a participant in a single round.
type Player struct {
	ID            PlayerID `json:"id"`
	Name          string   `json:"name"`
	HandicapIndex float64  `json:"handicap_index"`
	Team          *int     `json:"team,omitempty"`
	TeeColor      string   `json:"tee_color,omitempty"`
}

// Score is the recorded result for one (player, hole) pair. Strokes is nil
// until the hole has been played; rows are upserted as the round progresses.
type Score struct {
	PlayerID        PlayerID   `json:"player_id"`
	Hole            HoleNumber `json:"hole_number"`
	Strokes         *int       `json:"strokes"`
	Greenie         bool       `json:"greenie,omitempty"`
	GreenieDistance *float64   `json:"greenie_distance,omitempty"`
}

// RoundConfig is the scoring-relevant configuration of a round.
type RoundConfig struct {
	GameType      GameType     `json:"game_type"`
	SlopeRating   int          `json:"slope_rating"`
	HandicapMode  HandicapMode `json:"handicap_mode"`
	BetAmount     float64      `json:"bet_amount"`
	GreenieAmount float64      `json:"greenie_amount"`
	SkinsAmount   float64      `json:"skins_amount"`
	GreenieHoles  []HoleNumber `json:"greenie_holes,omitempty"`
	NassauFormat  NassauFormat `json:"nassau_format,omitempty"`
}

// RoundSnapshot is the full input the scoring core consumes: one consistent
// view of a round. The core never mutates a snapshot, so the same snapshot
// can be scored concurrently from multiple goroutines.
type RoundSnapshot struct {
	Config  RoundConfig `json:"config"`
	Players []Player    `json:"players"`
	Holes   []Hole      `json:"holes"`
	Scores  []Score     `json:"scores"`
}

// BetSegment names one portion of a Nassau-style bet.
type BetSegment string

const (
	SegmentFront   BetSegment = "front"
	SegmentMiddle  BetSegment = "middle"
	SegmentBack    BetSegment = "back"
	SegmentOverall BetSegment = "overall"
)

// Party is one side of a side bet: an individual or a team, always expressed
// as a list of player IDs so aggregation never branches on arity.
type Party struct {
	PlayerIDs []PlayerID `json:"player_ids"`
	IsTeam    bool       `json:"is_team"`
}

// Contains reports whether id is a member of the party.
func (p Party) Contains(id PlayerID) bool {
	for _, pid := range p.PlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// Disjoint reports whether the two parties share no players.
func (p Party) Disjoint(other Party) bool {
	for _, pid := range p.PlayerIDs {
		if other.Contains(pid) {
			return false
		}
	}
	return true
}

// SideBet is a wager between two parties. A press is a SideBet whose
// ParentBetID is set: it covers a single segment from StartHole onward and
// inherits parties and game type from its parent.
type SideBet struct {
	ID          BetID                  `json:"id"`
	ParentBetID *BetID                 `json:"parent_bet_id,omitempty"`
	GameType    GameType               `json:"game_type"`
	UseHighLow  bool                   `json:"use_high_low"`
	Party1      Party                  `json:"party1"`
	Party2      Party                  `json:"party2"`
	Amounts     map[BetSegment]float64 `json:"amounts"`
	StartHole   HoleNumber             `json:"start_hole"`
	Segment     BetSegment             `json:"segment,omitempty"` // presses only
}

// IsPress reports whether the bet is a press on another bet.
func (b SideBet) IsPress() bool { return b.ParentBetID != nil }
