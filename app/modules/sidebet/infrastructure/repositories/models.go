package sidebetdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// SideBet is one stored wager. A press is a row with parent_bet_id set; its
// parties are snapshotted from the parent at creation time so the row stands
// alone even if the parent is later edited.
type SideBet struct {
	bun.BaseModel `bun:"table:side_bets,alias:sb"`

	ID           int64                              `bun:"id,pk,autoincrement"`
	TournamentID int64                              `bun:"tournament_id,notnull"`
	ParentBetID  *int64                             `bun:"parent_bet_id"`
	GameType     sharedtypes.GameType               `bun:"game_type,notnull"`
	UseHighLow   bool                               `bun:"use_high_low,notnull,default:false"`
	Party1       sharedtypes.Party                  `bun:"party1,type:jsonb"`
	Party2       sharedtypes.Party                  `bun:"party2,type:jsonb"`
	Amounts      map[sharedtypes.BetSegment]float64 `bun:"amounts,type:jsonb"`
	StartHole    int                                `bun:"start_hole,notnull,default:1"`
	Segment      sharedtypes.BetSegment             `bun:"segment"`
	CreatedAt    time.Time                          `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (m *SideBet) toShared() sharedtypes.SideBet {
	bet := sharedtypes.SideBet{
		ID:         sharedtypes.BetID(m.ID),
		GameType:   m.GameType,
		UseHighLow: m.UseHighLow,
		Party1:     m.Party1,
		Party2:     m.Party2,
		Amounts:    m.Amounts,
		StartHole:  sharedtypes.HoleNumber(m.StartHole),
		Segment:    m.Segment,
	}
	if m.ParentBetID != nil {
		parent := sharedtypes.BetID(*m.ParentBetID)
		bet.ParentBetID = &parent
	}
	return bet
}

func fromShared(tournamentID int64, bet sharedtypes.SideBet) *SideBet {
	m := &SideBet{
		ID:           int64(bet.ID),
		TournamentID: tournamentID,
		GameType:     bet.GameType,
		UseHighLow:   bet.UseHighLow,
		Party1:       bet.Party1,
		Party2:       bet.Party2,
		Amounts:      bet.Amounts,
		StartHole:    int(bet.StartHole),
		Segment:      bet.Segment,
	}
	if m.StartHole < 1 {
		m.StartHole = 1
	}
	if bet.ParentBetID != nil {
		parent := int64(*bet.ParentBetID)
		m.ParentBetID = &parent
	}
	return m
}
