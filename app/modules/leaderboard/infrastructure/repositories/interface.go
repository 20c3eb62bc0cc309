package leaderboarddb

import (
	"context"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// TournamentPatch enumerates the mutable tournament fields. Only non-nil
// fields are written; there is deliberately no update-any-column-by-name path.
type TournamentPatch struct {
	Name          *string
	CourseName    *string
	Status        *sharedtypes.RoundStatus
	GameType      *sharedtypes.GameType
	SlopeRating   *int
	HandicapMode  *sharedtypes.HandicapMode
	BetAmount     *float64
	GreenieAmount *float64
	SkinsAmount   *float64
	GreenieHoles  *[]int64
	NassauFormat  *sharedtypes.NassauFormat
}

// ScoreUpsert is one incoming score entry, keyed by player and hole.
type ScoreUpsert struct {
	PlayerID        int64
	HoleNumber      int
	Strokes         *int
	Greenie         bool
	GreenieDistance *float64
}

// TournamentDB is an interface for interacting with the tournament database.
type TournamentDB interface {
	CreateTournament(ctx context.Context, tournament *Tournament, players []Player, holes []Hole) error
	GetTournament(ctx context.Context, tournamentID int64) (*Tournament, error)
	UpdateTournament(ctx context.Context, tournamentID int64, patch TournamentPatch) error
	GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error)
	UpsertScores(ctx context.Context, tournamentID int64, entries []ScoreUpsert) error
}
