package sidebetservice

import (
	"context"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// ------------------------
// Fake Bet Repo
// ------------------------

// FakeBetRepository provides a programmable stub for the Repository interface.
type FakeBetRepository struct {
	trace []string

	GetBetsFunc               func(ctx context.Context, tournamentID int64) ([]sharedtypes.SideBet, error)
	GetBetFunc                func(ctx context.Context, betID sharedtypes.BetID) (sharedtypes.SideBet, error)
	CreateBetFunc             func(ctx context.Context, tournamentID int64, bet sharedtypes.SideBet) (sharedtypes.SideBet, error)
	UpdateBetFunc             func(ctx context.Context, betID sharedtypes.BetID, patch SideBetPatch) error
	DeleteWithDescendantsFunc func(ctx context.Context, betID sharedtypes.BetID) (int, error)
}

// NewFakeBetRepository initializes a new FakeBetRepository with an empty trace.
func NewFakeBetRepository() *FakeBetRepository {
	return &FakeBetRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeBetRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeBetRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeBetRepository) GetBets(ctx context.Context, tournamentID int64) ([]sharedtypes.SideBet, error) {
	f.record("GetBets")
	if f.GetBetsFunc != nil {
		return f.GetBetsFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeBetRepository) GetBet(ctx context.Context, betID sharedtypes.BetID) (sharedtypes.SideBet, error) {
	f.record("GetBet")
	if f.GetBetFunc != nil {
		return f.GetBetFunc(ctx, betID)
	}
	return sharedtypes.SideBet{}, nil
}

func (f *FakeBetRepository) CreateBet(ctx context.Context, tournamentID int64, bet sharedtypes.SideBet) (sharedtypes.SideBet, error) {
	f.record("CreateBet")
	if f.CreateBetFunc != nil {
		return f.CreateBetFunc(ctx, tournamentID, bet)
	}
	return bet, nil
}

func (f *FakeBetRepository) UpdateBet(ctx context.Context, betID sharedtypes.BetID, patch SideBetPatch) error {
	f.record("UpdateBet")
	if f.UpdateBetFunc != nil {
		return f.UpdateBetFunc(ctx, betID, patch)
	}
	return nil
}

func (f *FakeBetRepository) DeleteWithDescendants(ctx context.Context, betID sharedtypes.BetID) (int, error) {
	f.record("DeleteWithDescendants")
	if f.DeleteWithDescendantsFunc != nil {
		return f.DeleteWithDescendantsFunc(ctx, betID)
	}
	return 1, nil
}

// ------------------------
// Fake Snapshot Repo
// ------------------------

// FakeSnapshotRepository provides a programmable stub for the SnapshotRepository interface.
type FakeSnapshotRepository struct {
	GetSnapshotFunc func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error)
}

func (f *FakeSnapshotRepository) GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
	if f.GetSnapshotFunc != nil {
		return f.GetSnapshotFunc(ctx, tournamentID)
	}
	return sharedtypes.RoundSnapshot{}, nil
}
