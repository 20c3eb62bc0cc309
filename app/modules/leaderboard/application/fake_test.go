package leaderboardservice

import (
	"context"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// ------------------------
// Fake Snapshot Repo
// ------------------------

// FakeSnapshotRepository provides a programmable stub for the Repository interface.
type FakeSnapshotRepository struct {
	trace []string

	GetSnapshotFunc func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error)
}

// NewFakeSnapshotRepository initializes a new FakeSnapshotRepository with an empty trace.
func NewFakeSnapshotRepository() *FakeSnapshotRepository {
	return &FakeSnapshotRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeSnapshotRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSnapshotRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSnapshotRepository) GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
	f.record("GetSnapshot")
	if f.GetSnapshotFunc != nil {
		return f.GetSnapshotFunc(ctx, tournamentID)
	}
	return sharedtypes.RoundSnapshot{}, nil
}
