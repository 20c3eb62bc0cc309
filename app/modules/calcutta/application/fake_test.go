package calcuttaservice

import (
	"context"
	"fmt"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// FakeCalcuttaRepository is a programmable Repository for tests.
type FakeCalcuttaRepository struct {
	trace []string

	GetConfigFunc      func(ctx context.Context, tournamentID int64) (Config, bool, error)
	SaveConfigFunc     func(ctx context.Context, cfg Config) error
	GetPurchasesFunc   func(ctx context.Context, tournamentID int64) ([]Purchase, error)
	UpsertPurchaseFunc func(ctx context.Context, tournamentID int64, purchase Purchase) error
	DeletePurchaseFunc func(ctx context.Context, tournamentID int64, teamNumber int) (int64, error)
}

func (f *FakeCalcuttaRepository) record(call string) {
	f.trace = append(f.trace, call)
}

func (f *FakeCalcuttaRepository) GetConfig(ctx context.Context, tournamentID int64) (Config, bool, error) {
	f.record(fmt.Sprintf("GetConfig(%d)", tournamentID))
	if f.GetConfigFunc != nil {
		return f.GetConfigFunc(ctx, tournamentID)
	}
	return Config{}, false, nil
}

func (f *FakeCalcuttaRepository) SaveConfig(ctx context.Context, cfg Config) error {
	f.record(fmt.Sprintf("SaveConfig(%d)", cfg.TournamentID))
	if f.SaveConfigFunc != nil {
		return f.SaveConfigFunc(ctx, cfg)
	}
	return nil
}

func (f *FakeCalcuttaRepository) GetPurchases(ctx context.Context, tournamentID int64) ([]Purchase, error) {
	f.record(fmt.Sprintf("GetPurchases(%d)", tournamentID))
	if f.GetPurchasesFunc != nil {
		return f.GetPurchasesFunc(ctx, tournamentID)
	}
	return nil, nil
}

func (f *FakeCalcuttaRepository) UpsertPurchase(ctx context.Context, tournamentID int64, purchase Purchase) error {
	f.record(fmt.Sprintf("UpsertPurchase(%d,%d)", tournamentID, purchase.TeamNumber))
	if f.UpsertPurchaseFunc != nil {
		return f.UpsertPurchaseFunc(ctx, tournamentID, purchase)
	}
	return nil
}

func (f *FakeCalcuttaRepository) DeletePurchase(ctx context.Context, tournamentID int64, teamNumber int) (int64, error) {
	f.record(fmt.Sprintf("DeletePurchase(%d,%d)", tournamentID, teamNumber))
	if f.DeletePurchaseFunc != nil {
		return f.DeletePurchaseFunc(ctx, tournamentID, teamNumber)
	}
	return 1, nil
}

// FakeSnapshotRepository is a programmable SnapshotRepository for tests.
type FakeSnapshotRepository struct {
	trace []string

	GetSnapshotFunc func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error)
}

func (f *FakeSnapshotRepository) GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
	f.trace = append(f.trace, fmt.Sprintf("GetSnapshot(%d)", tournamentID))
	if f.GetSnapshotFunc != nil {
		return f.GetSnapshotFunc(ctx, tournamentID)
	}
	return sharedtypes.RoundSnapshot{}, nil
}
