package calcuttaservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/fairway-club/scorekeeper/app/shared/observability/metrics"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

func newTestService(repo Repository, snapshots SnapshotRepository) *CalcuttaService {
	return NewCalcuttaService(
		repo,
		snapshots,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func TestGetBoard_DefaultsWhenUnconfigured(t *testing.T) {
	repo := &FakeCalcuttaRepository{}
	snapshots := &FakeSnapshotRepository{
		GetSnapshotFunc: func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
			return auctionSnapshot(sharedtypes.GameTypeBestBall), nil
		},
	}
	svc := newTestService(repo, snapshots)

	result, err := svc.GetBoard(context.Background(), 5)

	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	board := *result.Success
	assert.False(t, board.Config.Enabled)
	assert.Equal(t, DefaultPayouts(), board.Config.Payouts)
	assert.Len(t, board.Teams, 2)
	assert.InDelta(t, 0.0, board.TotalPot, 0.001)
}

func TestGetResults_SettlesEnabledAuction(t *testing.T) {
	repo := &FakeCalcuttaRepository{
		GetConfigFunc: func(ctx context.Context, tournamentID int64) (Config, bool, error) {
			return Config{
				TournamentID: 5,
				Enabled:      true,
				Payouts:      []PayoutRule{{Place: 1, Type: PayoutPercent, Value: 100}},
			}, true, nil
		},
		GetPurchasesFunc: func(ctx context.Context, tournamentID int64) ([]Purchase, error) {
			return []Purchase{{TeamNumber: 1, BuyerName: "Gus", Amount: 60}}, nil
		},
	}
	snapshots := &FakeSnapshotRepository{
		GetSnapshotFunc: func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
			return auctionSnapshot(sharedtypes.GameTypeBestBall), nil
		},
	}
	svc := newTestService(repo, snapshots)

	result, err := svc.GetResults(context.Background(), 5)

	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	res := *result.Success
	assert.True(t, res.Enabled)
	assert.InDelta(t, 60.0, res.TotalPot, 0.001)
	require.NotEmpty(t, res.Payouts)
	assert.Equal(t, "Gus", res.Payouts[0].BuyerName)
	assert.InDelta(t, 60.0, res.Payouts[0].Payout, 0.001)
}

func TestGetResults_DisabledSkipsSnapshot(t *testing.T) {
	repo := &FakeCalcuttaRepository{}
	snapshots := &FakeSnapshotRepository{}
	svc := newTestService(repo, snapshots)

	result, err := svc.GetResults(context.Background(), 5)

	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.False(t, result.Success.Enabled)
	assert.Empty(t, snapshots.trace)
}

func TestSavePurchase_ValidatesInput(t *testing.T) {
	repo := &FakeCalcuttaRepository{}
	svc := newTestService(repo, &FakeSnapshotRepository{})

	result, err := svc.SavePurchase(context.Background(), 5, Purchase{TeamNumber: 0, BuyerName: "Gus"})
	require.NoError(t, err)
	require.True(t, result.IsFailure())
	assert.Equal(t, "team number is required", result.Failure.Reason)

	result, err = svc.SavePurchase(context.Background(), 5, Purchase{TeamNumber: 2})
	require.NoError(t, err)
	require.True(t, result.IsFailure())
	assert.Equal(t, "buyer name is required", result.Failure.Reason)

	assert.Empty(t, repo.trace)
}

func TestSavePurchase_Stores(t *testing.T) {
	repo := &FakeCalcuttaRepository{}
	svc := newTestService(repo, &FakeSnapshotRepository{})

	result, err := svc.SavePurchase(context.Background(), 5, Purchase{TeamNumber: 2, BuyerName: "Hal", Amount: 45})

	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.Equal(t, []string{"UpsertPurchase(5,2)"}, repo.trace)
}

func TestDeletePurchase_MissingRowFails(t *testing.T) {
	repo := &FakeCalcuttaRepository{
		DeletePurchaseFunc: func(ctx context.Context, tournamentID int64, teamNumber int) (int64, error) {
			return 0, nil
		},
	}
	svc := newTestService(repo, &FakeSnapshotRepository{})

	result, err := svc.DeletePurchase(context.Background(), 5, 3)

	require.NoError(t, err)
	require.True(t, result.IsFailure())
	assert.Equal(t, "no purchase for team 3", result.Failure.Reason)
}

func TestSaveConfig_RepoErrorPropagates(t *testing.T) {
	repo := &FakeCalcuttaRepository{
		SaveConfigFunc: func(ctx context.Context, cfg Config) error {
			return errors.New("connection reset")
		},
	}
	svc := newTestService(repo, &FakeSnapshotRepository{})

	_, err := svc.SaveConfig(context.Background(), Config{TournamentID: 5, Enabled: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SaveCalcuttaConfig")
}
