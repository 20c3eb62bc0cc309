package leaderboardservice

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

func newTestService(repo Repository) *LeaderboardService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewLeaderboardService(repo, logger, metrics.NoOpMetrics{}, tracer)
}

func strokePlaySnapshot() sharedtypes.RoundSnapshot {
	snap := sharedtypes.RoundSnapshot{
		Config:  sharedtypes.RoundConfig{GameType: sharedtypes.GameTypeStrokePlay},
		Holes:   testHoles(),
		Players: []sharedtypes.Player{scratchPlayer(1, "Ana"), scratchPlayer(2, "Ben")},
	}
	snap.Scores = append(snap.Scores, roundScores(1, flatRound(4))...)
	snap.Scores = append(snap.Scores, roundScores(2, flatRound(5))...)
	return snap
}

func TestLeaderboardService_GetLeaderboard(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := NewFakeSnapshotRepository()
		repo.GetSnapshotFunc = func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
			assert.Equal(t, int64(42), tournamentID)
			return strokePlaySnapshot(), nil
		}
		svc := newTestService(repo)

		result, err := svc.GetLeaderboard(context.Background(), 42)
		require.NoError(t, err)
		require.True(t, result.IsSuccess())
		assert.Equal(t, "Ana", result.Success.Players[0].Player.Name)
		assert.Equal(t, []string{"GetSnapshot"}, repo.Trace())
	})

	t.Run("config problem becomes failure payload", func(t *testing.T) {
		repo := NewFakeSnapshotRepository()
		repo.GetSnapshotFunc = func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
			snap := strokePlaySnapshot()
			snap.Config.GameType = ""
			return snap, nil
		}
		svc := newTestService(repo)

		result, err := svc.GetLeaderboard(context.Background(), 42)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.Equal(t, int64(42), result.Failure.TournamentID)
		assert.Contains(t, result.Failure.Reason, "game_type")
	})

	t.Run("repository error propagates", func(t *testing.T) {
		repo := NewFakeSnapshotRepository()
		repo.GetSnapshotFunc = func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
			return sharedtypes.RoundSnapshot{}, errors.New("connection refused")
		}
		svc := newTestService(repo)

		result, err := svc.GetLeaderboard(context.Background(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GetLeaderboard")
		assert.False(t, result.IsSuccess())
	})
}

func TestLeaderboardService_GetHighLow(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		team1, team2 := 1, 2
		repo := NewFakeSnapshotRepository()
		repo.GetSnapshotFunc = func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
			snap := strokePlaySnapshot()
			snap.Players[0].Team = &team1
			snap.Players[1].Team = &team2
			return snap, nil
		}
		svc := newTestService(repo)

		result, err := svc.GetHighLow(context.Background(), 7)
		require.NoError(t, err)
		require.True(t, result.IsSuccess())
		assert.Equal(t, "team1", result.Success.Overall.Winner)
	})

	t.Run("missing team becomes failure payload", func(t *testing.T) {
		repo := NewFakeSnapshotRepository()
		repo.GetSnapshotFunc = func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
			return strokePlaySnapshot(), nil
		}
		svc := newTestService(repo)

		result, err := svc.GetHighLow(context.Background(), 7)
		require.NoError(t, err)
		require.True(t, result.IsFailure())
		assert.Contains(t, result.Failure.Reason, "team")
	})
}

func TestLeaderboardService_ExportScorecard(t *testing.T) {
	repo := NewFakeSnapshotRepository()
	repo.GetSnapshotFunc = func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
		return strokePlaySnapshot(), nil
	}
	svc := newTestService(repo)

	result, err := svc.ExportScorecard(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.NotEmpty(t, *result.Success)
}

func TestLeaderboardService_RenderStandingsChart(t *testing.T) {
	repo := NewFakeSnapshotRepository()
	repo.GetSnapshotFunc = func(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
		return strokePlaySnapshot(), nil
	}
	svc := newTestService(repo)

	result, err := svc.RenderStandingsChart(context.Background(), 42)
	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.NotEmpty(t, *result.Success)
}
