package multidayservice

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
)

func newTestService(repo Repository) *MultiDayService {
	return NewMultiDayService(
		repo,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func TestGetStandings_Success(t *testing.T) {
	repo := &FakeEventRepository{
		GetEventFunc: func(ctx context.Context, eventID int64) (Event, []EventPlayer, error) {
			return eventFixture(), teamRoster(), nil
		},
		GetEventRoundsFunc: func(ctx context.Context, eventID int64) ([]EventRound, error) {
			return []EventRound{teamRound(11, "Day 1", 1, 4, 5)}, nil
		},
	}
	svc := newTestService(repo)

	result, err := svc.GetStandings(context.Background(), 7)

	require.NoError(t, err)
	require.True(t, result.IsSuccess())
	assert.Equal(t, "Member Guest", result.Success.Event.Name)
	require.Len(t, result.Success.Standings, 4)
	assert.Equal(t, int64(101), result.Success.Standings[0].PlayerID)
	assert.Equal(t, []string{"GetEvent(7)", "GetEventRounds(7)"}, repo.trace)
}

func TestGetStandings_EventLoadErrorPropagates(t *testing.T) {
	repo := &FakeEventRepository{
		GetEventFunc: func(ctx context.Context, eventID int64) (Event, []EventPlayer, error) {
			return Event{}, nil, errors.New("event not found")
		},
	}
	svc := newTestService(repo)

	result, err := svc.GetStandings(context.Background(), 99)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GetStandings")
	assert.False(t, result.IsSuccess())
	assert.Equal(t, []string{"GetEvent(99)"}, repo.trace)
}

func TestGetStandings_RoundLoadErrorPropagates(t *testing.T) {
	repo := &FakeEventRepository{
		GetEventFunc: func(ctx context.Context, eventID int64) (Event, []EventPlayer, error) {
			return eventFixture(), teamRoster(), nil
		},
		GetEventRoundsFunc: func(ctx context.Context, eventID int64) ([]EventRound, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetStandings(context.Background(), 7)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
