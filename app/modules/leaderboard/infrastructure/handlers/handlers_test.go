package leaderboardhandlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leaderboardservice "github.com/fairway-club/scorekeeper/app/modules/leaderboard/application"
	leaderboarddb "github.com/fairway-club/scorekeeper/app/modules/leaderboard/infrastructure/repositories"
	"github.com/fairway-club/scorekeeper/app/shared/results"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

type fakeService struct {
	GetLeaderboardFunc       func(ctx context.Context, tournamentID int64) (results.OperationResult[leaderboardservice.Leaderboard, leaderboardservice.ComputeFailure], error)
	GetHighLowFunc           func(ctx context.Context, tournamentID int64) (results.OperationResult[leaderboardservice.HighLowStandings, leaderboardservice.ComputeFailure], error)
	ExportScorecardFunc      func(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, leaderboardservice.ComputeFailure], error)
	RenderStandingsChartFunc func(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, leaderboardservice.ComputeFailure], error)
}

func (f *fakeService) GetLeaderboard(ctx context.Context, tournamentID int64) (results.OperationResult[leaderboardservice.Leaderboard, leaderboardservice.ComputeFailure], error) {
	return f.GetLeaderboardFunc(ctx, tournamentID)
}

func (f *fakeService) GetHighLow(ctx context.Context, tournamentID int64) (results.OperationResult[leaderboardservice.HighLowStandings, leaderboardservice.ComputeFailure], error) {
	return f.GetHighLowFunc(ctx, tournamentID)
}

func (f *fakeService) ExportScorecard(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, leaderboardservice.ComputeFailure], error) {
	return f.ExportScorecardFunc(ctx, tournamentID)
}

func (f *fakeService) RenderStandingsChart(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, leaderboardservice.ComputeFailure], error) {
	return f.RenderStandingsChartFunc(ctx, tournamentID)
}

type fakeTournamentDB struct {
	leaderboarddb.TournamentDB

	UpsertScoresFunc func(ctx context.Context, tournamentID int64, entries []leaderboarddb.ScoreUpsert) error
}

func (f *fakeTournamentDB) UpsertScores(ctx context.Context, tournamentID int64, entries []leaderboarddb.ScoreUpsert) error {
	return f.UpsertScoresFunc(ctx, tournamentID, entries)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetLeaderboard_OK(t *testing.T) {
	svc := &fakeService{
		GetLeaderboardFunc: func(ctx context.Context, tournamentID int64) (results.OperationResult[leaderboardservice.Leaderboard, leaderboardservice.ComputeFailure], error) {
			assert.Equal(t, int64(42), tournamentID)
			return results.Success[leaderboardservice.Leaderboard, leaderboardservice.ComputeFailure](leaderboardservice.Leaderboard{
				GameType: sharedtypes.GameTypeStrokePlay,
			}), nil
		},
	}
	h := NewHandlers(svc, &fakeTournamentDB{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/42/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stroke_play")
}

func TestGetLeaderboard_FailurePayload(t *testing.T) {
	svc := &fakeService{
		GetLeaderboardFunc: func(ctx context.Context, tournamentID int64) (results.OperationResult[leaderboardservice.Leaderboard, leaderboardservice.ComputeFailure], error) {
			return results.Failure[leaderboardservice.Leaderboard](leaderboardservice.ComputeFailure{
				TournamentID: tournamentID,
				Reason:       "game type is not set",
			}), nil
		},
	}
	h := NewHandlers(svc, &fakeTournamentDB{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/42/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "game type is not set")
}

func TestGetLeaderboard_BadID(t *testing.T) {
	h := NewHandlers(&fakeService{}, &fakeTournamentDB{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/abc/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertScores_OK(t *testing.T) {
	var captured []leaderboarddb.ScoreUpsert
	db := &fakeTournamentDB{
		UpsertScoresFunc: func(ctx context.Context, tournamentID int64, entries []leaderboarddb.ScoreUpsert) error {
			captured = entries
			return nil
		},
	}
	h := NewHandlers(&fakeService{}, db, testLogger())

	body := `[{"player_id":1,"hole_number":3,"strokes":4,"greenie":true,"greenie_distance":6.5}]`
	req := httptest.NewRequest(http.MethodPost, "/42/scores", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, captured, 1)
	assert.Equal(t, int64(1), captured[0].PlayerID)
	assert.Equal(t, 3, captured[0].HoleNumber)
	require.NotNil(t, captured[0].Strokes)
	assert.Equal(t, 4, *captured[0].Strokes)
	assert.True(t, captured[0].Greenie)
}

func TestUpsertScores_RejectsBadHole(t *testing.T) {
	h := NewHandlers(&fakeService{}, &fakeTournamentDB{}, testLogger())

	body := `[{"player_id":1,"hole_number":19,"strokes":4}]`
	req := httptest.NewRequest(http.MethodPost, "/42/scores", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportScorecard_SetsAttachmentHeaders(t *testing.T) {
	svc := &fakeService{
		ExportScorecardFunc: func(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, leaderboardservice.ComputeFailure], error) {
			return results.Success[[]byte, leaderboardservice.ComputeFailure]([]byte("PK")), nil
		},
	}
	h := NewHandlers(svc, &fakeTournamentDB{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/42/scorecard.xlsx", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "scorecard.xlsx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
}

func TestRenderStandingsChart_PNGContentType(t *testing.T) {
	svc := &fakeService{
		RenderStandingsChartFunc: func(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, leaderboardservice.ComputeFailure], error) {
			return results.Success[[]byte, leaderboardservice.ComputeFailure]([]byte{0x89, 'P', 'N', 'G'}), nil
		},
	}
	h := NewHandlers(svc, &fakeTournamentDB{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/42/standings.png", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}
