package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	scoringerr "github.com/fairway-club/scorekeeper/app/shared/errors"
	"github.com/fairway-club/scorekeeper/app/shared/observability/attr"
	"github.com/fairway-club/scorekeeper/app/shared/observability/metrics"
	"github.com/fairway-club/scorekeeper/app/shared/results"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// Repository loads the scoring inputs for a tournament round.
type Repository interface {
	GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error)
}

// ComputeFailure is the failure payload returned when a round cannot be
// scored because of its own configuration or state, as opposed to an
// infrastructure error.
type ComputeFailure struct {
	TournamentID int64  `json:"tournament_id"`
	Reason       string `json:"reason"`
}

// Service exposes the leaderboard operations.
type Service interface {
	GetLeaderboard(ctx context.Context, tournamentID int64) (results.OperationResult[Leaderboard, ComputeFailure], error)
	GetHighLow(ctx context.Context, tournamentID int64) (results.OperationResult[HighLowStandings, ComputeFailure], error)
	ExportScorecard(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, ComputeFailure], error)
	RenderStandingsChart(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, ComputeFailure], error)
}

// LeaderboardService implements Service on top of a snapshot repository.
type LeaderboardService struct {
	repo    Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo Repository,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *LeaderboardService {
	return &LeaderboardService{
		repo:    repo,
		logger:  logger,
		metrics: operationMetrics,
		tracer:  tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	tournamentID int64,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.Int64("tournament_id", tournamentID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.TournamentID("tournament_id", tournamentID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.TournamentID("tournament_id", tournamentID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.TournamentID("tournament_id", tournamentID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.TournamentID("tournament_id", tournamentID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.TournamentID("tournament_id", tournamentID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// computeFailure classifies scoring errors: configuration and precondition
// problems belong to the round and come back as failure payloads; anything
// else is an infrastructure error.
func computeFailure(tournamentID int64, err error) (ComputeFailure, bool) {
	switch err.(type) {
	case *scoringerr.ConfigError, *scoringerr.PreconditionError:
		return ComputeFailure{TournamentID: tournamentID, Reason: err.Error()}, true
	}
	return ComputeFailure{}, false
}

// GetLeaderboard loads the round snapshot and computes the full leaderboard.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, tournamentID int64) (results.OperationResult[Leaderboard, ComputeFailure], error) {
	return withTelemetry(s, ctx, "GetLeaderboard", tournamentID,
		func(ctx context.Context) (results.OperationResult[Leaderboard, ComputeFailure], error) {
			snap, err := s.repo.GetSnapshot(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[Leaderboard, ComputeFailure]{}, err
			}
			lb, err := Compute(snap)
			if err != nil {
				if failure, ok := computeFailure(tournamentID, err); ok {
					return results.Failure[Leaderboard](failure), nil
				}
				return results.OperationResult[Leaderboard, ComputeFailure]{}, err
			}
			return results.Success[Leaderboard, ComputeFailure](lb), nil
		})
}

// GetHighLow loads the round snapshot and computes the two-team high-low
// standings regardless of the round's primary game type.
func (s *LeaderboardService) GetHighLow(ctx context.Context, tournamentID int64) (results.OperationResult[HighLowStandings, ComputeFailure], error) {
	return withTelemetry(s, ctx, "GetHighLow", tournamentID,
		func(ctx context.Context) (results.OperationResult[HighLowStandings, ComputeFailure], error) {
			snap, err := s.repo.GetSnapshot(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[HighLowStandings, ComputeFailure]{}, err
			}
			hl, err := highLowFromTeams(snap, snap.Config)
			if err != nil {
				if failure, ok := computeFailure(tournamentID, err); ok {
					return results.Failure[HighLowStandings](failure), nil
				}
				return results.OperationResult[HighLowStandings, ComputeFailure]{}, err
			}
			return results.Success[HighLowStandings, ComputeFailure](*hl), nil
		})
}

// ExportScorecard renders the computed leaderboard as an XLSX workbook.
func (s *LeaderboardService) ExportScorecard(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, ComputeFailure], error) {
	return withTelemetry(s, ctx, "ExportScorecard", tournamentID,
		func(ctx context.Context) (results.OperationResult[[]byte, ComputeFailure], error) {
			snap, err := s.repo.GetSnapshot(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[[]byte, ComputeFailure]{}, err
			}
			lb, err := Compute(snap)
			if err != nil {
				if failure, ok := computeFailure(tournamentID, err); ok {
					return results.Failure[[]byte](failure), nil
				}
				return results.OperationResult[[]byte, ComputeFailure]{}, err
			}
			workbook, err := BuildScorecardXLSX(lb)
			if err != nil {
				return results.OperationResult[[]byte, ComputeFailure]{}, err
			}
			return results.Success[[]byte, ComputeFailure](workbook), nil
		})
}

// RenderStandingsChart renders the current standings as a PNG bar chart.
func (s *LeaderboardService) RenderStandingsChart(ctx context.Context, tournamentID int64) (results.OperationResult[[]byte, ComputeFailure], error) {
	return withTelemetry(s, ctx, "RenderStandingsChart", tournamentID,
		func(ctx context.Context) (results.OperationResult[[]byte, ComputeFailure], error) {
			snap, err := s.repo.GetSnapshot(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[[]byte, ComputeFailure]{}, err
			}
			lb, err := Compute(snap)
			if err != nil {
				if failure, ok := computeFailure(tournamentID, err); ok {
					return results.Failure[[]byte](failure), nil
				}
				return results.OperationResult[[]byte, ComputeFailure]{}, err
			}
			png, err := RenderStandingsPNG(lb)
			if err != nil {
				return results.OperationResult[[]byte, ComputeFailure]{}, err
			}
			return results.Success[[]byte, ComputeFailure](png), nil
		})
}
