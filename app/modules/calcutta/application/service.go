package calcuttaservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fairway-club/scorekeeper/app/shared/observability/attr"
	"github.com/fairway-club/scorekeeper/app/shared/observability/metrics"
	"github.com/fairway-club/scorekeeper/app/shared/results"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// Repository stores calcutta configuration and purchases.
type Repository interface {
	// GetConfig returns the stored config, or ok=false when the tournament
	// has never configured its calcutta.
	GetConfig(ctx context.Context, tournamentID int64) (Config, bool, error)
	SaveConfig(ctx context.Context, cfg Config) error
	GetPurchases(ctx context.Context, tournamentID int64) ([]Purchase, error)
	UpsertPurchase(ctx context.Context, tournamentID int64, purchase Purchase) error
	DeletePurchase(ctx context.Context, tournamentID int64, teamNumber int) (int64, error)
}

// SnapshotRepository loads round snapshots for settlement.
type SnapshotRepository interface {
	GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error)
}

// CalcuttaFailure is the failure payload for calcutta operations.
type CalcuttaFailure struct {
	TournamentID int64  `json:"tournament_id"`
	Reason       string `json:"reason"`
}

// Service exposes the calcutta auction operations.
type Service interface {
	GetBoard(ctx context.Context, tournamentID int64) (results.OperationResult[Board, CalcuttaFailure], error)
	GetResults(ctx context.Context, tournamentID int64) (results.OperationResult[Results, CalcuttaFailure], error)
	SaveConfig(ctx context.Context, cfg Config) (results.OperationResult[Config, CalcuttaFailure], error)
	SavePurchase(ctx context.Context, tournamentID int64, purchase Purchase) (results.OperationResult[Purchase, CalcuttaFailure], error)
	DeletePurchase(ctx context.Context, tournamentID int64, teamNumber int) (results.OperationResult[bool, CalcuttaFailure], error)
}

// CalcuttaService implements Service.
type CalcuttaService struct {
	repo      Repository
	snapshots SnapshotRepository
	logger    *slog.Logger
	metrics   metrics.OperationMetrics
	tracer    trace.Tracer
}

// NewCalcuttaService creates a new CalcuttaService.
func NewCalcuttaService(
	repo Repository,
	snapshots SnapshotRepository,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *CalcuttaService {
	return &CalcuttaService{
		repo:      repo,
		snapshots: snapshots,
		logger:    logger,
		metrics:   operationMetrics,
		tracer:    tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *CalcuttaService,
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

// configOrDefault loads the stored config or falls back to a disabled
// default with the standard payout table.
func (s *CalcuttaService) configOrDefault(ctx context.Context, tournamentID int64) (Config, error) {
	cfg, ok, err := s.repo.GetConfig(ctx, tournamentID)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Config{TournamentID: tournamentID, Enabled: false, Payouts: DefaultPayouts()}, nil
	}
	return cfg, nil
}

// GetBoard returns the auction view: config, purchases, teams, and the pot.
func (s *CalcuttaService) GetBoard(ctx context.Context, tournamentID int64) (results.OperationResult[Board, CalcuttaFailure], error) {
	return withTelemetry(s, ctx, "GetCalcuttaBoard", tournamentID,
		func(ctx context.Context) (results.OperationResult[Board, CalcuttaFailure], error) {
			cfg, err := s.configOrDefault(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[Board, CalcuttaFailure]{}, err
			}
			purchases, err := s.repo.GetPurchases(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[Board, CalcuttaFailure]{}, err
			}
			snap, err := s.snapshots.GetSnapshot(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[Board, CalcuttaFailure]{}, err
			}
			return results.Success[Board, CalcuttaFailure](Board{
				Config:    cfg,
				Purchases: purchases,
				Teams:     TeamsByNumber(snap.Players),
				TotalPot:  TotalPot(purchases),
			}), nil
		})
}

// GetResults settles the auction against current team standings. A disabled
// calcutta settles to an empty, disabled result rather than a failure.
func (s *CalcuttaService) GetResults(ctx context.Context, tournamentID int64) (results.OperationResult[Results, CalcuttaFailure], error) {
	return withTelemetry(s, ctx, "GetCalcuttaResults", tournamentID,
		func(ctx context.Context) (results.OperationResult[Results, CalcuttaFailure], error) {
			cfg, err := s.configOrDefault(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[Results, CalcuttaFailure]{}, err
			}
			if !cfg.Enabled {
				return results.Success[Results, CalcuttaFailure](ComputeResults(cfg, nil, sharedtypes.RoundSnapshot{})), nil
			}
			purchases, err := s.repo.GetPurchases(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[Results, CalcuttaFailure]{}, err
			}
			snap, err := s.snapshots.GetSnapshot(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[Results, CalcuttaFailure]{}, err
			}
			return results.Success[Results, CalcuttaFailure](ComputeResults(cfg, purchases, snap)), nil
		})
}

// SaveConfig stores the calcutta configuration for a tournament.
func (s *CalcuttaService) SaveConfig(ctx context.Context, cfg Config) (results.OperationResult[Config, CalcuttaFailure], error) {
	return withTelemetry(s, ctx, "SaveCalcuttaConfig", cfg.TournamentID,
		func(ctx context.Context) (results.OperationResult[Config, CalcuttaFailure], error) {
			if err := s.repo.SaveConfig(ctx, cfg); err != nil {
				return results.OperationResult[Config, CalcuttaFailure]{}, err
			}
			return results.Success[Config, CalcuttaFailure](cfg), nil
		})
}

// SavePurchase records or overwrites a team's winning bid.
func (s *CalcuttaService) SavePurchase(ctx context.Context, tournamentID int64, purchase Purchase) (results.OperationResult[Purchase, CalcuttaFailure], error) {
	return withTelemetry(s, ctx, "SaveCalcuttaPurchase", tournamentID,
		func(ctx context.Context) (results.OperationResult[Purchase, CalcuttaFailure], error) {
			if purchase.TeamNumber <= 0 {
				return results.Failure[Purchase](CalcuttaFailure{
					TournamentID: tournamentID,
					Reason:       "team number is required",
				}), nil
			}
			if purchase.BuyerName == "" {
				return results.Failure[Purchase](CalcuttaFailure{
					TournamentID: tournamentID,
					Reason:       "buyer name is required",
				}), nil
			}
			if err := s.repo.UpsertPurchase(ctx, tournamentID, purchase); err != nil {
				return results.OperationResult[Purchase, CalcuttaFailure]{}, err
			}
			return results.Success[Purchase, CalcuttaFailure](purchase), nil
		})
}

// DeletePurchase removes a team's bid, returning a failure when no bid
// exists for the team.
func (s *CalcuttaService) DeletePurchase(ctx context.Context, tournamentID int64, teamNumber int) (results.OperationResult[bool, CalcuttaFailure], error) {
	return withTelemetry(s, ctx, "DeleteCalcuttaPurchase", tournamentID,
		func(ctx context.Context) (results.OperationResult[bool, CalcuttaFailure], error) {
			deleted, err := s.repo.DeletePurchase(ctx, tournamentID, teamNumber)
			if err != nil {
				return results.OperationResult[bool, CalcuttaFailure]{}, err
			}
			if deleted == 0 {
				return results.Failure[bool](CalcuttaFailure{
					TournamentID: tournamentID,
					Reason:       fmt.Sprintf("no purchase for team %d", teamNumber),
				}), nil
			}
			return results.Success[bool, CalcuttaFailure](true), nil
		})
}
