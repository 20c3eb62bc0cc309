package sidebetservice

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

// Repository stores side bets and their press chains.
type Repository interface {
	GetBets(ctx context.Context, tournamentID int64) ([]sharedtypes.SideBet, error)
	GetBet(ctx context.Context, betID sharedtypes.BetID) (sharedtypes.SideBet, error)
	CreateBet(ctx context.Context, tournamentID int64, bet sharedtypes.SideBet) (sharedtypes.SideBet, error)
	UpdateBet(ctx context.Context, betID sharedtypes.BetID, patch SideBetPatch) error
	DeleteWithDescendants(ctx context.Context, betID sharedtypes.BetID) (int, error)
}

// SnapshotRepository loads the scoring inputs the engine evaluates bets against.
type SnapshotRepository interface {
	GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error)
}

// SideBetPatch enumerates the mutable fields of a stored bet. Only non-nil
// fields are written.
type SideBetPatch struct {
	Amounts    *map[sharedtypes.BetSegment]float64
	UseHighLow *bool
}

// BetFailure is the failure payload for bet operations that were understood
// but refused.
type BetFailure struct {
	BetID  sharedtypes.BetID `json:"bet_id,omitempty"`
	Reason string            `json:"reason"`
}

// Service exposes the side-bet operations.
type Service interface {
	GetBetStatuses(ctx context.Context, tournamentID int64) (results.OperationResult[[]BetStatus, BetFailure], error)
	CreateBet(ctx context.Context, tournamentID int64, bet sharedtypes.SideBet) (results.OperationResult[sharedtypes.SideBet, BetFailure], error)
	CreatePress(ctx context.Context, tournamentID int64, parentID sharedtypes.BetID, segment sharedtypes.BetSegment, startHole sharedtypes.HoleNumber, amount float64) (results.OperationResult[sharedtypes.SideBet, BetFailure], error)
	UpdateBet(ctx context.Context, tournamentID int64, betID sharedtypes.BetID, patch SideBetPatch) (results.OperationResult[sharedtypes.SideBet, BetFailure], error)
	DeleteBet(ctx context.Context, tournamentID int64, betID sharedtypes.BetID) (results.OperationResult[int, BetFailure], error)
}

// SideBetService implements Service.
type SideBetService struct {
	repo      Repository
	snapshots SnapshotRepository
	logger    *slog.Logger
	metrics   metrics.OperationMetrics
	tracer    trace.Tracer
}

// NewSideBetService creates a new SideBetService.
func NewSideBetService(
	repo Repository,
	snapshots SnapshotRepository,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *SideBetService {
	return &SideBetService{
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
	s *SideBetService,
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

// validateBet enforces the structural rules for a new top-level bet.
func validateBet(bet sharedtypes.SideBet) error {
	if bet.GameType == "" {
		return &scoringerr.ConfigError{Field: "game_type", Reason: "must be set"}
	}
	if len(bet.Party1.PlayerIDs) == 0 || len(bet.Party2.PlayerIDs) == 0 {
		return &scoringerr.PreconditionError{Op: "create_bet", Reason: "both parties need at least one player"}
	}
	if !bet.Party1.Disjoint(bet.Party2) {
		return &scoringerr.PreconditionError{Op: "create_bet", Reason: "parties share a player"}
	}
	return nil
}

func betFailure(betID sharedtypes.BetID, err error) (BetFailure, bool) {
	switch err.(type) {
	case *scoringerr.ConfigError, *scoringerr.PreconditionError:
		return BetFailure{BetID: betID, Reason: err.Error()}, true
	}
	return BetFailure{}, false
}

// GetBetStatuses computes the live status tree for every bet in the tournament.
func (s *SideBetService) GetBetStatuses(ctx context.Context, tournamentID int64) (results.OperationResult[[]BetStatus, BetFailure], error) {
	return withTelemetry(s, ctx, "GetBetStatuses", tournamentID,
		func(ctx context.Context) (results.OperationResult[[]BetStatus, BetFailure], error) {
			bets, err := s.repo.GetBets(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[[]BetStatus, BetFailure]{}, err
			}
			snap, err := s.snapshots.GetSnapshot(ctx, tournamentID)
			if err != nil {
				return results.OperationResult[[]BetStatus, BetFailure]{}, err
			}
			statuses := BuildBetTree(bets).Statuses(snap)
			return results.Success[[]BetStatus, BetFailure](statuses), nil
		})
}

// CreateBet validates and stores a new top-level side bet.
func (s *SideBetService) CreateBet(ctx context.Context, tournamentID int64, bet sharedtypes.SideBet) (results.OperationResult[sharedtypes.SideBet, BetFailure], error) {
	return withTelemetry(s, ctx, "CreateBet", tournamentID,
		func(ctx context.Context) (results.OperationResult[sharedtypes.SideBet, BetFailure], error) {
			if err := validateBet(bet); err != nil {
				if failure, ok := betFailure(0, err); ok {
					return results.Failure[sharedtypes.SideBet](failure), nil
				}
				return results.OperationResult[sharedtypes.SideBet, BetFailure]{}, err
			}
			bet.ParentBetID = nil
			created, err := s.repo.CreateBet(ctx, tournamentID, bet)
			if err != nil {
				return results.OperationResult[sharedtypes.SideBet, BetFailure]{}, err
			}
			return results.Success[sharedtypes.SideBet, BetFailure](created), nil
		})
}

// CreatePress anchors a new press on an existing bet. The press covers a
// single segment from startHole to the segment's end and plays under the
// parent's parties and rules.
func (s *SideBetService) CreatePress(ctx context.Context, tournamentID int64, parentID sharedtypes.BetID, segment sharedtypes.BetSegment, startHole sharedtypes.HoleNumber, amount float64) (results.OperationResult[sharedtypes.SideBet, BetFailure], error) {
	return withTelemetry(s, ctx, "CreatePress", tournamentID,
		func(ctx context.Context) (results.OperationResult[sharedtypes.SideBet, BetFailure], error) {
			parent, err := s.repo.GetBet(ctx, parentID)
			if err != nil {
				return results.OperationResult[sharedtypes.SideBet, BetFailure]{}, err
			}
			if parent.GameType == sharedtypes.GameTypeSkins {
				return results.Failure[sharedtypes.SideBet](BetFailure{
					BetID:  parentID,
					Reason: "skins bets cannot be pressed",
				}), nil
			}
			if startHole < 1 || startHole > holesPerRound {
				return results.Failure[sharedtypes.SideBet](BetFailure{
					BetID:  parentID,
					Reason: fmt.Sprintf("start hole %d out of range", startHole),
				}), nil
			}

			id := parentID
			press := sharedtypes.SideBet{
				ParentBetID: &id,
				GameType:    parent.GameType,
				UseHighLow:  parent.UseHighLow,
				Party1:      parent.Party1,
				Party2:      parent.Party2,
				Amounts:     map[sharedtypes.BetSegment]float64{segment: amount},
				StartHole:   startHole,
				Segment:     segment,
			}
			created, err := s.repo.CreateBet(ctx, tournamentID, press)
			if err != nil {
				return results.OperationResult[sharedtypes.SideBet, BetFailure]{}, err
			}
			return results.Success[sharedtypes.SideBet, BetFailure](created), nil
		})
}

// UpdateBet applies a typed patch to a stored bet and returns the new state.
func (s *SideBetService) UpdateBet(ctx context.Context, tournamentID int64, betID sharedtypes.BetID, patch SideBetPatch) (results.OperationResult[sharedtypes.SideBet, BetFailure], error) {
	return withTelemetry(s, ctx, "UpdateBet", tournamentID,
		func(ctx context.Context) (results.OperationResult[sharedtypes.SideBet, BetFailure], error) {
			if err := s.repo.UpdateBet(ctx, betID, patch); err != nil {
				return results.OperationResult[sharedtypes.SideBet, BetFailure]{}, err
			}
			updated, err := s.repo.GetBet(ctx, betID)
			if err != nil {
				return results.OperationResult[sharedtypes.SideBet, BetFailure]{}, err
			}
			return results.Success[sharedtypes.SideBet, BetFailure](updated), nil
		})
}

// DeleteBet removes a bet and every press hanging off it, returning the
// number of rows deleted.
func (s *SideBetService) DeleteBet(ctx context.Context, tournamentID int64, betID sharedtypes.BetID) (results.OperationResult[int, BetFailure], error) {
	return withTelemetry(s, ctx, "DeleteBet", tournamentID,
		func(ctx context.Context) (results.OperationResult[int, BetFailure], error) {
			deleted, err := s.repo.DeleteWithDescendants(ctx, betID)
			if err != nil {
				return results.OperationResult[int, BetFailure]{}, err
			}
			if deleted == 0 {
				return results.Failure[int](BetFailure{BetID: betID, Reason: "bet not found"}), nil
			}
			return results.Success[int, BetFailure](deleted), nil
		})
}
