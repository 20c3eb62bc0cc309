package multidayservice

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
)

// Repository loads multi-day events and their scored rounds.
type Repository interface {
	GetEvent(ctx context.Context, eventID int64) (Event, []EventPlayer, error)
	GetEventRounds(ctx context.Context, eventID int64) ([]EventRound, error)
}

// EventFailure is the failure payload for event operations.
type EventFailure struct {
	EventID int64  `json:"event_id"`
	Reason  string `json:"reason"`
}

// EventStandings is the computed overall view of one event, payouts included
// when the event carries a payout table.
type EventStandings struct {
	Event     Event             `json:"event"`
	Standings []Standing        `json:"standings"`
	Payouts   map[int64]float64 `json:"payouts,omitempty"`
}

// Service exposes the multi-day aggregation operations.
type Service interface {
	GetStandings(ctx context.Context, eventID int64) (results.OperationResult[EventStandings, EventFailure], error)
}

// MultiDayService implements Service.
type MultiDayService struct {
	repo    Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

// NewMultiDayService creates a new MultiDayService.
func NewMultiDayService(
	repo Repository,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *MultiDayService {
	return &MultiDayService{
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
	s *MultiDayService,
	ctx context.Context,
	operationName string,
	eventID int64,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.Int64("event_id", eventID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.Int64("event_id", eventID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.Int64("event_id", eventID),
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
			attr.Int64("event_id", eventID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.Int64("event_id", eventID),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// GetStandings computes the overall leaderboard for an event from its
// completed rounds.
func (s *MultiDayService) GetStandings(ctx context.Context, eventID int64) (results.OperationResult[EventStandings, EventFailure], error) {
	return withTelemetry(s, ctx, "GetStandings", eventID,
		func(ctx context.Context) (results.OperationResult[EventStandings, EventFailure], error) {
			event, roster, err := s.repo.GetEvent(ctx, eventID)
			if err != nil {
				return results.OperationResult[EventStandings, EventFailure]{}, err
			}
			rounds, err := s.repo.GetEventRounds(ctx, eventID)
			if err != nil {
				return results.OperationResult[EventStandings, EventFailure]{}, err
			}
			standings := ComputeStandings(event, roster, rounds)
			out := EventStandings{Event: event, Standings: standings}
			if len(event.Payouts) > 0 {
				out.Payouts = ComputePayouts(event, event.Pot, standings)
			}
			return results.Success[EventStandings, EventFailure](out), nil
		})
}
