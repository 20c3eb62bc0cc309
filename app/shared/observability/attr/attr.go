// Package attr provides slog attribute helpers shared by every module.
package attr

import (
	"context"
	"log/slog"
	"time"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID for the current request chain.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ExtractCorrelationID pulls the correlation ID back out for logging. Missing
// IDs log as an empty string rather than being omitted, so log lines keep a
// stable shape.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return slog.String("correlation_id", id)
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func TournamentID(key string, id int64) slog.Attr { return slog.Int64(key, id) }

func PlayerID(key string, id sharedtypes.PlayerID) slog.Attr {
	return slog.Int64(key, int64(id))
}

func BetID(key string, id sharedtypes.BetID) slog.Attr {
	return slog.Int64(key, int64(id))
}
