package multidaydb

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	multidayservice "github.com/fairway-club/scorekeeper/app/modules/multiday/application"
)

// Event is a multi-day competition that groups several tournaments.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          int64                        `bun:"id,pk,autoincrement"`
	UUID        uuid.UUID                    `bun:"uuid,type:uuid,notnull,unique"`
	Name        string                       `bun:"name,notnull"`
	Slug        string                       `bun:"slug,notnull,unique"`
	NumDays     int                          `bun:"num_days,notnull,default:1"`
	NumRounds   int                          `bun:"num_rounds,notnull,default:1"`
	Status      string                       `bun:"status,notnull,default:'setup'"`
	PointSystem []multidayservice.PointRule  `bun:"point_system,type:jsonb"`
	Payouts     []multidayservice.PayoutRule `bun:"payout_structure,type:jsonb"`
	Pot         float64                      `bun:"pot"`
	CreatedAt   time.Time                    `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time                    `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// EventPlayer is one entry on an event's master roster. Per-round players
// link back here through their event_player_id.
type EventPlayer struct {
	bun.BaseModel `bun:"table:event_players,alias:ep"`

	ID      int64  `bun:"id,pk,autoincrement"`
	EventID int64  `bun:"event_id,notnull"`
	Name    string `bun:"name,notnull"`
	Team    *int   `bun:"team"`
}

func (e *Event) toShared() multidayservice.Event {
	return multidayservice.Event{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		NumDays:     e.NumDays,
		NumRounds:   e.NumRounds,
		Status:      e.Status,
		Pot:         e.Pot,
		PointSystem: e.PointSystem,
		Payouts:     e.Payouts,
	}
}

// Slugify turns an event name into a URL-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
