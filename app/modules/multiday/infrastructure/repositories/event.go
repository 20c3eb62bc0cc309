package multidaydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/fairway-club/scorekeeper/app/modules/leaderboard/infrastructure/repositories"
	multidayservice "github.com/fairway-club/scorekeeper/app/modules/multiday/application"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// ErrNotFound indicates the requested event does not exist.
var ErrNotFound = errors.New("event not found")

// EventDBImpl implements the multi-day Repository on Postgres via bun. It
// reads rounds through the tournament tables, which the leaderboard module
// owns.
type EventDBImpl struct {
	DB *bun.DB
}

// CreateEvent stores an event with its roster in one transaction. The slug
// is derived from the name when not set.
func (db *EventDBImpl) CreateEvent(ctx context.Context, event *Event, roster []EventPlayer) error {
	if event.Slug == "" {
		event.Slug = Slugify(event.Name)
	}
	return db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(event).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
		if len(roster) > 0 {
			for i := range roster {
				roster[i].EventID = event.ID
			}
			if _, err := tx.NewInsert().Model(&roster).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert event roster: %w", err)
			}
		}
		return nil
	})
}

// GetEvent loads an event and its roster.
func (db *EventDBImpl) GetEvent(ctx context.Context, eventID int64) (multidayservice.Event, []multidayservice.EventPlayer, error) {
	event := new(Event)
	err := db.DB.NewSelect().
		Model(event).
		Where("e.id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return multidayservice.Event{}, nil, ErrNotFound
		}
		return multidayservice.Event{}, nil, fmt.Errorf("failed to fetch event %d: %w", eventID, err)
	}
	roster, err := db.roster(ctx, eventID)
	if err != nil {
		return multidayservice.Event{}, nil, err
	}
	return event.toShared(), roster, nil
}

// GetEventBySlug resolves the public event link to its id.
func (db *EventDBImpl) GetEventBySlug(ctx context.Context, slug string) (int64, error) {
	event := new(Event)
	err := db.DB.NewSelect().
		Model(event).
		Column("e.id").
		Where("e.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to resolve event slug %q: %w", slug, err)
	}
	return event.ID, nil
}

func (db *EventDBImpl) roster(ctx context.Context, eventID int64) ([]multidayservice.EventPlayer, error) {
	var rows []EventPlayer
	if err := db.DB.NewSelect().
		Model(&rows).
		Where("ep.event_id = ?", eventID).
		Order("ep.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch roster for event %d: %w", eventID, err)
	}
	roster := make([]multidayservice.EventPlayer, 0, len(rows))
	for _, r := range rows {
		roster = append(roster, multidayservice.EventPlayer{ID: r.ID, Name: r.Name, Team: r.Team})
	}
	return roster, nil
}

// GetEventRounds loads every tournament attached to the event, each with its
// full scoring snapshot and the round-to-roster player links. Day numbers
// come from the distinct played-on dates in order; round numbers from the
// overall order.
func (db *EventDBImpl) GetEventRounds(ctx context.Context, eventID int64) ([]multidayservice.EventRound, error) {
	var tournaments []leaderboarddb.Tournament
	if err := db.DB.NewSelect().
		Model(&tournaments).
		Where("t.event_id = ?", eventID).
		Order("t.played_on ASC", "t.id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch rounds for event %d: %w", eventID, err)
	}

	dayByDate := make(map[string]int)
	var days []string
	for _, t := range tournaments {
		date := t.PlayedOn.Format("2006-01-02")
		if _, seen := dayByDate[date]; !seen {
			days = append(days, date)
		}
		dayByDate[date] = 0
	}
	sort.Strings(days)
	for i, d := range days {
		dayByDate[d] = i + 1
	}

	snapshots := &leaderboarddb.TournamentDBImpl{DB: db.DB}
	rounds := make([]multidayservice.EventRound, 0, len(tournaments))
	for i, t := range tournaments {
		snap, err := snapshots.GetSnapshot(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch snapshot for round %d: %w", t.ID, err)
		}
		links, err := db.playerLinks(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, multidayservice.EventRound{
			TournamentID: t.ID,
			Name:         t.Name,
			DayNumber:    dayByDate[t.PlayedOn.Format("2006-01-02")],
			RoundNumber:  i + 1,
			Status:       t.Status,
			IsTeamGame:   t.GameType.IsTeamGame(),
			Snapshot:     snap,
			PlayerLinks:  links,
		})
	}
	return rounds, nil
}

func (db *EventDBImpl) playerLinks(ctx context.Context, tournamentID int64) (map[sharedtypes.PlayerID]int64, error) {
	var players []leaderboarddb.Player
	if err := db.DB.NewSelect().
		Model(&players).
		Where("p.tournament_id = ?", tournamentID).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch player links for tournament %d: %w", tournamentID, err)
	}
	links := make(map[sharedtypes.PlayerID]int64, len(players))
	for _, p := range players {
		if p.EventPlayerID != nil {
			links[sharedtypes.PlayerID(p.ID)] = *p.EventPlayerID
		}
	}
	return links, nil
}
