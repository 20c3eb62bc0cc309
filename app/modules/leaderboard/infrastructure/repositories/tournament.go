package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// TournamentDBImpl implements TournamentDB on Postgres via bun.
type TournamentDBImpl struct {
	DB *bun.DB
}

// CreateTournament stores a tournament with its roster and course in one
// transaction.
func (db *TournamentDBImpl) CreateTournament(ctx context.Context, tournament *Tournament, players []Player, holes []Hole) error {
	return db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(tournament).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert tournament: %w", err)
		}
		if len(players) > 0 {
			for i := range players {
				players[i].TournamentID = tournament.ID
			}
			if _, err := tx.NewInsert().Model(&players).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert players: %w", err)
			}
		}
		if len(holes) > 0 {
			for i := range holes {
				holes[i].TournamentID = tournament.ID
			}
			if _, err := tx.NewInsert().Model(&holes).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert holes: %w", err)
			}
		}
		return nil
	})
}

func (db *TournamentDBImpl) GetTournament(ctx context.Context, tournamentID int64) (*Tournament, error) {
	tournament := new(Tournament)
	err := db.DB.NewSelect().
		Model(tournament).
		Where("t.id = ?", tournamentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch tournament %d: %w", tournamentID, err)
	}
	return tournament, nil
}

// UpdateTournament applies the non-nil fields of the patch.
func (db *TournamentDBImpl) UpdateTournament(ctx context.Context, tournamentID int64, patch TournamentPatch) error {
	q := db.DB.NewUpdate().
		Model((*Tournament)(nil)).
		Where("id = ?", tournamentID).
		Set("updated_at = current_timestamp")

	if patch.Name != nil {
		q = q.Set("name = ?", *patch.Name)
	}
	if patch.CourseName != nil {
		q = q.Set("course_name = ?", *patch.CourseName)
	}
	if patch.Status != nil {
		q = q.Set("status = ?", *patch.Status)
	}
	if patch.GameType != nil {
		q = q.Set("game_type = ?", *patch.GameType)
	}
	if patch.SlopeRating != nil {
		q = q.Set("slope_rating = ?", *patch.SlopeRating)
	}
	if patch.HandicapMode != nil {
		q = q.Set("handicap_mode = ?", *patch.HandicapMode)
	}
	if patch.BetAmount != nil {
		q = q.Set("bet_amount = ?", *patch.BetAmount)
	}
	if patch.GreenieAmount != nil {
		q = q.Set("greenie_amount = ?", *patch.GreenieAmount)
	}
	if patch.SkinsAmount != nil {
		q = q.Set("skins_amount = ?", *patch.SkinsAmount)
	}
	if patch.GreenieHoles != nil {
		q = q.Set("greenie_holes = ?", *patch.GreenieHoles)
	}
	if patch.NassauFormat != nil {
		q = q.Set("nassau_format = ?", *patch.NassauFormat)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update tournament %d: %w", tournamentID, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// GetSnapshot assembles the full scoring input for one tournament: config,
// roster, course, and the sparse score list, in one consistent read.
func (db *TournamentDBImpl) GetSnapshot(ctx context.Context, tournamentID int64) (sharedtypes.RoundSnapshot, error) {
	var snap sharedtypes.RoundSnapshot

	tournament, err := db.GetTournament(ctx, tournamentID)
	if err != nil {
		return snap, err
	}

	var players []Player
	if err := db.DB.NewSelect().
		Model(&players).
		Where("p.tournament_id = ?", tournamentID).
		Order("p.id ASC").
		Scan(ctx); err != nil {
		return snap, fmt.Errorf("failed to fetch players for tournament %d: %w", tournamentID, err)
	}

	var holes []Hole
	if err := db.DB.NewSelect().
		Model(&holes).
		Where("h.tournament_id = ?", tournamentID).
		Order("h.hole_number ASC").
		Scan(ctx); err != nil {
		return snap, fmt.Errorf("failed to fetch holes for tournament %d: %w", tournamentID, err)
	}

	var scores []Score
	if err := db.DB.NewSelect().
		Model(&scores).
		Where("s.tournament_id = ?", tournamentID).
		Order("s.player_id ASC", "s.hole_number ASC").
		Scan(ctx); err != nil {
		return snap, fmt.Errorf("failed to fetch scores for tournament %d: %w", tournamentID, err)
	}

	snap.Config = sharedtypes.RoundConfig{
		GameType:      tournament.GameType,
		SlopeRating:   tournament.SlopeRating,
		HandicapMode:  tournament.HandicapMode,
		BetAmount:     tournament.BetAmount,
		GreenieAmount: tournament.GreenieAmount,
		SkinsAmount:   tournament.SkinsAmount,
		NassauFormat:  tournament.NassauFormat,
	}
	for _, n := range tournament.GreenieHoles {
		snap.Config.GreenieHoles = append(snap.Config.GreenieHoles, sharedtypes.HoleNumber(n))
	}
	sort.Slice(snap.Config.GreenieHoles, func(i, j int) bool {
		return snap.Config.GreenieHoles[i] < snap.Config.GreenieHoles[j]
	})

	for _, p := range players {
		snap.Players = append(snap.Players, sharedtypes.Player{
			ID:            sharedtypes.PlayerID(p.ID),
			Name:          p.Name,
			HandicapIndex: p.HandicapIndex,
			Team:          p.Team,
			TeeColor:      p.TeeColor,
		})
	}
	for _, h := range holes {
		snap.Holes = append(snap.Holes, sharedtypes.Hole{
			Number:         sharedtypes.HoleNumber(h.Number),
			Par:            h.Par,
			HandicapRating: h.HandicapRating,
			Yardages:       h.Yardages,
		})
	}
	for _, s := range scores {
		snap.Scores = append(snap.Scores, sharedtypes.Score{
			PlayerID:        sharedtypes.PlayerID(s.PlayerID),
			Hole:            sharedtypes.HoleNumber(s.HoleNumber),
			Strokes:         s.Strokes,
			Greenie:         s.Greenie,
			GreenieDistance: s.GreenieDistance,
		})
	}
	return snap, nil
}

// UpsertScores writes a batch of score entries, keyed by (tournament, player,
// hole). Re-submitting a pair overwrites the previous entry, which is how
// live corrections come in.
func (db *TournamentDBImpl) UpsertScores(ctx context.Context, tournamentID int64, entries []ScoreUpsert) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]Score, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Score{
			TournamentID:    tournamentID,
			PlayerID:        e.PlayerID,
			HoleNumber:      e.HoleNumber,
			Strokes:         e.Strokes,
			Greenie:         e.Greenie,
			GreenieDistance: e.GreenieDistance,
		})
	}
	_, err := db.DB.NewInsert().
		Model(&rows).
		On("CONFLICT (tournament_id, player_id, hole_number) DO UPDATE").
		Set("strokes = EXCLUDED.strokes").
		Set("greenie = EXCLUDED.greenie").
		Set("greenie_distance = EXCLUDED.greenie_distance").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert scores for tournament %d: %w", tournamentID, err)
	}
	return nil
}
