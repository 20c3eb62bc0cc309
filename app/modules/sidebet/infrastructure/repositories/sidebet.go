package sidebetdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sidebetservice "github.com/fairway-club/scorekeeper/app/modules/sidebet/application"
	sharedtypes "github.com/fairway-club/scorekeeper/app/shared/types"
)

// Sentinel errors for the repository layer.
var (
	// ErrNotFound indicates the requested bet does not exist in the database.
	ErrNotFound = errors.New("side bet not found")
)

// SideBetDBImpl implements sidebetservice.Repository on Postgres via bun.
type SideBetDBImpl struct {
	DB *bun.DB
}

func (db *SideBetDBImpl) GetBets(ctx context.Context, tournamentID int64) ([]sharedtypes.SideBet, error) {
	var rows []SideBet
	err := db.DB.NewSelect().
		Model(&rows).
		Where("sb.tournament_id = ?", tournamentID).
		Order("sb.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch side bets for tournament %d: %w", tournamentID, err)
	}
	bets := make([]sharedtypes.SideBet, 0, len(rows))
	for i := range rows {
		bets = append(bets, rows[i].toShared())
	}
	return bets, nil
}

func (db *SideBetDBImpl) GetBet(ctx context.Context, betID sharedtypes.BetID) (sharedtypes.SideBet, error) {
	row := new(SideBet)
	err := db.DB.NewSelect().
		Model(row).
		Where("sb.id = ?", int64(betID)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sharedtypes.SideBet{}, ErrNotFound
		}
		return sharedtypes.SideBet{}, fmt.Errorf("failed to fetch side bet %d: %w", betID, err)
	}
	return row.toShared(), nil
}

func (db *SideBetDBImpl) CreateBet(ctx context.Context, tournamentID int64, bet sharedtypes.SideBet) (sharedtypes.SideBet, error) {
	row := fromShared(tournamentID, bet)
	row.ID = 0
	if _, err := db.DB.NewInsert().Model(row).Exec(ctx); err != nil {
		return sharedtypes.SideBet{}, fmt.Errorf("failed to insert side bet: %w", err)
	}
	return row.toShared(), nil
}

func (db *SideBetDBImpl) UpdateBet(ctx context.Context, betID sharedtypes.BetID, patch sidebetservice.SideBetPatch) error {
	q := db.DB.NewUpdate().
		Model((*SideBet)(nil)).
		Where("id = ?", int64(betID))

	touched := false
	if patch.Amounts != nil {
		q = q.Set("amounts = ?", *patch.Amounts)
		touched = true
	}
	if patch.UseHighLow != nil {
		q = q.Set("use_high_low = ?", *patch.UseHighLow)
		touched = true
	}
	if !touched {
		return nil
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update side bet %d: %w", betID, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithDescendants removes a bet and its whole press chain. Chains are
// walked by repeating the delete-by-parent filter until a pass removes
// nothing, so multi-level presses go too.
func (db *SideBetDBImpl) DeleteWithDescendants(ctx context.Context, betID sharedtypes.BetID) (int, error) {
	total := 0
	err := db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		frontier := []int64{int64(betID)}
		for len(frontier) > 0 {
			var children []int64
			if err := tx.NewSelect().
				Model((*SideBet)(nil)).
				Column("id").
				Where("parent_bet_id IN (?)", bun.In(frontier)).
				Scan(ctx, &children); err != nil {
				return fmt.Errorf("failed to fetch presses: %w", err)
			}

			res, err := tx.NewDelete().
				Model((*SideBet)(nil)).
				Where("id IN (?)", bun.In(frontier)).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete side bets: %w", err)
			}
			if rows, err := res.RowsAffected(); err == nil {
				total += int(rows)
			}
			frontier = children
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
