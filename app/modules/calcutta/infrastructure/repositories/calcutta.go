package calcuttadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	calcuttaservice "github.com/fairway-club/scorekeeper/app/modules/calcutta/application"
)

// CalcuttaDBImpl implements the calcutta Repository on Postgres via bun.
type CalcuttaDBImpl struct {
	DB *bun.DB
}

// GetConfig loads a tournament's auction setup. ok is false when the
// tournament has never saved one.
func (db *CalcuttaDBImpl) GetConfig(ctx context.Context, tournamentID int64) (calcuttaservice.Config, bool, error) {
	row := new(CalcuttaConfig)
	err := db.DB.NewSelect().
		Model(row).
		Where("cc.tournament_id = ?", tournamentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calcuttaservice.Config{}, false, nil
		}
		return calcuttaservice.Config{}, false, fmt.Errorf("failed to fetch calcutta config for tournament %d: %w", tournamentID, err)
	}
	return calcuttaservice.Config{
		TournamentID: row.TournamentID,
		Enabled:      row.Enabled,
		Payouts:      row.Payouts,
	}, true, nil
}

// SaveConfig writes the auction setup, overwriting any previous one.
func (db *CalcuttaDBImpl) SaveConfig(ctx context.Context, cfg calcuttaservice.Config) error {
	row := &CalcuttaConfig{
		TournamentID: cfg.TournamentID,
		Enabled:      cfg.Enabled,
		Payouts:      cfg.Payouts,
	}
	_, err := db.DB.NewInsert().
		Model(row).
		On("CONFLICT (tournament_id) DO UPDATE").
		Set("enabled = EXCLUDED.enabled").
		Set("payout_structure = EXCLUDED.payout_structure").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save calcutta config for tournament %d: %w", cfg.TournamentID, err)
	}
	return nil
}

// GetPurchases lists the winning bids in team order.
func (db *CalcuttaDBImpl) GetPurchases(ctx context.Context, tournamentID int64) ([]calcuttaservice.Purchase, error) {
	var rows []CalcuttaPurchase
	if err := db.DB.NewSelect().
		Model(&rows).
		Where("cp.tournament_id = ?", tournamentID).
		Order("cp.team_number ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch calcutta purchases for tournament %d: %w", tournamentID, err)
	}
	purchases := make([]calcuttaservice.Purchase, 0, len(rows))
	for _, r := range rows {
		purchases = append(purchases, calcuttaservice.Purchase{
			TeamNumber: r.TeamNumber,
			BuyerName:  r.BuyerName,
			Amount:     r.Amount,
		})
	}
	return purchases, nil
}

// UpsertPurchase records a bid, overwriting the previous bid on the team.
func (db *CalcuttaDBImpl) UpsertPurchase(ctx context.Context, tournamentID int64, purchase calcuttaservice.Purchase) error {
	row := &CalcuttaPurchase{
		TournamentID: tournamentID,
		TeamNumber:   purchase.TeamNumber,
		BuyerName:    purchase.BuyerName,
		Amount:       purchase.Amount,
	}
	_, err := db.DB.NewInsert().
		Model(row).
		On("CONFLICT (tournament_id, team_number) DO UPDATE").
		Set("buyer_name = EXCLUDED.buyer_name").
		Set("amount = EXCLUDED.amount").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert calcutta purchase for tournament %d team %d: %w", tournamentID, purchase.TeamNumber, err)
	}
	return nil
}

// DeletePurchase removes a team's bid, returning how many rows went away.
func (db *CalcuttaDBImpl) DeletePurchase(ctx context.Context, tournamentID int64, teamNumber int) (int64, error) {
	res, err := db.DB.NewDelete().
		Model((*CalcuttaPurchase)(nil)).
		Where("tournament_id = ?", tournamentID).
		Where("team_number = ?", teamNumber).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete calcutta purchase for tournament %d team %d: %w", tournamentID, teamNumber, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}
	return rows, nil
}
