package calcuttamigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	calcuttadb "github.com/fairway-club/scorekeeper/app/modules/calcutta/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating calcutta tables...")

		models := []interface{}{
			(*calcuttadb.CalcuttaConfig)(nil),
			(*calcuttadb.CalcuttaPurchase)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_calcutta_purchases_tournament_team
				ON calcutta_purchases(tournament_id, team_number);
			`); err != nil {
				return fmt.Errorf("failed to add purchase upsert index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping calcutta tables...")

		models := []interface{}{
			(*calcuttadb.CalcuttaPurchase)(nil),
			(*calcuttadb.CalcuttaConfig)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
