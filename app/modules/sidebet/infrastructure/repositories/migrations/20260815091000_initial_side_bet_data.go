package sidebetmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	sidebetdb "github.com/fairway-club/scorekeeper/app/modules/sidebet/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating side bet table...")

		if _, err := db.NewCreateTable().Model((*sidebetdb.SideBet)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_side_bets_tournament_id ON side_bets(tournament_id);
			`); err != nil {
				return fmt.Errorf("failed to add tournament index: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_side_bets_parent_bet_id ON side_bets(parent_bet_id);
			`); err != nil {
				return fmt.Errorf("failed to add press chain index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping side bet table...")

		if _, err := db.NewDropTable().Model((*sidebetdb.SideBet)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
