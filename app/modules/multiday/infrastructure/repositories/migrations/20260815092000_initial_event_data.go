package multidaymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	multidaydb "github.com/fairway-club/scorekeeper/app/modules/multiday/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating event tables...")

		models := []interface{}{
			(*multidaydb.Event)(nil),
			(*multidaydb.EventPlayer)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_event_players_event_id ON event_players(event_id);
			`); err != nil {
				return fmt.Errorf("failed to add roster index: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_tournaments_event_id ON tournaments(event_id);
			`); err != nil {
				return fmt.Errorf("failed to add event round index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping event tables...")

		models := []interface{}{
			(*multidaydb.EventPlayer)(nil),
			(*multidaydb.Event)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
