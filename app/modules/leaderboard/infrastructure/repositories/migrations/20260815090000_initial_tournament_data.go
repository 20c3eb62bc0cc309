package leaderboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/fairway-club/scorekeeper/app/modules/leaderboard/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tournament tables...")

		models := []interface{}{
			(*leaderboarddb.Tournament)(nil),
			(*leaderboarddb.Player)(nil),
			(*leaderboarddb.Hole)(nil),
			(*leaderboarddb.Score)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_scores_tournament_player_hole
				ON scores(tournament_id, player_id, hole_number);
			`); err != nil {
				return fmt.Errorf("failed to add score upsert index: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_players_tournament_id ON players(tournament_id);
			`); err != nil {
				return fmt.Errorf("failed to add player index: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_holes_tournament_id ON holes(tournament_id);
			`); err != nil {
				return fmt.Errorf("failed to add hole index: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tournament tables...")

		models := []interface{}{
			(*leaderboarddb.Score)(nil),
			(*leaderboarddb.Hole)(nil),
			(*leaderboarddb.Player)(nil),
			(*leaderboarddb.Tournament)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
