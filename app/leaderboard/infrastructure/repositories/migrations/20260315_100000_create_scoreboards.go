package scoreboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	scoreboarddb "github.com/facematch/leaderboard/app/leaderboard/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating scoreboards table...")

		if _, err := db.NewCreateTable().Model((*scoreboarddb.Scoreboard)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_scoreboards_mode ON scoreboards (mode)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Scoreboards table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping scoreboards table...")

		if _, err := db.NewDropTable().Model((*scoreboarddb.Scoreboard)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		return nil
	})
}
