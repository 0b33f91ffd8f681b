package migrations

import (
	"context"
	"fmt"

	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []struct {
			model any
			name  string
		}{
			{(*types.User)(nil), "users"},
			{(*types.Sticker)(nil), "stickers"},
			{(*types.StaffProfile)(nil), "staff_profiles"},
			{(*types.Comment)(nil), "comments"},
			{(*types.PromoCode)(nil), "promo_codes"},
			{(*types.YouTubeChannel)(nil), "you_tube_channels"},
			{(*types.YouTubeVideo)(nil), "you_tube_videos"},
		}

		for _, table := range tables {
			_, err := db.NewCreateTable().
				Model(table.model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		_, err := db.NewRaw(`
			-- Comment lookups are always scoped to a staff profile
			CREATE INDEX IF NOT EXISTS idx_comments_staff_profile
			ON comments (staff_profile_id, id ASC);

			-- Sticker list is served ordered by price
			CREATE INDEX IF NOT EXISTS idx_stickers_price
			ON stickers (price DESC);

			-- Fan-outs select the opted-in subset only
			CREATE INDEX IF NOT EXISTS idx_users_tracking
			ON users (tracking_enabled)
			WHERE tracking_enabled = TRUE;

			-- Video feed is served newest first
			CREATE INDEX IF NOT EXISTS idx_videos_published
			ON you_tube_videos (published_at DESC);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{
			"comments", "staff_profiles", "you_tube_videos",
			"you_tube_channels", "promo_codes", "stickers", "users",
		}

		for _, table := range tables {
			if _, err := db.NewRaw(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
