package models

import (
	"context"
	"fmt"
	"time"

	"github.com/swarmlabs/hivehub/internal/database/dbretry"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// YouTubeModel handles database operations for the YouTube content cache.
type YouTubeModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewYouTube creates a new YouTubeModel instance.
func NewYouTube(db *bun.DB, logger *zap.Logger) *YouTubeModel {
	return &YouTubeModel{
		db:     db,
		logger: logger.Named("db_youtube"),
	}
}

// GetChannels retrieves all tracked channels.
func (m *YouTubeModel) GetChannels(ctx context.Context) ([]*types.YouTubeChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.YouTubeChannel, error) {
		var channels []*types.YouTubeChannel

		err := m.db.NewSelect().
			Model(&channels).
			Order("id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get channels: %w", err)
		}

		return channels, nil
	})
}

// CreateChannel inserts a new tracked channel and returns the stored record.
func (m *YouTubeModel) CreateChannel(ctx context.Context, channel *types.YouTubeChannel) (*types.YouTubeChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.YouTubeChannel, error) {
		_, err := m.db.NewInsert().
			Model(channel).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create channel: %w", err)
		}

		return channel, nil
	})
}

// DeleteChannel removes a channel and its cached videos. Both deletes run in
// one transaction so a retried attempt never sees a half-deleted channel.
func (m *YouTubeModel) DeleteChannel(ctx context.Context, channelID string) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		return m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			res, err := tx.NewDelete().
				Model((*types.YouTubeChannel)(nil)).
				Where("channel_id = ?", channelID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete channel: %w", err)
			}

			affected, err := res.RowsAffected()
			if err == nil && affected == 0 {
				return types.ErrChannelNotFound
			}

			_, err = tx.NewDelete().
				Model((*types.YouTubeVideo)(nil)).
				Where("channel_id = ?", channelID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete channel videos: %w", err)
			}

			return nil
		})
	})
}

// GetVideos retrieves all cached videos, newest first.
func (m *YouTubeModel) GetVideos(ctx context.Context) ([]*types.YouTubeVideo, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.YouTubeVideo, error) {
		var videos []*types.YouTubeVideo

		err := m.db.NewSelect().
			Model(&videos).
			Order("published_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get videos: %w", err)
		}

		return videos, nil
	})
}

// UpsertVideos inserts or refreshes cached videos keyed by video ID.
func (m *YouTubeModel) UpsertVideos(ctx context.Context, videos []*types.YouTubeVideo) error {
	if len(videos) == 0 {
		return nil
	}

	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		now := time.Now()
		for _, video := range videos {
			video.LastFetched = now
		}

		_, err := m.db.NewInsert().
			Model(&videos).
			On("CONFLICT (video_id) DO UPDATE").
			Set("title = EXCLUDED.title").
			Set("thumbnail = EXCLUDED.thumbnail").
			Set("published_at = EXCLUDED.published_at").
			Set("view_count = EXCLUDED.view_count").
			Set("last_fetched = EXCLUDED.last_fetched").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert videos: %w", err)
		}

		return nil
	})
}
