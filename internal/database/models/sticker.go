package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swarmlabs/hivehub/internal/database/dbretry"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// StickerModel handles database operations for sticker valuations.
type StickerModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewSticker creates a new StickerModel instance.
func NewSticker(db *bun.DB, logger *zap.Logger) *StickerModel {
	return &StickerModel{
		db:     db,
		logger: logger.Named("db_sticker"),
	}
}

// GetStickers retrieves stickers matching the given filters, ordered by price.
func (m *StickerModel) GetStickers(ctx context.Context, filters *types.StickerFilters) ([]*types.Sticker, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Sticker, error) {
		var stickers []*types.Sticker

		query := m.db.NewSelect().
			Model(&stickers).
			Order("price DESC")

		if filters != nil {
			if filters.Search != "" {
				query.Where("name ILIKE ?", "%"+filters.Search+"%")
			}

			if filters.Category != "" {
				query.Where("category = ?", filters.Category)
			}

			if filters.Trend != "" {
				query.Where("trend = ?", filters.Trend)
			}
		}

		if err := query.Scan(ctx); err != nil {
			return nil, fmt.Errorf("failed to get stickers: %w", err)
		}

		return stickers, nil
	})
}

// GetSticker retrieves a single sticker by ID.
func (m *StickerModel) GetSticker(ctx context.Context, id int64) (*types.Sticker, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Sticker, error) {
		sticker := new(types.Sticker)

		err := m.db.NewSelect().
			Model(sticker).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrStickerNotFound
			}

			return nil, fmt.Errorf("failed to get sticker: %w", err)
		}

		return sticker, nil
	})
}

// CreateSticker inserts a new sticker and returns the stored record.
func (m *StickerModel) CreateSticker(ctx context.Context, sticker *types.Sticker) (*types.Sticker, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Sticker, error) {
		_, err := m.db.NewInsert().
			Model(sticker).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create sticker: %w", err)
		}

		return sticker, nil
	})
}

// UpdateSticker applies a partial update and returns the stored record.
func (m *StickerModel) UpdateSticker(ctx context.Context, id int64, update *types.StickerUpdate) (*types.Sticker, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Sticker, error) {
		sticker := new(types.Sticker)

		query := m.db.NewUpdate().
			Model(sticker).
			Where("id = ?", id).
			Returning("*")

		applied := false

		set := func(column string, value any) {
			query.Set(column+" = ?", value)

			applied = true
		}

		if update.Name != nil {
			set("name", *update.Name)
		}

		if update.Image != nil {
			set("image", *update.Image)
		}

		if update.Price != nil {
			set("price", *update.Price)
		}

		if update.Trend != nil {
			set("trend", *update.Trend)
		}

		if update.Demand != nil {
			set("demand", *update.Demand)
		}

		if update.Status != nil {
			set("status", *update.Status)
		}

		if update.Category != nil {
			set("category", *update.Category)
		}

		if !applied {
			return m.GetSticker(ctx, id)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update sticker: %w", err)
		}

		affected, err := res.RowsAffected()
		if err == nil && affected == 0 {
			return nil, types.ErrStickerNotFound
		}

		return sticker, nil
	})
}

// DeleteSticker removes a sticker by ID.
func (m *StickerModel) DeleteSticker(ctx context.Context, id int64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := m.db.NewDelete().
			Model((*types.Sticker)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete sticker: %w", err)
		}

		affected, err := res.RowsAffected()
		if err == nil && affected == 0 {
			return types.ErrStickerNotFound
		}

		return nil
	})
}

// CountStickers returns the total number of sticker entries.
func (m *StickerModel) CountStickers(ctx context.Context) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := m.db.NewSelect().
			Model((*types.Sticker)(nil)).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count stickers: %w", err)
		}

		return count, nil
	})
}
