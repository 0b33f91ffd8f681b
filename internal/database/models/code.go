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

// CodeModel handles database operations for promotional codes.
type CodeModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCode creates a new CodeModel instance.
func NewCode(db *bun.DB, logger *zap.Logger) *CodeModel {
	return &CodeModel{
		db:     db,
		logger: logger.Named("db_code"),
	}
}

// GetCodes retrieves all promotional codes, newest first.
func (m *CodeModel) GetCodes(ctx context.Context) ([]*types.PromoCode, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.PromoCode, error) {
		var codes []*types.PromoCode

		err := m.db.NewSelect().
			Model(&codes).
			Order("id DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get codes: %w", err)
		}

		return codes, nil
	})
}

// CreateCode inserts a new promotional code and returns the stored record.
func (m *CodeModel) CreateCode(ctx context.Context, code *types.PromoCode) (*types.PromoCode, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.PromoCode, error) {
		if code.Status == "" {
			code.Status = types.CodeStatusActive
		}

		code.CreatedAt = time.Now()

		_, err := m.db.NewInsert().
			Model(code).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create code: %w", err)
		}

		return code, nil
	})
}

// UpdateCode applies a partial update and returns the stored record.
func (m *CodeModel) UpdateCode(ctx context.Context, id int64, update *types.PromoCodeUpdate) (*types.PromoCode, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.PromoCode, error) {
		code := new(types.PromoCode)

		query := m.db.NewUpdate().
			Model(code).
			Where("id = ?", id).
			Returning("*")

		applied := false

		set := func(column string, value any) {
			query.Set(column+" = ?", value)

			applied = true
		}

		if update.Code != nil {
			set("code", *update.Code)
		}

		if update.Reward != nil {
			set("reward", *update.Reward)
		}

		if update.Description != nil {
			set("description", *update.Description)
		}

		if update.Status != nil {
			set("status", *update.Status)
		}

		if !applied {
			err := m.db.NewSelect().Model(code).Where("id = ?", id).Scan(ctx)
			if err != nil {
				return nil, types.ErrCodeNotFound
			}

			return code, nil
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update code: %w", err)
		}

		affected, err := res.RowsAffected()
		if err == nil && affected == 0 {
			return nil, types.ErrCodeNotFound
		}

		return code, nil
	})
}

// DeleteCode removes a promotional code by ID.
func (m *CodeModel) DeleteCode(ctx context.Context, id int64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := m.db.NewDelete().
			Model((*types.PromoCode)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete code: %w", err)
		}

		affected, err := res.RowsAffected()
		if err == nil && affected == 0 {
			return types.ErrCodeNotFound
		}

		return nil
	})
}
