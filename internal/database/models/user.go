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

// UserModel handles database operations for community members.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new UserModel instance.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// GetUserByID retrieves a user by their local ID.
func (m *UserModel) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		user := new(types.User)

		err := m.db.NewSelect().
			Model(user).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrUserNotFound
			}

			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		user.Elevate()

		return user, nil
	})
}

// GetUserByDiscordID retrieves a user by their linked Discord account.
func (m *UserModel) GetUserByDiscordID(ctx context.Context, discordID string) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		user := new(types.User)

		err := m.db.NewSelect().
			Model(user).
			Where("discord_id = ?", discordID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrUserNotFound
			}

			return nil, fmt.Errorf("failed to get user by discord ID: %w", err)
		}

		user.Elevate()

		return user, nil
	})
}

// CreateUser inserts a new user and returns the stored record.
func (m *UserModel) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		if user.Roles == nil {
			user.Roles = []string{"member"}
		}

		_, err := m.db.NewInsert().
			Model(user).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		user.Elevate()

		return user, nil
	})
}

// UpdateUser applies a partial update and returns the stored record.
func (m *UserModel) UpdateUser(ctx context.Context, id int64, update *types.UserUpdate) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		user := new(types.User)

		query := m.db.NewUpdate().
			Model(user).
			Where("id = ?", id).
			Returning("*")

		applied := false

		set := func(column string, value any) {
			query.Set(column+" = ?", value)

			applied = true
		}

		if update.Username != nil {
			set("username", *update.Username)
		}

		if update.Avatar != nil {
			set("avatar", *update.Avatar)
		}

		if update.Bio != nil {
			set("bio", *update.Bio)
		}

		if update.Roles != nil {
			set("roles", *update.Roles)
		}

		if update.IsAdmin != nil {
			set("is_admin", *update.IsAdmin)
		}

		if update.IsStaff != nil {
			set("is_staff", *update.IsStaff)
		}

		if update.IsCreator != nil {
			set("is_creator", *update.IsCreator)
		}

		if update.TrackingEnabled != nil {
			set("tracking_enabled", *update.TrackingEnabled)
		}

		if update.DiscordAccessToken != nil {
			set("discord_access_token", *update.DiscordAccessToken)
		}

		if !applied {
			return m.GetUserByID(ctx, id)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}

		affected, err := res.RowsAffected()
		if err == nil && affected == 0 {
			return nil, types.ErrUserNotFound
		}

		user.Elevate()

		return user, nil
	})
}

// ListUsers retrieves all users, newest first.
func (m *UserModel) ListUsers(ctx context.Context) ([]*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.User, error) {
		var users []*types.User

		err := m.db.NewSelect().
			Model(&users).
			Order("id DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}

		for _, user := range users {
			user.Elevate()
		}

		return users, nil
	})
}

// GetUsersWithTracking retrieves all users that opted in to group tracking
// notifications. Eligibility for delivery is checked by the caller.
func (m *UserModel) GetUsersWithTracking(ctx context.Context) ([]*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.User, error) {
		var users []*types.User

		err := m.db.NewSelect().
			Model(&users).
			Where("tracking_enabled = TRUE").
			Order("id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get tracking users: %w", err)
		}

		return users, nil
	})
}
