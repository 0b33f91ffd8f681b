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

// StaffModel handles database operations for staff profiles and comments.
type StaffModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewStaff creates a new StaffModel instance.
func NewStaff(db *bun.DB, logger *zap.Logger) *StaffModel {
	return &StaffModel{
		db:     db,
		logger: logger.Named("db_staff"),
	}
}

// GetAllStaff retrieves every staff user with their profile and comments.
// Users without a profile are included with a nil profile and no comments.
func (m *StaffModel) GetAllStaff(ctx context.Context) ([]*types.StaffMember, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.StaffMember, error) {
		var staffUsers []*types.User

		err := m.db.NewSelect().
			Model(&staffUsers).
			Where("is_staff = TRUE").
			Order("id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get staff users: %w", err)
		}

		members := make([]*types.StaffMember, 0, len(staffUsers))

		for _, user := range staffUsers {
			user.Elevate()

			member := &types.StaffMember{User: *user, Comments: []*types.CommentWithAuthor{}}

			profile := new(types.StaffProfile)

			err := m.db.NewSelect().
				Model(profile).
				Where("user_id = ?", user.ID).
				Scan(ctx)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					return nil, fmt.Errorf("failed to get staff profile: %w", err)
				}
			} else {
				member.Profile = profile

				comments, err := m.getComments(ctx, profile.ID)
				if err != nil {
					return nil, err
				}

				member.Comments = comments
			}

			members = append(members, member)
		}

		return members, nil
	})
}

// UpsertProfile creates or updates the staff profile for a user.
func (m *StaffModel) UpsertProfile(ctx context.Context, profile *types.StaffProfile) (*types.StaffProfile, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.StaffProfile, error) {
		_, err := m.db.NewInsert().
			Model(profile).
			On("CONFLICT (user_id) DO UPDATE").
			Set("role_label = EXCLUDED.role_label").
			Set("social_links = EXCLUDED.social_links").
			Returning("*").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert staff profile: %w", err)
		}

		return profile, nil
	})
}

// GetProfile retrieves a staff profile by its ID.
func (m *StaffModel) GetProfile(ctx context.Context, id int64) (*types.StaffProfile, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.StaffProfile, error) {
		profile := new(types.StaffProfile)

		err := m.db.NewSelect().
			Model(profile).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrStaffProfileNotFound
			}

			return nil, fmt.Errorf("failed to get staff profile: %w", err)
		}

		return profile, nil
	})
}

// CreateComment inserts a comment on a staff profile and returns it with
// the author record attached.
func (m *StaffModel) CreateComment(ctx context.Context, comment *types.Comment) (*types.CommentWithAuthor, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.CommentWithAuthor, error) {
		_, err := m.db.NewInsert().
			Model(comment).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create comment: %w", err)
		}

		author := new(types.User)

		err = m.db.NewSelect().
			Model(author).
			Where("id = ?", comment.AuthorID).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get comment author: %w", err)
		}

		author.Elevate()

		return &types.CommentWithAuthor{Comment: *comment, Author: author}, nil
	})
}

// getComments retrieves all comments on a profile in posting order, with
// author records attached.
func (m *StaffModel) getComments(ctx context.Context, profileID int64) ([]*types.CommentWithAuthor, error) {
	var comments []*types.Comment

	err := m.db.NewSelect().
		Model(&comments).
		Where("staff_profile_id = ?", profileID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	result := make([]*types.CommentWithAuthor, 0, len(comments))

	for _, comment := range comments {
		author := new(types.User)

		err := m.db.NewSelect().
			Model(author).
			Where("id = ?", comment.AuthorID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Author account deleted, keep the comment without one
				author = nil
			} else {
				return nil, fmt.Errorf("failed to get comment author: %w", err)
			}
		} else {
			author.Elevate()
		}

		result = append(result, &types.CommentWithAuthor{Comment: *comment, Author: author})
	}

	return result, nil
}
