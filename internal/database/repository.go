package database

import (
	"github.com/swarmlabs/hivehub/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	user    *models.UserModel
	sticker *models.StickerModel
	staff   *models.StaffModel
	code    *models.CodeModel
	youtube *models.YouTubeModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		user:    models.NewUser(db, logger),
		sticker: models.NewSticker(db, logger),
		staff:   models.NewStaff(db, logger),
		code:    models.NewCode(db, logger),
		youtube: models.NewYouTube(db, logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Sticker returns the sticker model repository.
func (r *Repository) Sticker() *models.StickerModel {
	return r.sticker
}

// Staff returns the staff model repository.
func (r *Repository) Staff() *models.StaffModel {
	return r.staff
}

// Code returns the promotional code model repository.
func (r *Repository) Code() *models.CodeModel {
	return r.code
}

// YouTube returns the YouTube model repository.
func (r *Repository) YouTube() *models.YouTubeModel {
	return r.youtube
}
