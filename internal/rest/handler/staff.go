package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// StaffHandler handles staff directory endpoints.
type StaffHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(db database.Client, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{
		db:     db,
		logger: logger,
	}
}

// List returns all staff members with their profiles and comments.
func (h *StaffHandler) List(w http.ResponseWriter, req bunrouter.Request) error {
	staff, err := h.db.Model().Staff().GetAllStaff(req.Context())
	if err != nil {
		h.logger.Error("Failed to list staff", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, staff)
}

// UpsertProfile creates or updates the caller's own staff profile.
// Staff or admin.
func (h *StaffHandler) UpsertProfile(w http.ResponseWriter, req bunrouter.Request) error {
	user, ok := requireStaff(w, req)
	if !ok {
		return nil
	}

	var body struct {
		RoleLabel   string            `json:"roleLabel"`
		SocialLinks types.SocialLinks `json:"socialLinks"`
	}

	if err := decodeJSON(req, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	profile, err := h.db.Model().Staff().UpsertProfile(req.Context(), &types.StaffProfile{
		UserID:      user.ID,
		RoleLabel:   body.RoleLabel,
		SocialLinks: body.SocialLinks,
	})
	if err != nil {
		h.logger.Error("Failed to upsert staff profile", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, profile)
}

// CreateComment adds an authenticated user's comment to a staff profile.
func (h *StaffHandler) CreateComment(w http.ResponseWriter, req bunrouter.Request) error {
	user, ok := requireUser(w, req)
	if !ok {
		return nil
	}

	profileID, ok := paramID(req)
	if !ok {
		http.Error(w, "Invalid staff profile ID", http.StatusBadRequest)
		return nil
	}

	var body struct {
		Content string `json:"content"`
	}

	if err := decodeJSON(req, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	body.Content = strings.TrimSpace(body.Content)
	if body.Content == "" {
		http.Error(w, "Comment content is required", http.StatusBadRequest)
		return nil
	}

	if _, err := h.db.Model().Staff().GetProfile(req.Context(), profileID); err != nil {
		if errors.Is(err, types.ErrStaffProfileNotFound) {
			http.Error(w, "Staff profile not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to get staff profile", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	comment, err := h.db.Model().Staff().CreateComment(req.Context(), &types.Comment{
		StaffProfileID: profileID,
		AuthorID:       user.ID,
		Content:        body.Content,
	})
	if err != nil {
		h.logger.Error("Failed to create comment", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return respondJSON(w, http.StatusCreated, comment)
}
