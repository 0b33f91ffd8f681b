package handler

import (
	"errors"
	"net/http"

	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// AdminHandler handles user administration endpoints. Creator only.
type AdminHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(db database.Client, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		db:     db,
		logger: logger,
	}
}

// ListUsers returns every registered user.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireCreator(w, req); !ok {
		return nil
	}

	users, err := h.db.Model().User().ListUsers(req.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, users)
}

// UpdateRole changes a user's roles and permission flags.
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, req bunrouter.Request) error {
	caller, ok := requireCreator(w, req)
	if !ok {
		return nil
	}

	id, ok := paramID(req)
	if !ok {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return nil
	}

	var body struct {
		Roles     *[]string `json:"roles"`
		IsAdmin   *bool     `json:"isAdmin"`
		IsStaff   *bool     `json:"isStaff"`
		IsCreator *bool     `json:"isCreator"`
	}

	if err := decodeJSON(req, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	// Only the hardcoded creator account may hand out creator status
	if body.IsCreator != nil && *body.IsCreator && caller.Username != types.CreatorUsername {
		http.Error(w, "Only the creator may grant creator status", http.StatusForbidden)
		return nil
	}

	user, err := h.db.Model().User().UpdateUser(req.Context(), id, &types.UserUpdate{
		Roles:     body.Roles,
		IsAdmin:   body.IsAdmin,
		IsStaff:   body.IsStaff,
		IsCreator: body.IsCreator,
	})
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to update user role", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, user)
}
