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

// CodeHandler handles promotional code endpoints.
type CodeHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewCodeHandler creates a new promo code handler.
func NewCodeHandler(db database.Client, logger *zap.Logger) *CodeHandler {
	return &CodeHandler{
		db:     db,
		logger: logger,
	}
}

// List returns all promotional codes, newest first.
func (h *CodeHandler) List(w http.ResponseWriter, req bunrouter.Request) error {
	codes, err := h.db.Model().Code().GetCodes(req.Context())
	if err != nil {
		h.logger.Error("Failed to list codes", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, codes)
}

// Create adds a promotional code. Admin only.
func (h *CodeHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireAdmin(w, req); !ok {
		return nil
	}

	var code types.PromoCode
	if err := decodeJSON(req, &code); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	code.Code = strings.TrimSpace(code.Code)
	if code.Code == "" {
		http.Error(w, "Code is required", http.StatusBadRequest)
		return nil
	}

	created, err := h.db.Model().Code().CreateCode(req.Context(), &code)
	if err != nil {
		h.logger.Error("Failed to create code", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return respondJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a promotional code. Admin only.
func (h *CodeHandler) Update(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireAdmin(w, req); !ok {
		return nil
	}

	id, ok := paramID(req)
	if !ok {
		http.Error(w, "Invalid code ID", http.StatusBadRequest)
		return nil
	}

	var update types.PromoCodeUpdate
	if err := decodeJSON(req, &update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	code, err := h.db.Model().Code().UpdateCode(req.Context(), id, &update)
	if err != nil {
		if errors.Is(err, types.ErrCodeNotFound) {
			http.Error(w, "Code not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to update code", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, code)
}

// Delete removes a promotional code. Admin only.
func (h *CodeHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireAdmin(w, req); !ok {
		return nil
	}

	id, ok := paramID(req)
	if !ok {
		http.Error(w, "Invalid code ID", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Model().Code().DeleteCode(req.Context(), id); err != nil {
		if errors.Is(err, types.ErrCodeNotFound) {
			http.Error(w, "Code not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to delete code", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
