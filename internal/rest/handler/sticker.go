package handler

import (
	"errors"
	"net/http"

	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// StickerHandler handles sticker catalog endpoints.
type StickerHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewStickerHandler creates a new sticker handler.
func NewStickerHandler(db database.Client, logger *zap.Logger) *StickerHandler {
	return &StickerHandler{
		db:     db,
		logger: logger,
	}
}

// List returns the sticker catalog, optionally filtered by search term,
// category and trend.
func (h *StickerHandler) List(w http.ResponseWriter, req bunrouter.Request) error {
	query := req.URL.Query()

	stickers, err := h.db.Model().Sticker().GetStickers(req.Context(), &types.StickerFilters{
		Search:   query.Get("search"),
		Category: query.Get("category"),
		Trend:    query.Get("trend"),
	})
	if err != nil {
		h.logger.Error("Failed to list stickers", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, stickers)
}

// Get returns a single sticker by ID.
func (h *StickerHandler) Get(w http.ResponseWriter, req bunrouter.Request) error {
	id, ok := paramID(req)
	if !ok {
		http.Error(w, "Invalid sticker ID", http.StatusBadRequest)
		return nil
	}

	sticker, err := h.db.Model().Sticker().GetSticker(req.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrStickerNotFound) {
			http.Error(w, "Sticker not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to get sticker", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, sticker)
}

// Create adds a sticker to the catalog. Admin only.
func (h *StickerHandler) Create(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireAdmin(w, req); !ok {
		return nil
	}

	var sticker types.Sticker
	if err := decodeJSON(req, &sticker); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if sticker.Name == "" || sticker.Image == "" {
		http.Error(w, "Name and image are required", http.StatusBadRequest)
		return nil
	}

	sticker.ApplyDefaults()

	created, err := h.db.Model().Sticker().CreateSticker(req.Context(), &sticker)
	if err != nil {
		h.logger.Error("Failed to create sticker", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return respondJSON(w, http.StatusCreated, created)
}

// Update applies a partial update to a sticker. Staff or admin.
func (h *StickerHandler) Update(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireStaff(w, req); !ok {
		return nil
	}

	id, ok := paramID(req)
	if !ok {
		http.Error(w, "Invalid sticker ID", http.StatusBadRequest)
		return nil
	}

	var update types.StickerUpdate
	if err := decodeJSON(req, &update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	sticker, err := h.db.Model().Sticker().UpdateSticker(req.Context(), id, &update)
	if err != nil {
		if errors.Is(err, types.ErrStickerNotFound) {
			http.Error(w, "Sticker not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to update sticker", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, sticker)
}

// Delete removes a sticker from the catalog. Admin only.
func (h *StickerHandler) Delete(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireAdmin(w, req); !ok {
		return nil
	}

	id, ok := paramID(req)
	if !ok {
		http.Error(w, "Invalid sticker ID", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Model().Sticker().DeleteSticker(req.Context(), id); err != nil {
		if errors.Is(err, types.ErrStickerNotFound) {
			http.Error(w, "Sticker not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to delete sticker", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
