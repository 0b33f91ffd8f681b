package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/youtube"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// YouTubeHandler handles creator channel and video cache endpoints.
type YouTubeHandler struct {
	db      database.Client
	service *youtube.Service
	logger  *zap.Logger
}

// NewYouTubeHandler creates a new YouTube handler.
func NewYouTubeHandler(db database.Client, service *youtube.Service, logger *zap.Logger) *YouTubeHandler {
	return &YouTubeHandler{
		db:      db,
		service: service,
		logger:  logger,
	}
}

// ListChannels returns all tracked channels.
func (h *YouTubeHandler) ListChannels(w http.ResponseWriter, req bunrouter.Request) error {
	channels, err := h.db.Model().YouTube().GetChannels(req.Context())
	if err != nil {
		h.logger.Error("Failed to list channels", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, channels)
}

// CreateChannel tracks a new channel. Creator only. When the YouTube API is
// configured the channel ID or @handle is resolved to its canonical identity
// and an initial video sync runs.
func (h *YouTubeHandler) CreateChannel(w http.ResponseWriter, req bunrouter.Request) error {
	user, ok := requireCreator(w, req)
	if !ok {
		return nil
	}

	var body struct {
		ChannelID string `json:"channelId"`
		Title     string `json:"title"`
		Thumbnail string `json:"thumbnail"`
	}

	if err := decodeJSON(req, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	body.ChannelID = strings.TrimSpace(body.ChannelID)
	if body.ChannelID == "" {
		http.Error(w, "Channel ID is required", http.StatusBadRequest)
		return nil
	}

	channel := &types.YouTubeChannel{
		ChannelID: body.ChannelID,
		Title:     body.Title,
		Thumbnail: body.Thumbnail,
		AddedBy:   user.ID,
	}

	if h.service.Enabled() {
		info, err := h.service.ResolveChannel(req.Context(), body.ChannelID)
		if err != nil {
			if errors.Is(err, youtube.ErrChannelNotFound) {
				http.Error(w, "YouTube channel not found", http.StatusNotFound)
				return nil
			}

			h.logger.Error("Failed to resolve channel", zap.Error(err))
			http.Error(w, "Failed to resolve channel", http.StatusBadGateway)

			return nil
		}

		channel.ChannelID = info.ChannelID
		channel.Title = info.Title
		channel.Thumbnail = info.Thumbnail
	} else if channel.Title == "" {
		// Without the API the caller must supply a display title
		http.Error(w, "Title is required when the YouTube API is not configured", http.StatusBadRequest)
		return nil
	}

	created, err := h.db.Model().YouTube().CreateChannel(req.Context(), channel)
	if err != nil {
		h.logger.Error("Failed to create channel", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	if h.service.Enabled() {
		if err := h.syncChannel(req.Context(), created.ChannelID); err != nil {
			h.logger.Warn("Initial video sync failed",
				zap.String("channelID", created.ChannelID),
				zap.Error(err))
		}
	}

	return respondJSON(w, http.StatusCreated, created)
}

// DeleteChannel removes a tracked channel and its cached videos. Creator only.
func (h *YouTubeHandler) DeleteChannel(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireCreator(w, req); !ok {
		return nil
	}

	channelID := req.Param("channelId")
	if channelID == "" {
		http.Error(w, "Channel ID is required", http.StatusBadRequest)
		return nil
	}

	if err := h.db.Model().YouTube().DeleteChannel(req.Context(), channelID); err != nil {
		if errors.Is(err, types.ErrChannelNotFound) {
			http.Error(w, "Channel not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to delete channel", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}

// ListVideos returns the cached videos from all tracked channels.
func (h *YouTubeHandler) ListVideos(w http.ResponseWriter, req bunrouter.Request) error {
	videos, err := h.db.Model().YouTube().GetVideos(req.Context())
	if err != nil {
		h.logger.Error("Failed to list videos", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, videos)
}

// Sync refreshes the video cache for every tracked channel. Creator only.
// Channels sync concurrently and one channel's failure never blocks the rest.
func (h *YouTubeHandler) Sync(w http.ResponseWriter, req bunrouter.Request) error {
	if _, ok := requireCreator(w, req); !ok {
		return nil
	}

	if !h.service.Enabled() {
		http.Error(w, "YouTube API is not configured", http.StatusServiceUnavailable)
		return nil
	}

	channels, err := h.db.Model().YouTube().GetChannels(req.Context())
	if err != nil {
		h.logger.Error("Failed to list channels", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	var synced, failed atomic.Int64

	p := pool.New().WithContext(req.Context())

	for _, channel := range channels {
		p.Go(func(ctx context.Context) error {
			if err := h.syncChannel(ctx, channel.ChannelID); err != nil {
				h.logger.Warn("Channel sync failed",
					zap.String("channelID", channel.ChannelID),
					zap.Error(err))
				failed.Add(1)

				return nil
			}

			synced.Add(1)

			return nil
		})
	}

	_ = p.Wait()

	return bunrouter.JSON(w, bunrouter.H{
		"synced": synced.Load(),
		"failed": failed.Load(),
	})
}

// syncChannel fetches a channel's latest videos and upserts them into the cache.
func (h *YouTubeHandler) syncChannel(ctx context.Context, channelID string) error {
	videos, err := h.service.LatestVideos(ctx, channelID)
	if err != nil {
		return err
	}

	if len(videos) == 0 {
		return nil
	}

	return h.db.Model().YouTube().UpsertVideos(ctx, videos)
}
