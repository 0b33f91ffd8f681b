package handler

import (
	"context"
	"net/http"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// messageFeedLimit caps how many announcements the news feed returns.
const messageFeedLimit = 10

// MessageFetcher is the Discord message read surface needed by the news feed.
type MessageFetcher interface {
	Enabled() bool
	GetChannelMessages(ctx context.Context, channelID string, limit int) ([]disgodiscord.Message, error)
}

// MessagesHandler serves recent Discord channel messages as a news feed.
type MessagesHandler struct {
	messages MessageFetcher
	logger   *zap.Logger
}

// NewMessagesHandler creates a new messages handler.
func NewMessagesHandler(messages MessageFetcher, logger *zap.Logger) *MessagesHandler {
	return &MessagesHandler{
		messages: messages,
		logger:   logger,
	}
}

// List returns the latest messages from the given channel, newest first.
func (h *MessagesHandler) List(w http.ResponseWriter, req bunrouter.Request) error {
	if !h.messages.Enabled() {
		http.Error(w, "Discord integration is not configured", http.StatusServiceUnavailable)
		return nil
	}

	channelID := req.Param("channelId")

	messages, err := h.messages.GetChannelMessages(req.Context(), channelID, messageFeedLimit)
	if err != nil {
		h.logger.Error("Failed to fetch channel messages",
			zap.String("channelID", channelID),
			zap.Error(err))
		http.Error(w, "Failed to fetch Discord messages", http.StatusBadGateway)

		return nil
	}

	return bunrouter.JSON(w, messages)
}
