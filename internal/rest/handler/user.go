package handler

import (
	"context"
	"net/http"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/discord"
	"github.com/swarmlabs/hivehub/internal/roblox/fetcher"
	"github.com/swarmlabs/hivehub/pkg/utils"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

const fallbackGroupName = "HiveHub Community Group"

// GroupAPI is the group lookup surface needed by the test ping.
type GroupAPI interface {
	GetGroupDetails(ctx context.Context) (*fetcher.GroupDetails, error)
	GetGroupIcon(ctx context.Context) (string, error)
}

// Notifier is the delivery surface needed by the test ping.
type Notifier interface {
	Enabled() bool
	AddGuildMember(ctx context.Context, discordID, accessToken string) error
	SendDM(ctx context.Context, discordID string, embed disgodiscord.Embed) error
}

// UserHandler handles per-user settings and the notification test ping.
type UserHandler struct {
	db       database.Client
	groups   GroupAPI
	notifier Notifier
	logger   *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(db database.Client, groups GroupAPI, notifier Notifier, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		db:       db,
		groups:   groups,
		notifier: notifier,
		logger:   logger,
	}
}

// UpdateBio updates the caller's profile bio.
func (h *UserHandler) UpdateBio(w http.ResponseWriter, req bunrouter.Request) error {
	user, ok := requireUser(w, req)
	if !ok {
		return nil
	}

	var body struct {
		Bio string `json:"bio"`
	}

	if err := decodeJSON(req, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	updated, err := h.db.Model().User().UpdateUser(req.Context(), user.ID, &types.UserUpdate{
		Bio: utils.Ptr(body.Bio),
	})
	if err != nil {
		h.logger.Error("Failed to update bio", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, updated)
}

// SetTracking toggles the caller's group tracking notifications.
func (h *UserHandler) SetTracking(w http.ResponseWriter, req bunrouter.Request) error {
	user, ok := requireUser(w, req)
	if !ok {
		return nil
	}

	var body struct {
		Enabled bool `json:"enabled"`
	}

	if err := decodeJSON(req, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	updated, err := h.db.Model().User().UpdateUser(req.Context(), user.ID, &types.UserUpdate{
		TrackingEnabled: utils.Ptr(body.Enabled),
	})
	if err != nil {
		h.logger.Error("Failed to update tracking setting", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, updated)
}

// TestPing sends the caller a test DM through the same delivery path the
// tracking worker uses, so users can verify their setup end to end.
func (h *UserHandler) TestPing(w http.ResponseWriter, req bunrouter.Request) error {
	user, ok := requireUser(w, req)
	if !ok {
		return nil
	}

	if !h.notifier.Enabled() {
		http.Error(w, "Notification delivery is not configured", http.StatusServiceUnavailable)
		return nil
	}

	if !user.CanNotify() {
		http.Error(w, "No linked Discord account", http.StatusBadRequest)
		return nil
	}

	// Group metadata is cosmetic here, failures degrade to defaults
	groupName := fallbackGroupName

	if details, err := h.groups.GetGroupDetails(req.Context()); err == nil {
		if details.Name != "" {
			groupName = details.Name
		}
	} else {
		h.logger.Warn("Failed to get group details for test ping", zap.Error(err))
	}

	groupIcon, err := h.groups.GetGroupIcon(req.Context())
	if err != nil {
		groupIcon = ""
	}

	// The DM is attempted even when the guild join fails, but unlike the
	// tracking worker the join failure is still reported to the caller.
	joinErr := h.notifier.AddGuildMember(req.Context(), user.DiscordID, user.DiscordAccessToken)
	if joinErr != nil {
		h.logger.Warn("Failed to join user to guild for test ping",
			zap.Int64("userID", user.ID),
			zap.Error(joinErr))
	}

	embed := discord.BuildTestPingEmbed(user.Username, groupName, groupIcon)
	if err := h.notifier.SendDM(req.Context(), user.DiscordID, embed); err != nil {
		h.logger.Error("Failed to send test ping", zap.Int64("userID", user.ID), zap.Error(err))
		http.Error(w, "Failed to deliver test notification", http.StatusBadGateway)

		return nil
	}

	if joinErr != nil {
		http.Error(w, "Failed to join community server", http.StatusBadGateway)
		return nil
	}

	return bunrouter.JSON(w, bunrouter.H{"success": true})
}
