package tracking

import (
	"context"
	"time"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/discord"
	"github.com/swarmlabs/hivehub/internal/roblox/fetcher"
	"go.uber.org/zap"
)

// defaultGroupName is used when the group lookup fails on a tick.
const defaultGroupName = "HiveHub Community Group"

// GroupAPI provides the group lookups the worker polls.
type GroupAPI interface {
	GetGroupDetails(ctx context.Context) (*fetcher.GroupDetails, error)
	GetGroupIcon(ctx context.Context) (string, error)
}

// UserStore provides the opted-in user set at fan-out time.
type UserStore interface {
	GetUsersWithTracking(ctx context.Context) ([]*types.User, error)
}

// Notifier delivers guild joins and DM embeds to individual users.
type Notifier interface {
	Enabled() bool
	AddGuildMember(ctx context.Context, discordID, accessToken string) error
	SendDM(ctx context.Context, discordID string, embed disgodiscord.Embed) error
}

// Worker polls the tracked group's member count and notifies opted-in
// users when it grows. Ticks run strictly one at a time; the next tick is
// scheduled only after the previous one finishes.
type Worker struct {
	groups   GroupAPI
	users    UserStore
	notifier Notifier
	interval time.Duration
	logger   *zap.Logger

	// lastCount is only meaningful once initialized is true. Keeping the
	// flag explicit means a group that legitimately has zero members
	// cannot be mistaken for a cold start.
	lastCount   uint64
	initialized bool
}

// New creates a tracking worker. State starts uninitialized, so the first
// successful poll only establishes the baseline and never fans out.
func New(groups GroupAPI, users UserStore, notifier Notifier, interval time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		groups:   groups,
		users:    users,
		notifier: notifier,
		interval: interval,
		logger:   logger.Named("tracking_worker"),
	}
}

// Start begins the polling loop. The first tick runs immediately. Start
// returns when the context is canceled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Tracking worker started", zap.Duration("interval", w.interval))

	for {
		w.Tick(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("Tracking worker stopped")
			return
		case <-time.After(w.interval):
		}
	}
}

// Tick runs one poll cycle. All failures are handled internally: group
// metadata failures degrade to defaults, a member count failure aborts the
// cycle with the baseline untouched, and per-user delivery failures are
// isolated from each other.
func (w *Worker) Tick(ctx context.Context) {
	// Group name and icon are presentation only, a failed lookup must
	// never prevent growth detection
	groupName := defaultGroupName

	if details, err := w.groups.GetGroupDetails(ctx); err == nil && details.Name != "" {
		groupName = details.Name
	} else if err != nil {
		w.logger.Warn("Failed to fetch group metadata, using defaults", zap.Error(err))
	}

	groupIcon, err := w.groups.GetGroupIcon(ctx)
	if err != nil {
		w.logger.Warn("Failed to fetch group icon", zap.Error(err))

		groupIcon = ""
	}

	// The member count is the one fetch that matters. On failure the tick
	// ends here so the next comparison still uses the last good value.
	details, err := w.groups.GetGroupDetails(ctx)
	if err != nil {
		w.logger.Error("Failed to fetch group member count, skipping tick", zap.Error(err))
		return
	}

	currentCount := details.MemberCount

	if w.initialized && currentCount > w.lastCount {
		w.logger.Info("Group growth detected",
			zap.Uint64("previous", w.lastCount),
			zap.Uint64("current", currentCount))

		w.fanOut(ctx, groupName, groupIcon, currentCount)
	}

	w.lastCount = currentCount
	w.initialized = true
}

// fanOut notifies every eligible opted-in user about the growth event.
// Each user's delivery is attempted independently.
func (w *Worker) fanOut(ctx context.Context, groupName, groupIcon string, memberCount uint64) {
	if !w.notifier.Enabled() {
		w.logger.Warn("Notification delivery not configured, skipping fan-out")
		return
	}

	users, err := w.users.GetUsersWithTracking(ctx)
	if err != nil {
		w.logger.Error("Failed to load tracking users", zap.Error(err))
		return
	}

	embed := discord.BuildGrowthEmbed(groupName, groupIcon, memberCount)

	notified := 0

	for _, user := range users {
		if !user.CanNotify() {
			continue
		}

		w.logger.Debug("Notifying user",
			zap.String("username", user.Username),
			zap.String("discordID", user.DiscordID))

		// Joining the guild is best-effort, the DM is still attempted
		// when it fails
		if err := w.notifier.AddGuildMember(ctx, user.DiscordID, user.DiscordAccessToken); err != nil {
			w.logger.Warn("Failed to add user to guild",
				zap.String("username", user.Username),
				zap.Error(err))
		}

		if err := w.notifier.SendDM(ctx, user.DiscordID, embed); err != nil {
			w.logger.Warn("Failed to notify user",
				zap.String("username", user.Username),
				zap.Error(err))

			continue
		}

		notified++
	}

	w.logger.Info("Fan-out complete",
		zap.Int("eligible", len(users)),
		zap.Int("notified", notified))
}
