package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/swarmlabs/hivehub/internal/setup/config"
	"go.uber.org/zap"
)

var (
	// ErrDeliveryDisabled is returned when no bot token or guild is configured.
	// Callers treat this as "feature unavailable", not as a failure.
	ErrDeliveryDisabled = errors.New("notification delivery is not configured")

	// ErrNotLinked is returned when a user has no Discord account or token stored.
	ErrNotLinked = errors.New("user has no linked Discord account")
)

// Notifier delivers direct-message notifications through the Discord REST API.
type Notifier struct {
	client  rest.Rest
	guildID snowflake.ID
	logger  *zap.Logger
}

// NewNotifier creates a Notifier from the Discord configuration.
// A missing bot token or guild ID produces a disabled notifier whose
// delivery methods return ErrDeliveryDisabled.
func NewNotifier(cfg *config.Discord, logger *zap.Logger) *Notifier {
	n := &Notifier{
		guildID: snowflake.ID(cfg.GuildID),
		logger:  logger.Named("discord_notifier"),
	}

	if cfg.BotToken != "" {
		n.client = rest.New(rest.NewClient(cfg.BotToken))
	}

	return n
}

// Enabled reports whether delivery is configured.
func (n *Notifier) Enabled() bool {
	return n.client != nil && n.guildID != 0
}

// AddGuildMember joins a user to the community guild using their OAuth token.
// Discord returns success for users that are already members, so repeated
// calls are harmless.
func (n *Notifier) AddGuildMember(ctx context.Context, discordID, accessToken string) error {
	if !n.Enabled() {
		return ErrDeliveryDisabled
	}

	userID, err := snowflake.Parse(discordID)
	if err != nil {
		return fmt.Errorf("invalid discord ID %q: %w", discordID, err)
	}

	_, err = n.client.AddMember(n.guildID, userID, discord.MemberAdd{
		AccessToken: accessToken,
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to add guild member: %w", err)
	}

	return nil
}

// GetChannelMessages fetches the most recent messages from a guild channel,
// newest first. Used to surface the announcements channel as a news feed.
func (n *Notifier) GetChannelMessages(ctx context.Context, channelID string, limit int) ([]discord.Message, error) {
	if n.client == nil {
		return nil, ErrDeliveryDisabled
	}

	id, err := snowflake.Parse(channelID)
	if err != nil {
		return nil, fmt.Errorf("invalid channel ID %q: %w", channelID, err)
	}

	messages, err := n.client.GetMessages(id, 0, 0, 0, limit, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get channel messages: %w", err)
	}

	return messages, nil
}

// SendDM opens a direct-message channel with the user and sends the embed.
func (n *Notifier) SendDM(ctx context.Context, discordID string, embed discord.Embed) error {
	if n.client == nil {
		return ErrDeliveryDisabled
	}

	userID, err := snowflake.Parse(discordID)
	if err != nil {
		return fmt.Errorf("invalid discord ID %q: %w", discordID, err)
	}

	channel, err := n.client.CreateDMChannel(userID, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to create DM channel: %w", err)
	}

	_, err = n.client.CreateMessage(channel.ID(), discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		Build(), rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}

	n.logger.Debug("Sent DM notification", zap.String("discordID", discordID))

	return nil
}
