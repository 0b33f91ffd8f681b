package discord

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/rest"
	"github.com/swarmlabs/hivehub/internal/setup/config"
	"go.uber.org/zap"
)

// StatsFetcher retrieves approximate member counts for the community server.
type StatsFetcher struct {
	client     rest.Rest
	inviteCode string
	logger     *zap.Logger
}

// NewStatsFetcher creates a StatsFetcher from the Discord configuration.
func NewStatsFetcher(cfg *config.Discord, logger *zap.Logger) *StatsFetcher {
	s := &StatsFetcher{
		inviteCode: cfg.InviteCode,
		logger:     logger.Named("discord_stats"),
	}

	if cfg.BotToken != "" {
		s.client = rest.New(rest.NewClient(cfg.BotToken))
	}

	return s
}

// GetMemberCount retrieves the approximate member count of the community
// server through its invite.
func (s *StatsFetcher) GetMemberCount(ctx context.Context) (int, error) {
	if s.client == nil || s.inviteCode == "" {
		return 0, ErrDeliveryDisabled
	}

	invite, err := s.client.GetInvite(s.inviteCode, rest.WithCtx(ctx), rest.WithQueryParam("with_counts", true))
	if err != nil {
		return 0, fmt.Errorf("failed to get invite: %w", err)
	}

	return invite.ApproximateMemberCount, nil
}
