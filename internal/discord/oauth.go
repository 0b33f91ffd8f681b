package discord

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/oauth2"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/swarmlabs/hivehub/internal/setup/config"
	"go.uber.org/zap"
)

// Identity is the subset of the Discord profile the hub stores.
type Identity struct {
	DiscordID   string
	Username    string
	AvatarURL   string
	AccessToken string
}

// OAuthClient wraps the Discord OAuth2 flow used for login.
type OAuthClient struct {
	client      oauth2.Client
	redirectURI string
	logger      *zap.Logger
}

// NewOAuthClient creates an OAuthClient from the Discord configuration.
// Returns nil when the OAuth application is not configured, which disables
// login entirely.
func NewOAuthClient(cfg *config.Discord, publicURL string, logger *zap.Logger) *OAuthClient {
	if cfg.ClientID == 0 || cfg.ClientSecret == "" {
		return nil
	}

	return &OAuthClient{
		client:      oauth2.New(snowflake.ID(cfg.ClientID), cfg.ClientSecret),
		redirectURI: publicURL + "/api/auth/discord/callback",
		logger:      logger.Named("discord_oauth"),
	}
}

// AuthorizationURL generates the URL users are redirected to for login.
// The state parameter is tracked by the client and checked on callback.
func (o *OAuthClient) AuthorizationURL() string {
	url, _ := o.client.GenerateAuthorizationURLState(oauth2.AuthorizationURLParams{
		RedirectURI: o.redirectURI,
		Scopes: []discord.OAuth2Scope{
			discord.OAuth2ScopeIdentify,
			discord.OAuth2ScopeGuildsJoin,
		},
	})

	return url
}

// Exchange trades an authorization code for the user's identity and token.
func (o *OAuthClient) Exchange(ctx context.Context, code, state string) (*Identity, error) {
	session, _, err := o.client.StartSession(code, state, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to start OAuth session: %w", err)
	}

	user, err := o.client.GetUser(session, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth user: %w", err)
	}

	o.logger.Debug("Completed OAuth exchange", zap.String("username", user.Username))

	return &Identity{
		DiscordID:   user.ID.String(),
		Username:    user.Username,
		AvatarURL:   user.EffectiveAvatarURL(),
		AccessToken: session.AccessToken,
	}, nil
}
