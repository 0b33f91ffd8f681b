package handler

import (
	"errors"
	"net/http"

	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/discord"
	"github.com/swarmlabs/hivehub/internal/rest/middleware/auth"
	"github.com/swarmlabs/hivehub/internal/session"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// AuthHandler handles the Discord OAuth login flow and session endpoints.
type AuthHandler struct {
	db       database.Client
	sessions *session.Store
	oauth    *discord.OAuthClient
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler. The OAuth client may be nil,
// which disables login.
func NewAuthHandler(db database.Client, sessions *session.Store, oauth *discord.OAuthClient, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		db:       db,
		sessions: sessions,
		oauth:    oauth,
		logger:   logger,
	}
}

// Login redirects the user to the Discord authorization page.
func (h *AuthHandler) Login(w http.ResponseWriter, req bunrouter.Request) error {
	if h.oauth == nil {
		http.Error(w, "Discord login is not configured", http.StatusServiceUnavailable)
		return nil
	}

	http.Redirect(w, req.Request, h.oauth.AuthorizationURL(), http.StatusFound)

	return nil
}

// Callback completes the OAuth exchange, upserts the local user and starts
// a session.
func (h *AuthHandler) Callback(w http.ResponseWriter, req bunrouter.Request) error {
	if h.oauth == nil {
		http.Error(w, "Discord login is not configured", http.StatusServiceUnavailable)
		return nil
	}

	query := req.URL.Query()

	code := query.Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return nil
	}

	identity, err := h.oauth.Exchange(req.Context(), code, query.Get("state"))
	if err != nil {
		h.logger.Error("OAuth exchange failed", zap.Error(err))
		http.Error(w, "Discord login failed", http.StatusBadGateway)

		return nil
	}

	user, err := h.upsertUser(req, identity)
	if err != nil {
		h.logger.Error("Failed to upsert user", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	token, err := h.sessions.Create(req.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, req.Request, "/", http.StatusFound)

	return nil
}

// upsertUser creates the user on first login and refreshes their Discord
// profile and access token on every later login.
func (h *AuthHandler) upsertUser(req bunrouter.Request, identity *discord.Identity) (*types.User, error) {
	users := h.db.Model().User()

	existing, err := users.GetUserByDiscordID(req.Context(), identity.DiscordID)
	if err != nil {
		if !errors.Is(err, types.ErrUserNotFound) {
			return nil, err
		}

		return users.CreateUser(req.Context(), &types.User{
			DiscordID:          identity.DiscordID,
			Username:           identity.Username,
			Avatar:             identity.AvatarURL,
			DiscordAccessToken: identity.AccessToken,
		})
	}

	return users.UpdateUser(req.Context(), existing.ID, &types.UserUpdate{
		Username:           &identity.Username,
		Avatar:             &identity.AvatarURL,
		DiscordAccessToken: &identity.AccessToken,
	})
}

// Logout deletes the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, req bunrouter.Request) error {
	if cookie, err := req.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(req.Context(), cookie.Value); err != nil {
			h.logger.Warn("Failed to delete session", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return bunrouter.JSON(w, bunrouter.H{"success": true})
}

// Me returns the authenticated user, or null for anonymous requests.
func (h *AuthHandler) Me(w http.ResponseWriter, req bunrouter.Request) error {
	return bunrouter.JSON(w, auth.UserFromContext(req.Context()))
}
