package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/session"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// CookieName is the HTTP cookie carrying the session token.
const CookieName = "hivehub_session"

type contextKey struct{}

// Middleware resolves the session cookie to a user on every request.
// Resolution is non-fatal: anonymous requests pass through and handlers
// decide whether authentication is required.
type Middleware struct {
	db       database.Client
	sessions *session.Store
	logger   *zap.Logger
}

// New creates the session resolution middleware.
func New(db database.Client, sessions *session.Store, logger *zap.Logger) *Middleware {
	return &Middleware{
		db:       db,
		sessions: sessions,
		logger:   logger,
	}
}

// AsRESTMiddleware adapts the middleware for bunrouter.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		cookie, err := req.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return next(w, req)
		}

		userID, err := m.sessions.Get(req.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				m.logger.Warn("Failed to resolve session", zap.Error(err))
			}

			return next(w, req)
		}

		user, err := m.db.Model().User().GetUserByID(req.Context(), userID)
		if err != nil {
			if !errors.Is(err, types.ErrUserNotFound) {
				m.logger.Warn("Failed to load session user", zap.Error(err))
			}

			return next(w, req)
		}

		req.Request = req.Request.WithContext(ContextWithUser(req.Context(), user))

		return next(w, req)
	}
}

// ContextWithUser returns a context carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *types.User {
	user, _ := ctx.Value(contextKey{}).(*types.User)
	return user
}
