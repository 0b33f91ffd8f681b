package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a session token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

const (
	// TTL is how long a session lives without activity.
	TTL = 30 * 24 * time.Hour

	keyPrefix = "session:"
)

// Store keeps login sessions in Redis, keyed by opaque tokens.
type Store struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewStore creates a session store on the given Redis client.
func NewStore(client rueidis.Client, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.Named("session"),
	}
}

// Create starts a new session for the user and returns its token.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()

	err := s.client.Do(ctx, s.client.B().Set().
		Key(keyPrefix+token).
		Value(strconv.FormatInt(userID, 10)).
		Ex(TTL).
		Build()).Error()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// Get resolves a session token to a user ID and refreshes its expiry.
func (s *Store) Get(ctx context.Context, token string) (int64, error) {
	value, err := s.client.Do(ctx, s.client.B().Get().
		Key(keyPrefix + token).
		Build()).ToString()
	if err != nil {
		if errors.Is(err, rueidis.Nil) {
			return 0, ErrSessionNotFound
		}

		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", value, err)
	}

	// Sliding expiry, sessions stay alive while in use
	err = s.client.Do(ctx, s.client.B().Expire().
		Key(keyPrefix+token).
		Seconds(int64(TTL.Seconds())).
		Build()).Error()
	if err != nil {
		s.logger.Warn("Failed to refresh session expiry", zap.Error(err))
	}

	return userID, nil
}

// Delete ends a session. Unknown tokens are ignored.
func (s *Store) Delete(ctx context.Context, token string) error {
	err := s.client.Do(ctx, s.client.B().Del().
		Key(keyPrefix + token).
		Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
