package session_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swarmlabs/hivehub/internal/session"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*session.Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return session.NewStore(client, zap.NewNop()), mr
}

func TestCreateAndGet(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t)
	ctx := t.Context()

	token, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestGetUnknownToken(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t)

	_, err := store.Get(t.Context(), "nope")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestGetExpiredToken(t *testing.T) {
	t.Parallel()

	store, mr := setupTest(t)
	ctx := t.Context()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	mr.FastForward(session.TTL * 2)

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t)
	ctx := t.Context()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, token))

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// Deleting again is a no-op
	require.NoError(t, store.Delete(ctx, token))
}

func TestSessionsAreIndependent(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t)
	ctx := t.Context()

	tokenA, err := store.Create(ctx, 1)
	require.NoError(t, err)

	tokenB, err := store.Create(ctx, 2)
	require.NoError(t, err)

	require.NotEqual(t, tokenA, tokenB)

	require.NoError(t, store.Delete(ctx, tokenA))

	userID, err := store.Get(ctx, tokenB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), userID)
}
