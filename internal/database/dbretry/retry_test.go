package dbretry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swarmlabs/hivehub/internal/database/dbretry"
)

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "nil error",
			err:       nil,
			retryable: false,
		},
		{
			name:      "deadline exceeded",
			err:       context.DeadlineExceeded,
			retryable: true,
		},
		{
			name:      "connection refused",
			err:       errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			retryable: true,
		},
		{
			name:      "broken pipe",
			err:       errors.New("write: broken pipe"),
			retryable: true,
		},
		{
			name:      "io timeout",
			err:       errors.New("read tcp: i/o timeout"),
			retryable: true,
		},
		{
			name:      "constraint violation",
			err:       errors.New("duplicate key value violates unique constraint"),
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.retryable, dbretry.IsRetryableError(tt.err))
		})
	}
}

func TestOperationSucceeds(t *testing.T) {
	t.Parallel()

	result, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestOperationStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	permanent := errors.New("syntax error")
	calls := 0

	_, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
		calls++
		return 0, permanent
	})

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
}

func TestOperationRetriesTransientError(t *testing.T) {
	t.Parallel()

	calls := 0

	result, err := dbretry.Operation(t.Context(), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection reset by peer")
		}

		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
}

func TestNoResult(t *testing.T) {
	t.Parallel()

	permanent := errors.New("not null violation")

	err := dbretry.NoResult(t.Context(), func(context.Context) error {
		return permanent
	})

	require.ErrorIs(t, err, permanent)
}
