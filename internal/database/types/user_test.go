package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swarmlabs/hivehub/internal/database/types"
)

func TestElevate(t *testing.T) {
	t.Parallel()

	t.Run("creator username gains all flags", func(t *testing.T) {
		t.Parallel()

		user := &types.User{Username: types.CreatorUsername}
		user.Elevate()

		assert.True(t, user.IsCreator)
		assert.True(t, user.IsAdmin)
		assert.True(t, user.IsStaff)
	})

	t.Run("other usernames are untouched", func(t *testing.T) {
		t.Parallel()

		user := &types.User{Username: "someone"}
		user.Elevate()

		assert.False(t, user.IsCreator)
		assert.False(t, user.IsAdmin)
		assert.False(t, user.IsStaff)
	})
}

func TestCanNotify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		user     types.User
		expected bool
	}{
		{
			name:     "linked with token",
			user:     types.User{DiscordID: "123", DiscordAccessToken: "tok"},
			expected: true,
		},
		{
			name:     "missing discord ID",
			user:     types.User{DiscordAccessToken: "tok"},
			expected: false,
		},
		{
			name:     "missing access token",
			user:     types.User{DiscordID: "123"},
			expected: false,
		},
		{
			name:     "unlinked",
			user:     types.User{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.user.CanNotify())
		})
	}
}
