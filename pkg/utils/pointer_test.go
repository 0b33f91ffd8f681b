package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swarmlabs/hivehub/pkg/utils"
)

func TestPtr(t *testing.T) {
	t.Parallel()

	t.Run("string pointer", func(t *testing.T) {
		t.Parallel()

		s := "test"
		ptr := utils.Ptr(s)
		assert.NotNil(t, ptr)
		assert.Equal(t, s, *ptr)
	})

	t.Run("boolean pointer", func(t *testing.T) {
		t.Parallel()

		ptr := utils.Ptr(true)
		assert.NotNil(t, ptr)
		assert.True(t, *ptr)
	})

	t.Run("struct pointer", func(t *testing.T) {
		t.Parallel()

		type sample struct{ N int }

		v := sample{N: 7}
		ptr := utils.Ptr(v)
		assert.NotNil(t, ptr)
		assert.Equal(t, v, *ptr)
	})
}
