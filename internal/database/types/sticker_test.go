package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swarmlabs/hivehub/internal/database/types"
)

func TestStickerApplyDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty fields get defaults", func(t *testing.T) {
		t.Parallel()

		sticker := &types.Sticker{Name: "Honey Badge", Image: "https://cdn.example/honey.png"}
		sticker.ApplyDefaults()

		assert.Equal(t, types.StickerTrendStable, sticker.Trend)
		assert.Equal(t, types.StickerStatusStable, sticker.Status)
		assert.Equal(t, "common", sticker.Category)
		assert.Equal(t, 5, sticker.Demand)
	})

	t.Run("set fields are preserved", func(t *testing.T) {
		t.Parallel()

		sticker := &types.Sticker{
			Name:     "Gummy Bee",
			Image:    "https://cdn.example/gummy.png",
			Trend:    types.StickerTrendRising,
			Status:   types.StickerStatusOverpay,
			Category: "legendary",
			Demand:   9,
		}
		sticker.ApplyDefaults()

		assert.Equal(t, types.StickerTrendRising, sticker.Trend)
		assert.Equal(t, types.StickerStatusOverpay, sticker.Status)
		assert.Equal(t, "legendary", sticker.Category)
		assert.Equal(t, 9, sticker.Demand)
	})
}
