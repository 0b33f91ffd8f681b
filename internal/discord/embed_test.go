package discord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swarmlabs/hivehub/internal/discord"
)

func TestBuildGrowthEmbed(t *testing.T) {
	t.Parallel()

	embed := discord.BuildGrowthEmbed("Bee Club", "https://cdn.example/icon.png", 1234)

	assert.Equal(t, "🚀 New member accepted!", embed.Title)
	assert.Contains(t, embed.Description, "Bee Club")
	assert.Equal(t, discord.EmbedColor, embed.Color)

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Bee Club", embed.Fields[0].Value)
	assert.Equal(t, "1234", embed.Fields[1].Value)

	require.NotNil(t, embed.Thumbnail)
	assert.Equal(t, "https://cdn.example/icon.png", embed.Thumbnail.URL)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "HiveHub • Real-Time Alerts", embed.Footer.Text)
	assert.NotNil(t, embed.Timestamp)
}

func TestBuildGrowthEmbedWithoutIcon(t *testing.T) {
	t.Parallel()

	embed := discord.BuildGrowthEmbed("Bee Club", "", 10)

	assert.Nil(t, embed.Thumbnail)
}

func TestBuildTestPingEmbed(t *testing.T) {
	t.Parallel()

	embed := discord.BuildTestPingEmbed("beekeeper", "Bee Club", "")

	assert.Equal(t, "🔔 HiveHub Notification Test", embed.Title)
	assert.Contains(t, embed.Description, "Bee Club")

	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "beekeeper", embed.Fields[0].Value)
	assert.Equal(t, "Bee Club", embed.Fields[2].Value)
	assert.Nil(t, embed.Thumbnail)
}
