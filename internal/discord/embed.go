package discord

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
)

// EmbedColor is the hub's honey-yellow accent color.
const EmbedColor = 0xFEBC11

// BuildGrowthEmbed builds the DM embed sent when the tracked group gains a member.
func BuildGrowthEmbed(groupName, groupIcon string, memberCount uint64) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle("🚀 New member accepted!").
		SetDescriptionf("A new member has been accepted into the group **%s**!", groupName).
		SetColor(EmbedColor).
		AddField("Group", groupName, true).
		AddField("Total Members", fmt.Sprintf("%d", memberCount), true).
		SetFooter("HiveHub • Real-Time Alerts", "").
		SetTimestamp(time.Now())

	if groupIcon != "" {
		embed.SetThumbnail(groupIcon)
	}

	return embed.Build()
}

// BuildTestPingEmbed builds the DM embed for a user-requested delivery test.
func BuildTestPingEmbed(username, groupName, groupIcon string) discord.Embed {
	embed := discord.NewEmbedBuilder().
		SetTitle("🔔 HiveHub Notification Test").
		SetDescriptionf("This is a test to confirm that you will receive tracking alerts for the group **%s**.", groupName).
		SetColor(EmbedColor).
		AddField("User", username, true).
		AddField("Status", "🟢 Operational", true).
		AddField("Monitored Group", groupName, false).
		SetFooter("HiveHub • Tracking System", "").
		SetTimestamp(time.Now())

	if groupIcon != "" {
		embed.SetThumbnail(groupIcon)
	}

	return embed.Build()
}
