package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/swarmlabs/hivehub/internal/database/types"
	"go.uber.org/zap"
)

// seedStickers is the starting value list inserted on first boot.
var seedStickers = []*types.Sticker{
	{Name: "Star Sign", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/a/a2/Star_Sign_Sticker.png", Price: 5000, Trend: types.StickerTrendRising, Category: "mythic"},
	{Name: "Stick Nymph", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/e/e4/Stick_Nymph_Sticker.png", Price: 2500, Trend: types.StickerTrendStable, Category: "legendary"},
	{Name: "Simple Sun", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/b/b3/Simple_Sun_Sticker.png", Price: 100, Trend: types.StickerTrendStable, Category: "common"},
	{Name: "Rubber Duck", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/3/3d/Rubber_Duck_Sticker.png", Price: 50, Trend: types.StickerTrendFalling, Category: "common"},
	{Name: "Traffic Cone", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/c/c3/Traffic_Cone_Sticker.png", Price: 75, Trend: types.StickerTrendStable, Category: "uncommon"},
	{Name: "Diamond Bee", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/d/d4/Diamond_Bee_Sticker.png", Price: 1200, Trend: types.StickerTrendRising, Category: "legendary"},
	{Name: "Tabby Bee", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/0/07/Tabby_Bee_Sticker.png", Price: 1500, Trend: types.StickerTrendStable, Category: "event"},
	{Name: "Gummy Bear", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/0/0a/Gummy_Bear_Sticker.png", Price: 3000, Trend: types.StickerTrendRising, Category: "mythic"},
	{Name: "Festive Bee", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/1/1a/Festive_Bee_Sticker.png", Price: 800, Trend: types.StickerTrendFalling, Category: "event"},
	{Name: "Golden Rake", Image: "https://vignette.wikia.nocookie.net/bee-swarm-simulator/images/4/4b/Golden_Rake_Sticker.png", Price: 200, Trend: types.StickerTrendStable, Category: "rare"},
}

// Seed populates an empty database with the starting value list.
// Safe to call on every boot; it only runs when no stickers exist.
func Seed(ctx context.Context, client Client, logger *zap.Logger) error {
	count, err := client.Model().Sticker().CountStickers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check sticker count: %w", err)
	}

	if count > 0 {
		return nil
	}

	logger.Info("Seeding database", zap.Int("stickers", len(seedStickers)))

	for _, sticker := range seedStickers {
		sticker.ApplyDefaults()

		if _, err := client.Model().Sticker().CreateSticker(ctx, sticker); err != nil {
			return fmt.Errorf("failed to seed sticker %q: %w", sticker.Name, err)
		}
	}

	// Make sure the hub administrator account exists before first login
	const adminDiscordID = "1243206708604702791"

	_, err = client.Model().User().GetUserByDiscordID(ctx, adminDiscordID)
	if err != nil {
		if !errors.Is(err, types.ErrUserNotFound) {
			return fmt.Errorf("failed to check admin user: %w", err)
		}

		_, err = client.Model().User().CreateUser(ctx, &types.User{
			Username:  "Admin",
			DiscordID: adminDiscordID,
			Roles:     []string{"admin", "moderator"},
			IsStaff:   true,
			IsAdmin:   true,
			Bio:       "Hub Administrator",
		})
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	return nil
}
