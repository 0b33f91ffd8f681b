package fetcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaxron/roapi.go/pkg/api"
	"go.uber.org/zap"
)

// ErrGameNotFound is returned when the configured universe has no game data.
var ErrGameNotFound = errors.New("game not found for universe")

// GameFetcher handles retrieval of live game information from the Roblox API.
type GameFetcher struct {
	roAPI      *api.API
	universeID uint64
	logger     *zap.Logger
}

// NewGameFetcher creates a GameFetcher for the configured universe.
func NewGameFetcher(roAPI *api.API, universeID uint64, logger *zap.Logger) *GameFetcher {
	return &GameFetcher{
		roAPI:      roAPI,
		universeID: universeID,
		logger:     logger.Named("game_fetcher"),
	}
}

// GetPlayingCount retrieves the current live player count of the game.
func (g *GameFetcher) GetPlayingCount(ctx context.Context) (uint64, error) {
	gamesResp, err := g.roAPI.Games().GetGamesByUniverseIDs(ctx, []uint64{g.universeID})
	if err != nil {
		return 0, fmt.Errorf("failed to get game details: %w", err)
	}

	for _, gameDetail := range gamesResp.Data {
		if gameDetail.ID != g.universeID {
			continue
		}

		g.logger.Debug("Fetched game details",
			zap.Uint64("universeID", g.universeID),
			zap.Uint64("playing", gameDetail.Playing))

		return gameDetail.Playing, nil
	}

	return 0, ErrGameNotFound
}
