package setup

import (
	"context"
	"fmt"
	"log"

	"github.com/jaxron/roapi.go/pkg/api"
	"github.com/redis/rueidis"
	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/discord"
	"github.com/swarmlabs/hivehub/internal/roblox/fetcher"
	"github.com/swarmlabs/hivehub/internal/session"
	"github.com/swarmlabs/hivehub/internal/setup/client"
	"github.com/swarmlabs/hivehub/internal/setup/config"
	"github.com/swarmlabs/hivehub/internal/youtube"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config      *config.Config        // Application configuration
	Logger      *zap.Logger           // Main application logger
	DB          database.Client       // Database connection pool
	RoAPI       *api.API              // Roblox API HTTP client
	RedisClient rueidis.Client        // Redis client for session storage
	Sessions    *session.Store        // Session token store
	Notifier    *discord.Notifier     // Discord DM delivery
	Stats       *discord.StatsFetcher // Discord member count lookups
	OAuth       *discord.OAuthClient  // Discord OAuth flow
	Groups      *fetcher.GroupFetcher // Roblox group lookups
	Games       *fetcher.GameFetcher  // Roblox game lookups
	YouTube     *youtube.Service      // YouTube Data API wrapper
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logger, err := newLogger(cfg.Debug.LogLevel)
	if err != nil {
		return nil, err
	}

	// Initialize database and run pending migrations
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, logger.Named("database"), true)
	if err != nil {
		return nil, err
	}

	// Redis backs the session store
	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)},
		Username:     cfg.Redis.Username,
		Password:     cfg.Redis.Password,
		DisableCache: true,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	// Roblox API client is configured with middleware chain
	roAPI := client.GetRoAPIClient(&cfg.Roblox)

	// YouTube service is optional and disabled without an API key
	ytService, err := youtube.NewService(ctx, cfg.YouTube.APIKey, logger)
	if err != nil {
		redisClient.Close()
		db.Close()

		return nil, err
	}

	return &App{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		RoAPI:       roAPI,
		RedisClient: redisClient,
		Sessions:    session.NewStore(redisClient, logger),
		Notifier:    discord.NewNotifier(&cfg.Discord, logger),
		Stats:       discord.NewStatsFetcher(&cfg.Discord, logger),
		OAuth:       discord.NewOAuthClient(&cfg.Discord, cfg.Server.PublicURL, logger),
		Groups:      fetcher.NewGroupFetcher(roAPI, cfg.Roblox.GroupID, logger),
		Games:       fetcher.NewGameFetcher(roAPI, cfg.Roblox.UniverseID, logger),
		YouTube:     ytService,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup() {
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis last as other components might need it during cleanup
	s.RedisClient.Close()
}

// newLogger builds the application logger with the configured level.
func newLogger(level string) (*zap.Logger, error) {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		parsedLevel = zapcore.InfoLevel
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(parsedLevel)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}
