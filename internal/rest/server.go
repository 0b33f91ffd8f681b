package rest

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/discord"
	"github.com/swarmlabs/hivehub/internal/rest/handler"
	"github.com/swarmlabs/hivehub/internal/rest/middleware/auth"
	"github.com/swarmlabs/hivehub/internal/rest/middleware/requestlog"
	"github.com/swarmlabs/hivehub/internal/roblox/fetcher"
	"github.com/swarmlabs/hivehub/internal/session"
	"github.com/swarmlabs/hivehub/internal/youtube"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Deps bundles the services the REST API is built from.
type Deps struct {
	DB       database.Client
	Sessions *session.Store
	OAuth    *discord.OAuthClient
	Notifier *discord.Notifier
	Stats    *discord.StatsFetcher
	Groups   *fetcher.GroupFetcher
	Games    *fetcher.GameFetcher
	YouTube  *youtube.Service
}

// Server implements the REST API service.
type Server struct {
	authHandler    *handler.AuthHandler
	stickerHandler *handler.StickerHandler
	staffHandler   *handler.StaffHandler
	userHandler    *handler.UserHandler
	codeHandler    *handler.CodeHandler
	adminHandler   *handler.AdminHandler
	statsHandler   *handler.StatsHandler
	messageHandler *handler.MessagesHandler
	youtubeHandler *handler.YouTubeHandler
}

// NewServer creates a new REST API server.
func NewServer(deps Deps, logger *zap.Logger) http.Handler {
	// Create server instance with handlers
	server := &Server{
		authHandler:    handler.NewAuthHandler(deps.DB, deps.Sessions, deps.OAuth, logger),
		stickerHandler: handler.NewStickerHandler(deps.DB, logger),
		staffHandler:   handler.NewStaffHandler(deps.DB, logger),
		userHandler:    handler.NewUserHandler(deps.DB, deps.Groups, deps.Notifier, logger),
		codeHandler:    handler.NewCodeHandler(deps.DB, logger),
		adminHandler:   handler.NewAdminHandler(deps.DB, logger),
		statsHandler:   handler.NewStatsHandler(deps.DB, deps.Games, deps.Stats, logger),
		messageHandler: handler.NewMessagesHandler(deps.Notifier, logger),
		youtubeHandler: handler.NewYouTubeHandler(deps.DB, deps.YouTube, logger),
	}

	// Create middleware instances
	logMiddleware := requestlog.New(logger)
	authMiddleware := auth.New(deps.DB, deps.Sessions, logger)

	// Create base router
	router := bunrouter.New()

	router.Use(
		logMiddleware.AsRESTMiddleware,
		authMiddleware.AsRESTMiddleware,
	).WithGroup("/api", func(g *bunrouter.Group) {
		g.GET("/auth/discord", server.authHandler.Login)
		g.GET("/auth/discord/callback", server.authHandler.Callback)
		g.POST("/auth/logout", server.authHandler.Logout)
		g.GET("/auth/me", server.authHandler.Me)

		g.GET("/stickers", server.stickerHandler.List)
		g.GET("/stickers/:id", server.stickerHandler.Get)
		g.POST("/stickers", server.stickerHandler.Create)
		g.PATCH("/stickers/:id", server.stickerHandler.Update)
		g.DELETE("/stickers/:id", server.stickerHandler.Delete)

		g.GET("/staff", server.staffHandler.List)
		g.POST("/staff/profile", server.staffHandler.UpsertProfile)
		g.POST("/staff/:id/comments", server.staffHandler.CreateComment)

		g.PATCH("/user/bio", server.userHandler.UpdateBio)
		g.POST("/user/tracking", server.userHandler.SetTracking)
		g.POST("/user/test-ping", server.userHandler.TestPing)

		g.GET("/codes", server.codeHandler.List)
		g.POST("/codes", server.codeHandler.Create)
		g.PATCH("/codes/:id", server.codeHandler.Update)
		g.DELETE("/codes/:id", server.codeHandler.Delete)

		g.GET("/admin/users", server.adminHandler.ListUsers)
		g.PATCH("/admin/users/:id/role", server.adminHandler.UpdateRole)

		g.GET("/stats", server.statsHandler.Get)

		g.GET("/discord/messages/:channelId", server.messageHandler.List)

		g.GET("/youtube/channels", server.youtubeHandler.ListChannels)
		g.POST("/youtube/channels", server.youtubeHandler.CreateChannel)
		g.DELETE("/youtube/channels/:channelId", server.youtubeHandler.DeleteChannel)
		g.GET("/youtube/videos", server.youtubeHandler.ListVideos)
		g.POST("/youtube/sync", server.youtubeHandler.Sync)
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router)
}
