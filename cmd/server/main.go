package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/swarmlabs/hivehub/internal/rest"
	"github.com/swarmlabs/hivehub/internal/setup"
	"github.com/swarmlabs/hivehub/internal/worker/tracking"
	"go.uber.org/zap"
)

// Server timeouts.
const (
	DefaultReadTimeout  = 5 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	ShutdownTimeout     = 30 * time.Second

	DefaultTrackingInterval = time.Minute
)

func main() {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup()

	if err := database.Seed(context.Background(), app.DB, app.Logger); err != nil {
		app.Logger.Fatal("Failed to seed database", zap.Error(err))
	}

	// Create server
	handler := rest.NewServer(rest.Deps{
		DB:       app.DB,
		Sessions: app.Sessions,
		OAuth:    app.OAuth,
		Notifier: app.Notifier,
		Stats:    app.Stats,
		Groups:   app.Groups,
		Games:    app.Games,
		YouTube:  app.YouTube,
	}, app.Logger)

	// Get server address from config
	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)

	readTimeout := DefaultReadTimeout
	if app.Config.Server.ReadTimeout > 0 {
		readTimeout = time.Duration(app.Config.Server.ReadTimeout) * time.Second
	}

	writeTimeout := DefaultWriteTimeout
	if app.Config.Server.WriteTimeout > 0 {
		writeTimeout = time.Duration(app.Config.Server.WriteTimeout) * time.Second
	}

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	// Run the tracking worker inside the server process when enabled
	if app.Config.Tracking.Enabled {
		interval := DefaultTrackingInterval
		if app.Config.Tracking.Interval > 0 {
			interval = time.Duration(app.Config.Tracking.Interval) * time.Second
		}

		worker := tracking.New(app.Groups, app.DB.Model().User(), app.Notifier, interval, app.Logger)
		go worker.Start(workerCtx)
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server started on %s", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down server...")
	stopWorker()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")
}
