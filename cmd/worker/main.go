package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swarmlabs/hivehub/internal/setup"
	"github.com/swarmlabs/hivehub/internal/worker/tracking"
	"github.com/urfave/cli/v3"
)

// TrackingWorker polls the Roblox group and delivers growth notifications.
const TrackingWorker = "tracking"

const defaultInterval = time.Minute

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "worker",
		Usage: "Start a hivehub worker",
		Commands: []*cli.Command{
			{
				Name:  TrackingWorker,
				Usage: "Start the group tracking worker",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Value:   0,
						Usage:   "Poll interval (overrides config)",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runTrackingWorker(ctx, c.Duration("interval"))
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// runTrackingWorker starts the tracking worker and blocks until interrupted.
func runTrackingWorker(ctx context.Context, interval time.Duration) error {
	app, err := setup.InitializeApp(ctx)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	if interval <= 0 {
		interval = defaultInterval
		if app.Config.Tracking.Interval > 0 {
			interval = time.Duration(app.Config.Tracking.Interval) * time.Second
		}
	}

	workerCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	worker := tracking.New(app.Groups, app.DB.Model().User(), app.Notifier, interval, app.Logger)
	worker.Start(workerCtx)

	return nil
}
