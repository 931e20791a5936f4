package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"innovation_showcase/internal/handlers"
	"innovation_showcase/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	log := a.log

	if a.cfg.Seed.SampleProject {
		seeded, err := a.services.SeedSample(context.Background())
		if err != nil {
			log.Errorw("failed to seed sample project", "err", err)
		} else if seeded {
			log.Infow("seeded sample project")
		}
	}

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.services.Stats.Run(ctx, a.cfg.Stats.Interval)

	apiHandler := handlers.NewHandler(a.services, log)
	srv := &server.Server{}
	go func() {
		log.Infow("http server listening", "port", a.cfg.Server.Port)
		if err := srv.Run(a.cfg.Server, apiHandler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(cancel, srv, a)
	return nil
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, a *app) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.log.Errorw("server forced to shutdown", "err", err)
	}
}
