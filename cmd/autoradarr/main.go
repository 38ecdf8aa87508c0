package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/user/autoradarr/internal/api"
	"github.com/user/autoradarr/internal/config"
	"github.com/user/autoradarr/internal/controllers"
	"github.com/user/autoradarr/internal/models"
	"github.com/user/autoradarr/internal/scheduler"
	"github.com/user/autoradarr/internal/services/imdb"
	"github.com/user/autoradarr/internal/services/radarr"
	"github.com/user/autoradarr/internal/services/tmdb"
	"github.com/user/autoradarr/internal/utils"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "autoradarr",
		Short:        "Scanner that feeds newly released, highly rated films into Radarr",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand())
	root.AddCommand(newServeCommand())
	return root
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one scan and print the number of films submitted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := utils.NewLogger(cfg.LogLevel)

			db, err := models.NewDatabase(cfg.DatabaseFile)
			if err != nil {
				// Store trouble is reported, not propagated as a crash
				logger.WithError(err).Error("Could not open database")
				return nil
			}
			defer db.Close()

			scanCtrl, err := buildScanController(cfg, db, logger)
			if err != nil {
				return err
			}

			count, err := scanCtrl.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daily scan scheduler and the status HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := utils.NewLogger(cfg.LogLevel)
			logger.Info("Starting autoradarr")

			db, err := models.NewDatabase(cfg.DatabaseFile)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()
			logger.Info("Database initialized")

			scanCtrl, err := buildScanController(cfg, db, logger)
			if err != nil {
				return err
			}
			logger.Info("Clients initialized")

			sched := scheduler.NewScheduler(scanCtrl, cfg.ScanCron, logger)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			server := api.NewServer(cfg, db, scanCtrl, logger)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			serverErrChan := make(chan error, 1)
			go func() {
				if err := server.Start(ctx); err != nil {
					serverErrChan <- err
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			logger.Info("Autoradarr is running")

			select {
			case err := <-serverErrChan:
				return fmt.Errorf("server error: %w", err)
			case sig := <-sigChan:
				logger.WithField("signal", sig).Info("Received shutdown signal")
				cancel()
				if err := server.Shutdown(context.Background()); err != nil {
					logger.WithError(err).Error("Error during server shutdown")
				}
			}

			logger.Info("Autoradarr stopped")
			return nil
		},
	}
}

func buildScanController(cfg *config.Config, db *models.Database, logger *logrus.Logger) (*controllers.ScanController, error) {
	imdbClient, err := imdb.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize IMDB client: %w", err)
	}
	radarrClient, err := radarr.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Radarr client: %w", err)
	}
	tmdbClient, err := tmdb.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize TMDB client: %w", err)
	}

	return controllers.NewScanController(db, imdbClient, radarrClient, tmdbClient, cfg, logger), nil
}
