package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	leaderboardservice "github.com/facematch/leaderboard/app/leaderboard/application"
	scoreboardhandlers "github.com/facematch/leaderboard/app/leaderboard/infrastructure/handlers"
	"github.com/facematch/leaderboard/app/leaderboard/infrastructure/sheetstore"
	"github.com/facematch/leaderboard/config"
	"github.com/facematch/leaderboard/db/bundb"
	"github.com/facematch/leaderboard/internal/observability"
)

func main() {
	app := &cli.App{
		Name:  "leaderboard-server",
		Usage: "runs the score ranking service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, c.String("config"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, configFile string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	registry := prometheus.NewRegistry()
	metrics := observability.NewServiceMetrics(registry)

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	service := leaderboardservice.NewScoreboardService(store, logger, metrics)
	handler := scoreboardhandlers.NewScoreboardHandler(service, logger)

	router := scoreboardhandlers.SetupRoutes(handler, scoreboardhandlers.RouterConfig{
		AllowedOrigins:      cfg.HTTP.AllowedOrigins,
		SubmitRatePerSecond: cfg.HTTP.SubmitRatePerSecond,
		SubmitBurst:         cfg.HTTP.SubmitBurst,
	})

	srv := &http.Server{Addr: cfg.HTTP.Address, Handler: router}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("listening", "address", cfg.HTTP.Address, "backend", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var metricsSrv *http.Server
	if cfg.Observability.MetricsAddress != "" {
		metricsSrv = &http.Server{
			Addr:    cfg.Observability.MetricsAddress,
			Handler: observability.MetricsHandler(registry),
		}
		go func() {
			logger.Info("metrics listening", "address", cfg.Observability.MetricsAddress)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-interrupt:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("server failed", "error", err)
	case <-ctx.Done():
		logger.Info("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", "error", err)
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down metrics server", "error", err)
		}
	}
	return nil
}

// buildStore constructs the configured ranking store backend. The returned
// cleanup releases whatever the backend holds open.
func buildStore(ctx context.Context, cfg *config.Config) (leaderboardservice.ScoreStore, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		cleanup := func() { _ = dbService.GetDB().Close() }
		return dbService.ScoreboardDB, cleanup, nil
	case config.BackendSheet:
		return sheetstore.New(cfg.Sheet.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
