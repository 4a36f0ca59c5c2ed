package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuxkoh/rng-backend/internal/catalog"
	"github.com/tuxkoh/rng-backend/internal/config"
	"github.com/tuxkoh/rng-backend/internal/drop"
	"github.com/tuxkoh/rng-backend/internal/logger"
	"github.com/tuxkoh/rng-backend/internal/metrics"
	"github.com/tuxkoh/rng-backend/internal/server"
)

const watchInterval = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	cad := drop.DefaultCadence()
	if cfg.ItemsPerEvent > 0 {
		cad.ItemsPerEvent = cfg.ItemsPerEvent
	}
	if cfg.SecondsPerEvent > 0 {
		cad.SecondsPerEvent = cfg.SecondsPerEvent
	}

	loader := catalog.NewLoader(cfg.CatalogDir)
	watcher := catalog.NewWatcher(loader, watchInterval, func(path string) {
		metrics.CatalogReloads.Inc()
		slog.Info("Catalog reloaded", "path", path)
	})
	watcher.Start()
	defer watcher.Stop()

	srv := server.New(cfg.Port, loader, cad)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	slog.Info("Listening", "port", cfg.Port, "catalog_dir", cfg.CatalogDir)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
