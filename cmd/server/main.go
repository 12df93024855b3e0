// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

// Command server runs the Pulse recommendation service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crown-social/pulse/internal/api"
	"github.com/crown-social/pulse/internal/cache"
	"github.com/crown-social/pulse/internal/config"
	"github.com/crown-social/pulse/internal/database"
	"github.com/crown-social/pulse/internal/logging"
	"github.com/crown-social/pulse/internal/recommend"
	"github.com/crown-social/pulse/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("cache_dir", cfg.Cache.Dir).
		Int("port", cfg.Server.Port).
		Msg("Starting Pulse")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.SeedMockData {
		seeded, err := db.SeedMockData(context.Background())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
		if seeded > 0 {
			logging.Info().Int("posts", seeded).Msg("Seeded mock data")
		}
	}

	cacheStore, err := cache.Open(cache.Options{
		Dir:      cfg.Cache.Dir,
		InMemory: cfg.Cache.InMemory,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open recommendation cache")
	}
	defer func() {
		if err := cacheStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing cache")
		}
	}()

	store := database.NewBreakerStore(db, logging.Logger())

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logging.Logger(), store, store, cacheStore)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(engine, db, cacheStore)
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRequests: cfg.API.RateLimitRequests,
		RateLimitWindow:   cfg.API.RateLimitWindow,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.Add(supervisor.NewHTTPService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := tree.ServeBackground(ctx)
	logging.Info().Str("addr", server.Addr).Msg("Pulse is serving")

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor exited with error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Fatal().Err(err).Msg("Supervisor exited with error")
		}
	}

	logging.Info().Msg("Pulse stopped")
}
