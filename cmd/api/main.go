// Command api is the Playmaker Enrichment API server.
//
// Usage:
//
//	playmaker-api
//	API_PORT=8080 playmaker-api

// @title Playmaker Enrichment API
// @version 1.0.0
// @description Task orchestration API for enriching sports team datasets: geographic, social, website, sponsor, valuation, and brand modules with per-module progress tracking and before/after diffs.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Playmaker
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/playmaker/playmaker-data/internal/api"
	"github.com/playmaker/playmaker-data/internal/bootstrap"
	"github.com/playmaker/playmaker-data/internal/cache"
	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/task"

	_ "github.com/playmaker/playmaker-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Dataset store
	store, closeStore, err := bootstrap.NewStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open dataset store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Enrichment modules
	enrichers := bootstrap.NewEnrichers(cfg)
	logger.Info("Enrichers registered", "ids", enrichers.IDs())

	// Task registry, runner, and pruner
	registry := task.NewRegistry(logger)
	runner := task.NewRunner(store, enrichers, registry, bootstrap.EnricherConfig(cfg), logger)
	go registry.StartPruner(ctx, cfg.TaskPruneInterval, cfg.TaskRetention)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(api.Deps{
		RunCtx:    ctx,
		Registry:  registry,
		Runner:    runner,
		Store:     store,
		Enrichers: enrichers,
		Cache:     appCache,
		Config:    cfg,
		Logger:    logger,
	})

	// Create HTTP server. No write timeout: task event streams are
	// long-lived SSE responses.
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Playmaker Enrichment API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
