// Package handler provides HTTP handlers for all API endpoints. Task
// handlers operate on the in-memory registry; dataset handlers read
// through the store with caching and ETags.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/playmaker/playmaker-data/internal/api/respond"
	"github.com/playmaker/playmaker-data/internal/cache"
	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/dataset"
	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/task"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	registry  *task.Registry
	runner    *task.Runner
	store     dataset.Store
	enrichers *enricher.Registry
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger

	// runCtx outlives individual requests; task runs are bound to it so
	// they survive the request that started them.
	runCtx context.Context
}

// New creates a Handler with shared dependencies.
func New(runCtx context.Context, reg *task.Registry, runner *task.Runner, store dataset.Store, enrichers *enricher.Registry, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		registry:  reg,
		runner:    runner,
		store:     store,
		enrichers: enrichers,
		cache:     c,
		cfg:       cfg,
		logger:    logger,
		runCtx:    runCtx,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Playmaker Enrichment API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckStore verifies the dataset store is reachable.
// @Summary Store health check
// @Description Verifies dataset store connectivity by counting one dataset.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/store [get]
func (h *Handler) HealthCheckStore(w http.ResponseWriter, r *http.Request) {
	ids := config.DatasetIDs()
	if len(ids) > 0 {
		if _, err := h.store.CountRecords(r.Context(), ids[0]); err != nil {
			respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":    "unhealthy",
				"store":     "disconnected",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"store":     "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
