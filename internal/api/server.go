// Package api wires the HTTP surface: router, middleware, and handlers.
package api

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/playmaker/playmaker-data/internal/api/handler"
	"github.com/playmaker/playmaker-data/internal/cache"
	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/dataset"
	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/task"
)

// Deps are the constructed services the router needs.
type Deps struct {
	RunCtx    context.Context
	Registry  *task.Registry
	Runner    *task.Runner
	Store     dataset.Store
	Enrichers *enricher.Registry
	Cache     *cache.Cache
	Config    *config.Config
	Logger    *slog.Logger
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   d.Config.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if d.Config.RateLimitEnabled {
		r.Use(RateLimitMiddleware(d.Config.RateLimitRequests, d.Config.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(d.RunCtx, d.Registry, d.Runner, d.Store, d.Enrichers, d.Cache, d.Config, d.Logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/store", h.HealthCheckStore)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Tasks
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks", h.ListTasks)
		r.Get("/tasks/{taskID}", h.GetTask)
		r.Post("/tasks/{taskID}/cancel", h.CancelTask)
		r.Get("/tasks/{taskID}/diff", h.GetTaskDiff)
		r.Get("/tasks/{taskID}/events", h.TaskEvents)

		// Catalog
		r.Get("/enrichers", h.ListEnrichers)
		r.Get("/schema/fields", h.GetSchemaFields)
		r.Get("/datasets", h.ListDatasets)
		r.Get("/datasets/{datasetID}/teams", h.GetDatasetTeams)
	})

	return r
}
