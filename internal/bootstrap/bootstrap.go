// Package bootstrap builds the dataset store and the enrichment module
// registry from configuration. Shared by the API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/dataset"
	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/enricher/brand"
	"github.com/playmaker/playmaker-data/internal/enricher/geo"
	"github.com/playmaker/playmaker-data/internal/enricher/social"
	"github.com/playmaker/playmaker-data/internal/enricher/sponsor"
	"github.com/playmaker/playmaker-data/internal/enricher/valuation"
	"github.com/playmaker/playmaker-data/internal/enricher/website"
	"github.com/playmaker/playmaker-data/internal/enricher/wikidata"
)

// NewStore opens the Postgres store when DATABASE_URL is set, otherwise an
// in-memory store seeded from the data directory.
func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (dataset.Store, func(), error) {
	if cfg.UsePostgres() {
		pg, err := dataset.NewPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("dataset store ready", "backend", "postgres")
		return pg, pg.Close, nil
	}

	mem := dataset.NewMemory()
	if err := mem.LoadDir(cfg.DataDir, config.DatasetIDs()); err != nil {
		return nil, nil, fmt.Errorf("load datasets from %s: %w", cfg.DataDir, err)
	}
	logger.Info("dataset store ready", "backend", "memory", "data_dir", cfg.DataDir)
	return mem, func() {}, nil
}

// NewEnrichers builds the module registry. The social and sponsor modules
// share one WikiData client so a combined run queries each league once.
func NewEnrichers(cfg *config.Config) *enricher.Registry {
	wd := wikidata.New(cfg.RequestTimeout)

	return enricher.NewRegistry(
		geo.New(cfg.DataCommonsAPIKey, cfg.RequestTimeout),
		social.New(social.Keys{
			XBearerToken: cfg.XBearerToken,
			YouTubeKey:   cfg.YouTubeAPIKey,
			MetaToken:    cfg.MetaAccessToken,
		}, wd, cfg.RequestTimeout),
		website.New(cfg.RequestTimeout),
		sponsor.New(wd),
		valuation.New(cfg.RequestTimeout),
		brand.New(cfg.GeminiAPIKey, cfg.RequestTimeout),
	)
}

// EnricherConfig maps app configuration to executor settings.
func EnricherConfig(cfg *config.Config) enricher.Config {
	return enricher.Config{
		MaxConcurrentRequests: cfg.MaxConcurrentRequests,
		RequestDelay:          cfg.RequestDelay,
		MaxRetries:            cfg.MaxRetries,
		RetryDelay:            cfg.RetryDelay,
		RequestTimeout:        cfg.RequestTimeout,
	}.WithDefaults()
}
