// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/enrich.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Dataset registry — one entry per scraped team dataset
// --------------------------------------------------------------------------

type DatasetConfig struct {
	ID          string
	Name        string
	Description string
}

var DatasetRegistry = map[string]DatasetConfig{
	"mlb_milb": {
		ID:          "mlb_milb",
		Name:        "MLB & MiLB Teams",
		Description: "MLB and affiliated minor league teams from MLB StatsAPI.",
	},
	"nba_gleague": {
		ID:          "nba_gleague",
		Name:        "NBA & G League Teams",
		Description: "Teams from NBA.com and G League official directories.",
	},
	"nfl": {
		ID:          "nfl",
		Name:        "NFL Teams",
		Description: "32 NFL teams from the NFL.com official directory.",
	},
	"nhl_ahl_echl": {
		ID:          "nhl_ahl_echl",
		Name:        "NHL, AHL & ECHL Teams",
		Description: "Teams from NHL.com, TheAHL.com, and ECHL.com directories.",
	},
}

// DatasetIDs returns all registered dataset ids in stable order.
func DatasetIDs() []string {
	return []string{"mlb_milb", "nba_gleague", "nfl", "nhl_ahl_echl"}
}

// TeamRecordsTable is the Postgres table holding team records per dataset.
const TeamRecordsTable = "team_records"

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database (optional — the in-memory store is used when unset)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Local data directory for JSON-seeded datasets
	DataDir string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// API rate limiting (inbound, per client IP)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Enrichment executor defaults (outbound, per module)
	MaxConcurrentRequests int
	RequestDelay          time.Duration
	MaxRetries            int
	RetryDelay            time.Duration
	RequestTimeout        time.Duration

	// Task registry retention
	TaskRetention     time.Duration
	TaskPruneInterval time.Duration

	// External API keys (enricher-specific; empty keys gate availability)
	DataCommonsAPIKey string
	XBearerToken      string
	YouTubeAPIKey     string
	MetaAccessToken   string
	GeminiAPIKey      string

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		DataDir: envOr("DATA_DIR", "data"),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:5174",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		MaxConcurrentRequests: envInt("ENRICH_MAX_CONCURRENT_REQUESTS", 5),
		RequestDelay:          time.Duration(envInt("ENRICH_REQUEST_DELAY_MS", 100)) * time.Millisecond,
		MaxRetries:            envInt("ENRICH_MAX_RETRIES", 3),
		RetryDelay:            time.Duration(envInt("ENRICH_RETRY_DELAY_MS", 1000)) * time.Millisecond,
		RequestTimeout:        time.Duration(envInt("ENRICH_REQUEST_TIMEOUT_S", 30)) * time.Second,

		TaskRetention:     time.Duration(envInt("TASK_RETENTION_HOURS", 24)) * time.Hour,
		TaskPruneInterval: time.Duration(envInt("TASK_PRUNE_INTERVAL_MINUTES", 30)) * time.Minute,

		DataCommonsAPIKey: envOr("DATA_COMMONS_API_KEY", ""),
		XBearerToken:      envOr("X_API_BEARER_TOKEN", ""),
		YouTubeAPIKey:     envOr("YOUTUBE_API_KEY", ""),
		MetaAccessToken:   envOr("META_ACCESS_TOKEN", ""),
		GeminiAPIKey:      envOr("GEMINI_API_KEY", ""),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsePostgres reports whether a Postgres-backed dataset store is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
