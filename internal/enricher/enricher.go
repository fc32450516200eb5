// Package enricher defines the contract every enrichment module satisfies
// to participate in task orchestration, plus the shared scaffolding the
// built-in modules use (HTTP fetch helpers, transient-error classification,
// the startup registry).
package enricher

import (
	"context"
	"time"

	"github.com/playmaker/playmaker-data/internal/schema"
)

// SkipReason explains why a module produced no fields for a team.
type SkipReason string

const (
	SkipAlreadyEnriched SkipReason = "already-enriched"
	SkipNotApplicable   SkipReason = "not-applicable"
)

// Outcome describes what a module wants written for one team. Modules never
// mutate the record they receive; the orchestrator applies Fields so it can
// enforce idempotence and attribute changes for diffing.
type Outcome struct {
	Updated    bool
	Fields     map[string]any // field name -> value, set when Updated
	SkipReason SkipReason     // set when !Updated
}

// Updated builds an Outcome carrying fields to write.
func Updated(fields map[string]any) Outcome {
	return Outcome{Updated: true, Fields: fields}
}

// Skipped builds a no-write Outcome.
func Skipped(reason SkipReason) Outcome {
	return Outcome{SkipReason: reason}
}

// Enricher is one enrichment module. Implementations read the input record
// and external sources only; failures are returned as errors, wrapped in
// TransientError when retryable.
type Enricher interface {
	ID() string
	Name() string
	Description() string
	FieldsAdded() []string
	Available() bool
	EnrichOne(ctx context.Context, team *schema.TeamRecord) (Outcome, error)
}

// PreRunner is an optional hook called once before a module's teams are
// processed, e.g. to bulk-prefetch from a batch API. A PreRun error fails
// the whole module.
type PreRunner interface {
	PreRun(ctx context.Context, teams []schema.TeamRecord) error
}

// PostRunner is an optional hook called once after a module's teams drain,
// for cleanup. Runs even when the module was cancelled mid-flight.
type PostRunner interface {
	PostRun(ctx context.Context, teams []schema.TeamRecord)
}

// Config holds the executor knobs for one module run.
type Config struct {
	MaxConcurrentRequests int           // upper bound on in-flight EnrichOne calls
	RequestDelay          time.Duration // minimum spacing between dispatches, per slot
	MaxRetries            int           // attempts per team, transient failures only
	RetryDelay            time.Duration // backoff base, doubles per attempt
	MaxRetryDelay         time.Duration // backoff cap
	RequestTimeout        time.Duration // per EnrichOne call
}

// DefaultConfig mirrors the defaults the dashboard assumes.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentRequests: 5,
		RequestDelay:          100 * time.Millisecond,
		MaxRetries:            3,
		RetryDelay:            1 * time.Second,
		MaxRetryDelay:         30 * time.Second,
		RequestTimeout:        30 * time.Second,
	}
}

// WithDefaults fills zero-valued knobs from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.MaxConcurrentRequests <= 0 {
		c.MaxConcurrentRequests = d.MaxConcurrentRequests
	}
	if c.RequestDelay <= 0 {
		c.RequestDelay = d.RequestDelay
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = d.RetryDelay
	}
	if c.MaxRetryDelay <= 0 {
		c.MaxRetryDelay = d.MaxRetryDelay
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	return c
}

// Info is the display descriptor for a module.
type Info struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	FieldsAdded []string `json:"fields_added"`
	Available   bool     `json:"available"`
}

// Describe builds the display descriptor for a module.
func Describe(e Enricher) Info {
	return Info{
		ID:          e.ID(),
		Name:        e.Name(),
		Description: e.Description(),
		FieldsAdded: e.FieldsAdded(),
		Available:   e.Available(),
	}
}
