package task

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// teamResult is one team's terminal outcome within a module run.
type teamResult struct {
	index   int
	outcome enricher.Outcome
	err     error
}

// runTeams drives EnrichOne across the dataset for one module under the
// configured concurrency bound and dispatch delay. onResult is invoked from
// the caller's goroutine, one result at a time, so the caller can apply
// writes and progress deltas without further locking.
//
// cancelled is consulted before every dispatch; once it reports true no new
// work starts, but in-flight calls drain normally. The returned count is
// the number of teams actually dispatched.
func runTeams(
	ctx context.Context,
	mod enricher.Enricher,
	teams []schema.TeamRecord,
	cfg enricher.Config,
	cancelled func() bool,
	onResult func(teamResult),
) int {
	cfg = cfg.WithDefaults()

	workers := cfg.MaxConcurrentRequests
	if workers > len(teams) {
		workers = len(teams)
	}
	if workers < 1 {
		workers = 1
	}

	work := make(chan int)
	results := make(chan teamResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each concurrency slot paces its own dispatches.
			limiter := rate.NewLimiter(rate.Every(cfg.RequestDelay), 1)
			for idx := range work {
				if err := limiter.Wait(ctx); err != nil {
					results <- teamResult{index: idx, err: err}
					continue
				}
				outcome, err := enrichWithRetry(ctx, mod, &teams[idx], cfg)
				results <- teamResult{index: idx, outcome: outcome, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// Feed and consume from the caller's goroutine: dispatch while slots
	// are free, fold results as they land.
	dispatched := 0
	pending := 0
	next := 0
feed:
	for next < len(teams) {
		if cancelled() || ctx.Err() != nil {
			break feed
		}
		select {
		case work <- next:
			next++
			dispatched++
			pending++
		case res := <-results:
			pending--
			onResult(res)
		}
	}
	close(work)
	for pending > 0 {
		res := <-results
		pending--
		onResult(res)
	}

	return dispatched
}

// enrichWithRetry runs one per-team call with a bounded timeout, retrying
// transient failures with exponential backoff (doubling, capped).
func enrichWithRetry(ctx context.Context, mod enricher.Enricher, team *schema.TeamRecord, cfg enricher.Config) (enricher.Outcome, error) {
	delay := cfg.RetryDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		outcome, err := mod.EnrichOne(callCtx, team)
		cancel()
		if err == nil {
			return outcome, nil
		}
		lastErr = err
		if !enricher.IsTransient(err) || attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return enricher.Outcome{}, ctx.Err()
		}
		delay *= 2
		if delay > cfg.MaxRetryDelay {
			delay = cfg.MaxRetryDelay
		}
	}
	return enricher.Outcome{}, lastErr
}

// backoffDelays returns the wait applied before each retry for a config,
// primarily for observability and tests of the retry policy.
func backoffDelays(cfg enricher.Config) []time.Duration {
	cfg = cfg.WithDefaults()
	delays := make([]time.Duration, 0, cfg.MaxRetries-1)
	d := cfg.RetryDelay
	for i := 1; i < cfg.MaxRetries; i++ {
		delays = append(delays, d)
		d *= 2
		if d > cfg.MaxRetryDelay {
			d = cfg.MaxRetryDelay
		}
	}
	return delays
}
