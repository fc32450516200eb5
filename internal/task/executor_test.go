package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// fakeEnricher is a scriptable module for executor and runner tests.
type fakeEnricher struct {
	id        string
	available bool
	fn        func(ctx context.Context, team *schema.TeamRecord) (enricher.Outcome, error)
}

func (f *fakeEnricher) ID() string            { return f.id }
func (f *fakeEnricher) Name() string          { return "Fake " + f.id }
func (f *fakeEnricher) Description() string   { return "test module" }
func (f *fakeEnricher) FieldsAdded() []string { return []string{"geo_city"} }
func (f *fakeEnricher) Available() bool       { return f.available }
func (f *fakeEnricher) EnrichOne(ctx context.Context, team *schema.TeamRecord) (enricher.Outcome, error) {
	return f.fn(ctx, team)
}

// fakePreEnricher adds a scriptable PreRun hook.
type fakePreEnricher struct {
	fakeEnricher
	preErr  error
	preRuns atomic.Int32
}

func (f *fakePreEnricher) PreRun(ctx context.Context, teams []schema.TeamRecord) error {
	f.preRuns.Add(1)
	return f.preErr
}

func fastConfig() enricher.Config {
	return enricher.Config{
		MaxConcurrentRequests: 2,
		RequestDelay:          time.Millisecond,
		MaxRetries:            3,
		RetryDelay:            time.Millisecond,
		MaxRetryDelay:         4 * time.Millisecond,
		RequestTimeout:        time.Second,
	}
}

func makeTeams(n int) []schema.TeamRecord {
	teams := make([]schema.TeamRecord, n)
	for i := range teams {
		teams[i] = schema.TeamRecord{Name: string(rune('A' + i)), Region: "Austin", League: "NFL"}
	}
	return teams
}

func TestRunTeamsProcessesEveryTeam(t *testing.T) {
	teams := makeTeams(7)
	mod := &fakeEnricher{
		id: "geo", available: true,
		fn: func(_ context.Context, _ *schema.TeamRecord) (enricher.Outcome, error) {
			return enricher.Updated(map[string]any{"geo_city": "Austin"}), nil
		},
	}

	seen := make(map[int]int)
	dispatched := runTeams(context.Background(), mod, teams, fastConfig(),
		func() bool { return false },
		func(res teamResult) { seen[res.index]++ })

	if dispatched != len(teams) {
		t.Fatalf("dispatched = %d, want %d", dispatched, len(teams))
	}
	if len(seen) != len(teams) {
		t.Fatalf("results for %d teams, want %d", len(seen), len(teams))
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("team %d produced %d results, want 1", idx, n)
		}
	}
}

func TestRunTeamsRespectsConcurrencyBound(t *testing.T) {
	var inFlight, peak atomic.Int32
	mod := &fakeEnricher{
		id: "geo", available: true,
		fn: func(_ context.Context, _ *schema.TeamRecord) (enricher.Outcome, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return enricher.Skipped(enricher.SkipNotApplicable), nil
		},
	}

	runTeams(context.Background(), mod, makeTeams(10), fastConfig(),
		func() bool { return false },
		func(teamResult) {})

	if p := peak.Load(); p > 2 {
		t.Fatalf("peak in-flight calls = %d, want <= 2", p)
	}
}

func TestRunTeamsCancellationStopsDispatch(t *testing.T) {
	var processed atomic.Int32
	mod := &fakeEnricher{
		id: "geo", available: true,
		fn: func(_ context.Context, _ *schema.TeamRecord) (enricher.Outcome, error) {
			time.Sleep(2 * time.Millisecond)
			return enricher.Skipped(enricher.SkipNotApplicable), nil
		},
	}

	results := 0
	dispatched := runTeams(context.Background(), mod, makeTeams(20), fastConfig(),
		func() bool { return processed.Load() >= 3 },
		func(teamResult) {
			processed.Add(1)
			results++
		})

	if dispatched >= 20 {
		t.Fatalf("dispatched = %d, want fewer than the full dataset", dispatched)
	}
	// Every dispatched team still drains to a result.
	if results != dispatched {
		t.Fatalf("results = %d, dispatched = %d; in-flight work must drain", results, dispatched)
	}
}

func TestEnrichWithRetryTransientThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	mod := &fakeEnricher{
		id: "geo", available: true,
		fn: func(_ context.Context, _ *schema.TeamRecord) (enricher.Outcome, error) {
			if attempts.Add(1) < 3 {
				return enricher.Outcome{}, enricher.Transientf("upstream 503")
			}
			return enricher.Updated(map[string]any{"geo_city": "Austin"}), nil
		},
	}

	team := schema.TeamRecord{Name: "A", League: "NFL"}
	outcome, err := enrichWithRetry(context.Background(), mod, &team, fastConfig())
	if err != nil {
		t.Fatalf("enrichWithRetry: %v", err)
	}
	if !outcome.Updated {
		t.Fatal("outcome.Updated = false, want true")
	}
	if got := attempts.Load(); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}

func TestEnrichWithRetryTerminalErrorDoesNotRetry(t *testing.T) {
	var attempts atomic.Int32
	terminal := errors.New("404 not found")
	mod := &fakeEnricher{
		id: "geo", available: true,
		fn: func(_ context.Context, _ *schema.TeamRecord) (enricher.Outcome, error) {
			attempts.Add(1)
			return enricher.Outcome{}, terminal
		},
	}

	team := schema.TeamRecord{Name: "A", League: "NFL"}
	_, err := enrichWithRetry(context.Background(), mod, &team, fastConfig())
	if !errors.Is(err, terminal) {
		t.Fatalf("err = %v, want the terminal error", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
}

func TestEnrichWithRetryExhaustsTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	mod := &fakeEnricher{
		id: "geo", available: true,
		fn: func(_ context.Context, _ *schema.TeamRecord) (enricher.Outcome, error) {
			attempts.Add(1)
			return enricher.Outcome{}, enricher.Transientf("still down")
		},
	}

	cfg := fastConfig()
	team := schema.TeamRecord{Name: "A", League: "NFL"}
	_, err := enrichWithRetry(context.Background(), mod, &team, cfg)
	if err == nil {
		t.Fatal("err = nil, want exhaustion error")
	}
	if got := attempts.Load(); got != int32(cfg.MaxRetries) {
		t.Fatalf("attempts = %d, want %d", got, cfg.MaxRetries)
	}
}

func TestBackoffDelaysDoubleAndCap(t *testing.T) {
	cfg := enricher.Config{
		MaxConcurrentRequests: 1,
		RequestDelay:          time.Millisecond,
		MaxRetries:            5,
		RetryDelay:            time.Second,
		MaxRetryDelay:         4 * time.Second,
		RequestTimeout:        time.Second,
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 4 * time.Second}
	got := backoffDelays(cfg)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
