package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playmaker/playmaker-data/internal/dataset"
	"github.com/playmaker/playmaker-data/internal/diff"
	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// Runner executes enrichment tasks: it snapshots the dataset, drives each
// selected module sequentially through the rate-limited executor, applies
// writes, and finishes with a diff against the snapshot. One Run call
// handles one task; distinct tasks run concurrently on their own Run calls.
type Runner struct {
	store     dataset.Store
	enrichers *enricher.Registry
	registry  *Registry
	cfg       enricher.Config
	logger    *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(store dataset.Store, enrichers *enricher.Registry, registry *Registry, cfg enricher.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:     store,
		enrichers: enrichers,
		registry:  registry,
		cfg:       cfg.WithDefaults(),
		logger:    logger,
	}
}

// Run executes the task to a terminal state. Blocks; intended to be called
// with `go` after Registry.Create.
func (r *Runner) Run(ctx context.Context, taskID string) {
	t, ok := r.registry.Get(taskID)
	if !ok {
		r.logger.Error("Run called for unknown task", "task_id", taskID)
		return
	}
	logger := r.logger.With("task_id", taskID, "dataset", t.DatasetID)

	if r.registry.CancelRequested(taskID) {
		r.finish(taskID, StatusCancelled, "")
		logger.Info("Task cancelled before start")
		return
	}

	// Read and snapshot the dataset. Failure here is task-level: nothing
	// has run, nothing can be diffed.
	records, err := r.store.GetRecords(ctx, t.DatasetID)
	if err != nil {
		r.finish(taskID, StatusFailed, fmt.Sprintf("read dataset: %v", err))
		logger.Error("Task failed reading dataset", "error", err)
		return
	}
	snapshot, err := diff.Snapshot(records)
	if err != nil {
		r.finish(taskID, StatusFailed, fmt.Sprintf("snapshot dataset: %v", err))
		logger.Error("Task failed snapshotting dataset", "error", err)
		return
	}

	now := time.Now().UTC()
	_ = r.registry.Update(taskID, func(t *Task) {
		t.Status = StatusRunning
		t.StartedAt = &now
		t.TeamsTotal = len(records)
		for _, p := range t.Progress {
			p.TeamsTotal = len(records)
		}
	})
	logger.Info("Task started", "teams", len(records), "enrichers", t.EnricherIDs)

	// Modules run strictly one at a time, in request order: their sources
	// often share rate ceilings, so sequential execution keeps total
	// outbound load per dataset predictable.
	for _, enricherID := range t.EnricherIDs {
		if r.registry.CancelRequested(taskID) {
			break
		}
		r.runModule(ctx, taskID, t.DatasetID, enricherID, t.ForceRefresh, records, logger)
	}

	final := StatusCompleted
	if r.registry.CancelRequested(taskID) {
		final = StatusCancelled
	}

	// Diff what actually landed, including a partial run that was
	// cancelled. Only a diff with changes is retained.
	d := diff.Compute(snapshot, records, time.Now())
	hasDiff := d.TeamsChanged > 0
	if hasDiff {
		r.registry.SetDiff(taskID, d)
	}
	completed := time.Now().UTC()
	_ = r.registry.Update(taskID, func(t *Task) {
		t.Status = final
		t.CompletedAt = &completed
		t.HasDiff = hasDiff
	})
	logger.Info("Task finished",
		"status", final,
		"teams_changed", d.TeamsChanged,
		"fields_added", d.TotalFieldsAdded,
		"fields_modified", d.TotalFieldsModified)
}

// runModule drives one module over the dataset and settles its progress.
func (r *Runner) runModule(ctx context.Context, taskID, datasetID, enricherID string, force bool, records []schema.TeamRecord, logger *slog.Logger) {
	logger = logger.With("enricher", enricherID)
	started := time.Now().UTC()

	mod, ok := r.enrichers.Get(enricherID)
	if !ok {
		r.failModule(taskID, enricherID, started, fmt.Sprintf("unknown enricher %q", enricherID))
		return
	}
	if !mod.Available() {
		r.failModule(taskID, enricherID, started, fmt.Sprintf("enricher %q is not available (missing configuration)", enricherID))
		return
	}

	_ = r.registry.Update(taskID, func(t *Task) {
		p := t.Progress[enricherID]
		p.Status = StatusRunning
		p.StartedAt = &started
	})

	if pre, ok := mod.(enricher.PreRunner); ok {
		if err := pre.PreRun(ctx, records); err != nil {
			r.failModule(taskID, enricherID, started, fmt.Sprintf("pre-run: %v", err))
			logger.Error("Module pre-run failed", "error", err)
			return
		}
	}

	dispatched := runTeams(ctx, mod, records, r.cfg, func() bool {
		return r.registry.CancelRequested(taskID)
	}, func(res teamResult) {
		r.applyResult(ctx, taskID, datasetID, enricherID, force, records, res, logger)
	})

	if post, ok := mod.(enricher.PostRunner); ok {
		post.PostRun(ctx, records)
	}

	// A cancellation that lands any time before the module settles marks it
	// cancelled, even when it arrived while the final in-flight calls were
	// draining and every team ended up dispatched.
	status := StatusCompleted
	if r.registry.CancelRequested(taskID) {
		status = StatusCancelled
	}
	completed := time.Now().UTC()
	_ = r.registry.Update(taskID, func(t *Task) {
		p := t.Progress[enricherID]
		p.Status = status
		p.CompletedAt = &completed
		p.DurationMS = completed.Sub(started).Milliseconds()
	})
	logger.Info("Module finished", "status", status, "dispatched", dispatched, "duration", completed.Sub(started).Round(time.Millisecond))
}

// applyResult folds one team's outcome into the shared records and the
// task's progress. Runs serially per module (executor contract), which is
// what serializes the actual record mutation.
func (r *Runner) applyResult(ctx context.Context, taskID, datasetID, enricherID string, force bool, records []schema.TeamRecord, res teamResult, logger *slog.Logger) {
	team := &records[res.index]
	enriched := false
	var teamErr string

	switch {
	case res.err != nil:
		teamErr = fmt.Sprintf("%s: %v", team.Name, res.err)
		logger.Warn("Team enrichment failed", "team", team.Name, "error", res.err)
	case res.outcome.Updated:
		fields := r.applicableFields(team, res.outcome.Fields, force)
		if len(fields) > 0 {
			if err := r.applyFields(ctx, datasetID, res.index, team, enricherID, fields); err != nil {
				teamErr = fmt.Sprintf("%s: %v", team.Name, err)
				logger.Warn("Team write failed", "team", team.Name, "error", err)
			} else {
				enriched = true
			}
		}
	}

	_ = r.registry.Update(taskID, func(t *Task) {
		p := t.Progress[enricherID]
		p.TeamsProcessed++
		if enriched {
			p.TeamsEnriched++
			t.TeamsEnriched++
		}
		if teamErr != "" {
			p.AddTeamError(teamErr)
		}
	})
}

// applicableFields filters a module's outcome down to recognized fields
// that are currently absent. Non-null data is never overwritten unless the
// task was created with force-refresh; nil values are dropped so modules
// cannot clear fields.
func (r *Runner) applicableFields(team *schema.TeamRecord, fields map[string]any, force bool) map[string]any {
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		if value == nil || !schema.IsEnrichmentField(name) {
			continue
		}
		if !force && schema.Value(team, name) != nil {
			continue
		}
		out[name] = value
	}
	return out
}

// applyFields persists the fields to the store first, then mirrors them
// into the working copy used for diffing. A store failure leaves both
// untouched.
func (r *Runner) applyFields(ctx context.Context, datasetID string, teamIndex int, team *schema.TeamRecord, enricherID string, fields map[string]any) error {
	now := time.Now().UTC()
	applied := team.EnrichmentsApplied
	found := false
	for _, id := range applied {
		if id == enricherID {
			found = true
			break
		}
	}
	if !found {
		applied = append(append([]string(nil), applied...), enricherID)
	}

	patch := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		patch[k] = v
	}
	patch["enrichments_applied"] = applied
	patch["last_enriched"] = now.Format(time.RFC3339)

	if err := r.store.ReplaceFields(ctx, datasetID, teamIndex, patch); err != nil {
		return err
	}

	for name, value := range fields {
		if err := schema.SetField(team, name, value); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	team.ApplyEnrichment(enricherID, now)
	return nil
}

// failModule settles a module that never processed teams: unknown id,
// unavailable, or a pre-run error.
func (r *Runner) failModule(taskID, enricherID string, started time.Time, msg string) {
	completed := time.Now().UTC()
	_ = r.registry.Update(taskID, func(t *Task) {
		p := t.Progress[enricherID]
		p.Status = StatusFailed
		p.Error = msg
		p.StartedAt = &started
		p.CompletedAt = &completed
		p.DurationMS = completed.Sub(started).Milliseconds()
	})
}

// finish settles a task that never ran any module.
func (r *Runner) finish(taskID string, status Status, errMsg string) {
	completed := time.Now().UTC()
	_ = r.registry.Update(taskID, func(t *Task) {
		t.Status = status
		t.Error = errMsg
		t.CompletedAt = &completed
	})
}
