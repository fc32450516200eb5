// Package task implements the enrichment task orchestration engine: the
// task state machine, the rate-limited executor, the runner that drives
// modules over a dataset, and the registry that owns tasks and publishes
// progress to subscribers.
package task

import "time"

// Status is a task or per-module lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transitions can occur.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// maxTeamErrors caps the per-team failure sample kept on a module's
// progress. Counters stay exact; only the message sample is bounded.
const maxTeamErrors = 10

// ModuleProgress tracks one module's advancement within a task.
type ModuleProgress struct {
	Status         Status     `json:"status"`
	TeamsProcessed int        `json:"teams_processed"`
	TeamsEnriched  int        `json:"teams_enriched"`
	TeamsFailed    int        `json:"teams_failed"`
	TeamsTotal     int        `json:"teams_total"`
	Error          string     `json:"error,omitempty"`
	TeamErrors     []string   `json:"team_errors,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	DurationMS     int64      `json:"duration_ms"`
}

// AddTeamError records one per-team terminal failure.
func (p *ModuleProgress) AddTeamError(msg string) {
	p.TeamsFailed++
	if len(p.TeamErrors) < maxTeamErrors {
		p.TeamErrors = append(p.TeamErrors, msg)
	}
}

// Task is one orchestrated enrichment run over one dataset. Tasks are owned
// by the Registry for their lifetime; all mutation goes through the
// registry's update path so subscriber snapshots stay consistent.
type Task struct {
	ID            string                     `json:"id"`
	DatasetID     string                     `json:"dataset_id"`
	EnricherIDs   []string                   `json:"enricher_ids"`
	ForceRefresh  bool                       `json:"force_refresh,omitempty"`
	Status        Status                     `json:"status"`
	Progress      map[string]*ModuleProgress `json:"progress"`
	TeamsTotal    int                        `json:"teams_total"`
	TeamsEnriched int                        `json:"teams_enriched"`
	CreatedAt     time.Time                  `json:"created_at"`
	StartedAt     *time.Time                 `json:"started_at,omitempty"`
	CompletedAt   *time.Time                 `json:"completed_at,omitempty"`
	Error         string                     `json:"error,omitempty"`
	HasDiff       bool                       `json:"has_diff"`
}

// Clone deep-copies a task so published snapshots are immune to later
// registry-side mutation.
func (t *Task) Clone() *Task {
	out := *t
	out.EnricherIDs = append([]string(nil), t.EnricherIDs...)
	out.Progress = make(map[string]*ModuleProgress, len(t.Progress))
	for id, p := range t.Progress {
		cp := *p
		cp.TeamErrors = append([]string(nil), p.TeamErrors...)
		out.Progress[id] = &cp
	}
	if t.StartedAt != nil {
		v := *t.StartedAt
		out.StartedAt = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		out.CompletedAt = &v
	}
	return &out
}
