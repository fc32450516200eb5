package task

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/playmaker/playmaker-data/internal/diff"
)

// ErrNotFound is returned for unknown task ids.
var ErrNotFound = errors.New("task not found")

// subscriberBuffer bounds the per-subscriber update queue. A subscriber
// that falls this far behind is dropped with a transport error rather than
// blocking the orchestrator.
const subscriberBuffer = 64

// Subscription delivers full task snapshots on every state or progress
// change until the task reaches a terminal state, after which Updates is
// closed. Errors reports transport-level failures (slow consumer), distinct
// from task-level errors which travel on the snapshots themselves.
type Subscription struct {
	Updates <-chan *Task
	Errors  <-chan error

	registry *Registry
	taskID   string
	sub      *subscriber
}

// Close detaches the subscription so no further snapshots are delivered.
// The channels are left to the garbage collector; only the publish path
// ever closes them, which keeps sends and closes serialized.
func (s *Subscription) Close() {
	s.registry.unsubscribe(s.taskID, s.sub)
}

type subscriber struct {
	updates chan *Task
	errs    chan error
}

// Registry exclusively owns all tasks, active and historical, plus their
// diffs and cancellation flags. It is the single mutation path: the runner
// updates tasks through Update, which publishes a consistent snapshot to
// subscribers under the same lock.
type Registry struct {
	logger *slog.Logger

	mu      sync.Mutex
	tasks   map[string]*Task
	order   []string // creation order, oldest first
	cancels map[string]*atomic.Bool
	subs    map[string][]*subscriber
	diffs   map[string]*diff.Diff
}

// NewRegistry creates an empty task registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		tasks:   make(map[string]*Task),
		cancels: make(map[string]*atomic.Bool),
		subs:    make(map[string][]*subscriber),
		diffs:   make(map[string]*diff.Diff),
	}
}

// Create registers a new pending task and returns its snapshot.
func (r *Registry) Create(datasetID string, enricherIDs []string, forceRefresh bool) *Task {
	t := &Task{
		ID:           uuid.NewString(),
		DatasetID:    datasetID,
		EnricherIDs:  append([]string(nil), enricherIDs...),
		ForceRefresh: forceRefresh,
		Status:       StatusPending,
		Progress:     make(map[string]*ModuleProgress, len(enricherIDs)),
		CreatedAt:    time.Now().UTC(),
	}
	for _, id := range enricherIDs {
		t.Progress[id] = &ModuleProgress{Status: StatusPending}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	r.cancels[t.ID] = &atomic.Bool{}
	return t.Clone()
}

// Get returns a snapshot of one task.
func (r *Registry) Get(id string) (*Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// List returns snapshots of all tasks, newest first, plus the number of
// tasks still pending or running.
func (r *Registry) List() (tasks []*Task, activeCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tasks = make([]*Task, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.tasks[r.order[i]]
		if !t.Status.Terminal() {
			activeCount++
		}
		tasks = append(tasks, t.Clone())
	}
	return tasks, activeCount
}

// Cancel requests best-effort cancellation. No-op when the task is already
// terminal. Returns false for unknown ids.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return false
	}
	if t.Status.Terminal() {
		return true
	}
	r.cancels[id].Store(true)
	r.logger.Info("Task cancellation requested", "task_id", id, "status", t.Status)
	return true
}

// CancelRequested reports whether cancellation was requested for a task.
// Checked by the executor between dispatches and by the runner between
// modules; in-flight per-team calls are never torn down.
func (r *Registry) CancelRequested(id string) bool {
	r.mu.Lock()
	flag, ok := r.cancels[id]
	r.mu.Unlock()
	return ok && flag.Load()
}

// Update mutates a task under the registry lock and publishes the resulting
// snapshot to subscribers. When the mutation makes the task terminal, every
// subscription is completed and closed after the final snapshot.
func (r *Registry) Update(id string, fn func(*Task)) error {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	fn(t)
	snapshot := t.Clone()
	subs := append([]*subscriber(nil), r.subs[id]...)
	terminal := t.Status.Terminal()
	if terminal {
		delete(r.subs, id)
	}
	r.mu.Unlock()

	// All publishes for one task come from its single runner goroutine, so
	// this path is the only closer of subscriber channels.
	for _, s := range subs {
		select {
		case s.updates <- snapshot:
		default:
			// Slow consumer: report on the error channel and drop it.
			select {
			case s.errs <- errors.New("subscriber lagging, dropping subscription"):
			default:
			}
			r.unsubscribe(id, s)
			close(s.updates)
			close(s.errs)
			continue
		}
		if terminal {
			close(s.updates)
			close(s.errs)
		}
	}
	return nil
}

// SetDiff attaches the computed diff for a task.
func (r *Registry) SetDiff(id string, d *diff.Diff) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; ok {
		r.diffs[id] = d
	}
}

// Diff returns the task's diff when one was computed and retained.
func (r *Registry) Diff(id string) (*diff.Diff, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.diffs[id]
	return d, ok
}

// Subscribe attaches to a task's update stream. The current snapshot is
// delivered immediately; a task already terminal yields that snapshot and
// a closed stream.
func (r *Registry) Subscribe(id string) (*Subscription, error) {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if !ok {
		r.mu.Unlock()
		return nil, ErrNotFound
	}

	s := &subscriber{
		updates: make(chan *Task, subscriberBuffer),
		errs:    make(chan error, 1),
	}
	snapshot := t.Clone()
	s.updates <- snapshot
	if t.Status.Terminal() {
		close(s.updates)
		close(s.errs)
	} else {
		r.subs[id] = append(r.subs[id], s)
	}
	r.mu.Unlock()

	return &Subscription{
		Updates:  s.updates,
		Errors:   s.errs,
		registry: r,
		taskID:   id,
		sub:      s,
	}, nil
}

func (r *Registry) unsubscribe(id string, target *subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.subs[id]
	for i, s := range subs {
		if s == target {
			r.subs[id] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// StartPruner runs a ticker that evicts terminal tasks (and their diffs)
// older than retention. Blocks until ctx is cancelled. Intended to be
// called with `go`.
func (r *Registry) StartPruner(ctx context.Context, interval, retention time.Duration) {
	r.logger.Info("Task pruner started", "interval", interval, "retention", retention)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.prune(retention); n > 0 {
				r.logger.Info("Pruned tasks", "count", n)
			}
		case <-ctx.Done():
			r.logger.Info("Task pruner stopped")
			return
		}
	}
}

func (r *Registry) prune(retention time.Duration) int {
	cutoff := time.Now().UTC().Add(-retention)

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.order[:0]
	pruned := 0
	for _, id := range r.order {
		t := r.tasks[id]
		if t.Status.Terminal() && t.CompletedAt != nil && t.CompletedAt.Before(cutoff) {
			delete(r.tasks, id)
			delete(r.cancels, id)
			delete(r.diffs, id)
			pruned++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return pruned
}
