package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playmaker/playmaker-data/internal/api/respond"
	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/task"
)

// CreateTaskRequest is the POST /tasks body.
type CreateTaskRequest struct {
	DatasetID    string   `json:"dataset_id"`
	EnricherIDs  []string `json:"enricher_ids"`
	ForceRefresh bool     `json:"force_refresh"`
}

// CreateTask starts an enrichment task.
// @Summary Start an enrichment task
// @Description Creates a task running the named enrichers over a dataset and starts it in the background.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task parameters"
// @Success 202 {object} task.Task
// @Failure 400 {object} respond.ErrorResponse
// @Router /tasks [post]
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return
	}

	if _, ok := config.DatasetRegistry[req.DatasetID]; !ok {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "UNKNOWN_DATASET",
			fmt.Sprintf("Unknown dataset %q", req.DatasetID),
			fmt.Sprintf("Known datasets: %v", config.DatasetIDs()))
		return
	}

	// An omitted selection means "everything that can run": key-gated
	// modules without credentials are left out rather than rejected.
	if len(req.EnricherIDs) == 0 {
		req.EnricherIDs = h.enrichers.AvailableIDs()
		if len(req.EnricherIDs) == 0 {
			respond.WriteError(w, http.StatusBadRequest, "NO_ENRICHERS_AVAILABLE",
				"No enrichers are available (missing credentials)")
			return
		}
	}
	for _, id := range req.EnricherIDs {
		e, ok := h.enrichers.Get(id)
		if !ok {
			respond.WriteErrorDetail(w, http.StatusBadRequest, "UNKNOWN_ENRICHER",
				fmt.Sprintf("Unknown enricher %q", id),
				fmt.Sprintf("Known enrichers: %v", h.enrichers.IDs()))
			return
		}
		if !e.Available() {
			respond.WriteError(w, http.StatusBadRequest, "ENRICHER_UNAVAILABLE",
				fmt.Sprintf("Enricher %q is not available (missing credentials)", id))
			return
		}
	}

	t := h.registry.Create(req.DatasetID, req.EnricherIDs, req.ForceRefresh)
	h.logger.Info("task created",
		"task_id", t.ID, "dataset", t.DatasetID, "enrichers", t.EnricherIDs, "force", t.ForceRefresh)

	go func() {
		h.runner.Run(h.runCtx, t.ID)
		h.cache.Invalidate("dataset:" + t.DatasetID)
	}()

	respond.WriteJSONObject(w, http.StatusAccepted, t)
}

// ListTasks lists all known tasks, newest first.
// @Summary List tasks
// @Description Returns all tasks the registry knows about, newest first, with the active count.
// @Tags tasks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tasks [get]
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, active := h.registry.List()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"tasks":        tasks,
		"total_count":  len(tasks),
		"active_count": active,
	})
}

// GetTask returns one task.
// @Summary Get task status
// @Description Returns the full progress snapshot for one task.
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} task.Task
// @Failure 404 {object} respond.ErrorResponse
// @Router /tasks/{taskID} [get]
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	t, ok := h.registry.Get(chi.URLParam(r, "taskID"))
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, t)
}

// CancelTask requests cooperative cancellation.
// @Summary Cancel a task
// @Description Requests cancellation. In-flight calls drain; the task settles as cancelled.
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} task.Task
// @Failure 404 {object} respond.ErrorResponse
// @Router /tasks/{taskID}/cancel [post]
func (h *Handler) CancelTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	if !h.registry.Cancel(id) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
		return
	}
	t, _ := h.registry.Get(id)
	h.logger.Info("task cancellation requested", "task_id", id)
	respond.WriteJSONObject(w, http.StatusOK, t)
}

// GetTaskDiff returns the before/after diff for a settled task.
// @Summary Get task diff
// @Description Returns the per-team field changes produced by a completed or cancelled task.
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} diff.Diff
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /tasks/{taskID}/diff [get]
func (h *Handler) GetTaskDiff(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	t, ok := h.registry.Get(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
		return
	}
	if !t.Status.Terminal() {
		respond.WriteError(w, http.StatusConflict, "TASK_RUNNING", "Diff is available once the task settles")
		return
	}
	d, ok := h.registry.Diff(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "NO_DIFF", "Task produced no diff")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, d)
}

// TaskEvents streams task progress snapshots as Server-Sent Events.
// @Summary Stream task progress
// @Description Streams task snapshots as SSE until the task settles or the client disconnects.
// @Tags tasks
// @Produce text/event-stream
// @Param taskID path string true "Task ID"
// @Success 200 {string} string "event stream"
// @Failure 404 {object} respond.ErrorResponse
// @Router /tasks/{taskID}/events [get]
func (h *Handler) TaskEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	sub, err := h.registry.Subscribe(id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "Task not found")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "SUBSCRIBE_FAILED", "Could not subscribe to task")
		return
	}
	defer sub.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.WriteError(w, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "Response writer does not support streaming")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.Errors:
			// Dropped as a slow consumer. Tell the client to re-poll.
			fmt.Fprint(w, "event: dropped\ndata: {}\n\n")
			flusher.Flush()
			return
		case t, open := <-sub.Updates:
			if !open {
				return
			}
			writeEvent(w, flusher, t)
			if t.Status.Terminal() {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, t *task.Task) {
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: task\ndata: %s\n\n", data)
	flusher.Flush()
}
