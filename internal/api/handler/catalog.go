package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playmaker/playmaker-data/internal/api/respond"
	"github.com/playmaker/playmaker-data/internal/cache"
	"github.com/playmaker/playmaker-data/internal/config"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// ListEnrichers lists registered enrichment modules.
// @Summary List enrichment modules
// @Description Returns every registered module with its id, fields added, and availability.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /enrichers [get]
func (h *Handler) ListEnrichers(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"enrichers": h.enrichers.List(),
	})
}

// GetSchemaFields returns the field vocabulary grouped by domain.
// @Summary List schema fields
// @Description Returns the team record field vocabulary in canonical group order.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /schema/fields [get]
func (h *Handler) GetSchemaFields(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"groups": schema.FieldGroups,
	})
}

// ListDatasets lists configured datasets with record counts.
// @Summary List datasets
// @Description Returns every configured dataset with its leagues and record count.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /datasets [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	type datasetInfo struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Records     int    `json:"records"`
	}

	infos := make([]datasetInfo, 0, len(config.DatasetRegistry))
	for _, id := range config.DatasetIDs() {
		dc := config.DatasetRegistry[id]
		count, err := h.store.CountRecords(r.Context(), id)
		if err != nil {
			h.logger.Warn("count records failed", "dataset", id, "error", err)
			count = 0
		}
		infos = append(infos, datasetInfo{ID: id, Name: dc.Name, Description: dc.Description, Records: count})
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"datasets": infos})
}

// GetDatasetTeams returns the team records of one dataset.
// @Summary Get dataset teams
// @Description Returns all team records in a dataset. Cached with ETag support; task completion invalidates the entry.
// @Tags catalog
// @Produce json
// @Param datasetID path string true "Dataset ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /datasets/{datasetID}/teams [get]
func (h *Handler) GetDatasetTeams(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	if _, ok := config.DatasetRegistry[id]; !ok {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_DATASET", fmt.Sprintf("Unknown dataset %q", id))
		return
	}

	cacheKey := "dataset:" + id
	ttl := cache.TTLDatasets

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	records, err := h.store.GetRecords(r.Context(), id)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Could not read dataset")
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"dataset_id": id,
		"count":      len(records),
		"teams":      records,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", "Could not encode dataset")
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}
