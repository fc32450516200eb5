package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/playmaker/playmaker-data/internal/schema"
)

// Memory is an in-process Store seeded from JSON files or directly from
// record slices. Used for keyless local runs and tests.
type Memory struct {
	mu       sync.RWMutex
	datasets map[string][]schema.TeamRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{datasets: make(map[string][]schema.TeamRecord)}
}

// Seed replaces the records for a dataset.
func (m *Memory) Seed(datasetID string, records []schema.TeamRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[datasetID] = append([]schema.TeamRecord(nil), records...)
}

// LoadDir seeds every dataset in ids from <dir>/<id>.json. Missing files are
// skipped: a dataset whose scraper has not run yet simply has no records.
func (m *Memory) LoadDir(dir string, ids []string) error {
	for _, id := range ids {
		path := filepath.Join(dir, id+".json")
		raw, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		var records []schema.TeamRecord
		if err := json.Unmarshal(raw, &records); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		m.Seed(id, records)
	}
	return nil
}

// GetRecords returns a copy of the dataset's records.
func (m *Memory) GetRecords(_ context.Context, datasetID string) ([]schema.TeamRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records, ok := m.datasets[datasetID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, datasetID)
	}
	out := make([]schema.TeamRecord, len(records))
	copy(out, records)
	return out, nil
}

// ReplaceFields merges fields into the record at teamIndex. The merge goes
// through a JSON round-trip so the field names match the wire vocabulary,
// the same shape a JSONB merge produces on the Postgres store.
func (m *Memory) ReplaceFields(_ context.Context, datasetID string, teamIndex int, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	records, ok := m.datasets[datasetID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDataset, datasetID)
	}
	if teamIndex < 0 || teamIndex >= len(records) {
		return fmt.Errorf("dataset %s: team index %d out of range", datasetID, teamIndex)
	}

	raw, err := json.Marshal(records[teamIndex])
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	for k, v := range fields {
		obj[k] = v
	}
	merged, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encode merged record: %w", err)
	}
	var updated schema.TeamRecord
	if err := json.Unmarshal(merged, &updated); err != nil {
		return fmt.Errorf("decode merged record: %w", err)
	}
	records[teamIndex] = updated
	return nil
}

// CountRecords returns the number of records in a dataset, zero if unseeded.
func (m *Memory) CountRecords(_ context.Context, datasetID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.datasets[datasetID]), nil
}
