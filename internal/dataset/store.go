// Package dataset provides access to the team records backing each dataset.
// The enrichment orchestrator consumes this contract and never touches the
// storage technology directly.
package dataset

import (
	"context"
	"errors"

	"github.com/playmaker/playmaker-data/internal/schema"
)

// ErrUnknownDataset is returned for dataset ids with no stored records.
var ErrUnknownDataset = errors.New("unknown dataset")

// Store is the read/replace contract over a dataset's team records.
//
// ReplaceFields merges the given fields into the record at teamIndex. It is
// an idempotent write: callers (the orchestrator) are responsible for only
// sending fields that should change.
type Store interface {
	GetRecords(ctx context.Context, datasetID string) ([]schema.TeamRecord, error)
	ReplaceFields(ctx context.Context, datasetID string, teamIndex int, fields map[string]any) error
	CountRecords(ctx context.Context, datasetID string) (int, error)
}
