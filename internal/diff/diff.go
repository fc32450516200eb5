// Package diff computes the structured before/after comparison a task
// produces. A diff is derived once from two record snapshots and never
// mutated afterwards.
package diff

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/playmaker/playmaker-data/internal/schema"
)

// ChangeType classifies one field change.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

// FieldChange is one field-level change on one team.
type FieldChange struct {
	Field      string     `json:"field"`
	OldValue   any        `json:"old_value"`
	NewValue   any        `json:"new_value"`
	ChangeType ChangeType `json:"change_type"`
}

// TeamDiff is all field changes for one team, in schema field order.
type TeamDiff struct {
	TeamName       string        `json:"team_name"`
	FieldsAdded    int           `json:"fields_added"`
	FieldsModified int           `json:"fields_modified"`
	Changes        []FieldChange `json:"changes"`
}

// Diff aggregates the per-team diffs for one task.
type Diff struct {
	TeamsChanged        int        `json:"teams_changed"`
	TotalFieldsAdded    int        `json:"total_fields_added"`
	TotalFieldsModified int        `json:"total_fields_modified"`
	Teams               []TeamDiff `json:"teams"`
	ComputedAt          time.Time  `json:"computed_at"`
}

// Snapshot deep-copies records through a JSON round-trip. The copy shares
// nothing with the input, so later in-place enrichment cannot leak into a
// pre-run snapshot.
func Snapshot(records []schema.TeamRecord) ([]schema.TeamRecord, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var out []schema.TeamRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Compute diffs after against before. Teams are matched by identity key
// (name+league) and reported in after's order (dataset order); fields are
// walked in the schema-declared order, so identical inputs always produce
// identical output. List- and object-valued fields compare by deep
// equality: a single element change yields one modified entry for the
// whole field.
func Compute(before, after []schema.TeamRecord, now time.Time) *Diff {
	prior := make(map[string]*schema.TeamRecord, len(before))
	for i := range before {
		rec := &before[i]
		prior[rec.Key()] = rec
	}

	d := &Diff{ComputedAt: now.UTC()}
	fields := schema.EnrichmentFields()

	for i := range after {
		cur := &after[i]
		old, ok := prior[cur.Key()]
		if !ok {
			// Team appeared mid-run; this subsystem never creates records,
			// so treat every populated field as added.
			old = &schema.TeamRecord{}
		}

		td := TeamDiff{TeamName: cur.Name}
		for _, field := range fields {
			oldVal := normalize(schema.Value(old, field))
			newVal := normalize(schema.Value(cur, field))

			switch {
			case oldVal == nil && newVal == nil:
				continue
			case oldVal == nil:
				td.Changes = append(td.Changes, FieldChange{
					Field: field, NewValue: newVal, ChangeType: ChangeAdded,
				})
				td.FieldsAdded++
			case newVal == nil:
				td.Changes = append(td.Changes, FieldChange{
					Field: field, OldValue: oldVal, ChangeType: ChangeRemoved,
				})
			case !reflect.DeepEqual(oldVal, newVal):
				td.Changes = append(td.Changes, FieldChange{
					Field: field, OldValue: oldVal, NewValue: newVal, ChangeType: ChangeModified,
				})
				td.FieldsModified++
			}
		}

		if len(td.Changes) > 0 {
			d.Teams = append(d.Teams, td)
			d.TeamsChanged++
			d.TotalFieldsAdded += td.FieldsAdded
			d.TotalFieldsModified += td.FieldsModified
		}
	}

	return d
}

// normalize routes values through a JSON round-trip so that native structs
// and snapshot copies compare equal regardless of which side decoded from
// JSON.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
