package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/playmaker/playmaker-data/internal/schema"
)

func seedTeams() []schema.TeamRecord {
	return []schema.TeamRecord{
		{Name: "Austin FC", Region: "Austin", League: "MLS"},
		{Name: "LA Galaxy", Region: "Los Angeles", League: "MLS"},
	}
}

func TestMemoryGetRecordsReturnsCopy(t *testing.T) {
	m := NewMemory()
	m.Seed("mls", seedTeams())

	records, err := m.GetRecords(context.Background(), "mls")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	records[0].Name = "Mutated"

	fresh, _ := m.GetRecords(context.Background(), "mls")
	if fresh[0].Name != "Austin FC" {
		t.Fatal("mutating a returned slice leaked into the store")
	}
}

func TestMemoryUnknownDataset(t *testing.T) {
	m := NewMemory()
	_, err := m.GetRecords(context.Background(), "nope")
	if !errors.Is(err, ErrUnknownDataset) {
		t.Fatalf("err = %v, want ErrUnknownDataset", err)
	}
	if err := m.ReplaceFields(context.Background(), "nope", 0, map[string]any{"geo_city": "X"}); !errors.Is(err, ErrUnknownDataset) {
		t.Fatalf("ReplaceFields err = %v, want ErrUnknownDataset", err)
	}
}

func TestMemoryReplaceFieldsMerges(t *testing.T) {
	m := NewMemory()
	m.Seed("mls", seedTeams())

	err := m.ReplaceFields(context.Background(), "mls", 0, map[string]any{
		"geo_city":        "Austin",
		"city_population": 978908,
	})
	if err != nil {
		t.Fatalf("ReplaceFields: %v", err)
	}

	records, _ := m.GetRecords(context.Background(), "mls")
	if records[0].GeoCity == nil || *records[0].GeoCity != "Austin" {
		t.Fatalf("geo_city = %v", records[0].GeoCity)
	}
	if records[0].CityPopulation == nil || *records[0].CityPopulation != 978908 {
		t.Fatalf("city_population = %v", records[0].CityPopulation)
	}
	// Untouched fields and neighbors survive the merge.
	if records[0].Name != "Austin FC" || records[1].GeoCity != nil {
		t.Fatal("merge touched fields it should not have")
	}
}

func TestMemoryReplaceFieldsIndexOutOfRange(t *testing.T) {
	m := NewMemory()
	m.Seed("mls", seedTeams())
	if err := m.ReplaceFields(context.Background(), "mls", 5, map[string]any{"geo_city": "X"}); err == nil {
		t.Fatal("out-of-range index accepted")
	}
}

func TestMemoryCountRecords(t *testing.T) {
	m := NewMemory()
	m.Seed("mls", seedTeams())

	if n, _ := m.CountRecords(context.Background(), "mls"); n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	// Unseeded datasets count as empty, not as errors.
	if n, err := m.CountRecords(context.Background(), "nope"); err != nil || n != 0 {
		t.Fatalf("count = %d err = %v, want 0 and nil", n, err)
	}
}

func TestMemoryLoadDir(t *testing.T) {
	dir := t.TempDir()
	payload := `[{"name":"Austin FC","region":"Austin","league":"MLS","geo_city":"Austin"}]`
	if err := os.WriteFile(filepath.Join(dir, "mls.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewMemory()
	if err := m.LoadDir(dir, []string{"mls", "missing"}); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	records, err := m.GetRecords(context.Background(), "mls")
	if err != nil {
		t.Fatalf("GetRecords: %v", err)
	}
	if len(records) != 1 || *records[0].GeoCity != "Austin" {
		t.Fatalf("records = %+v", records)
	}

	// Missing file was skipped, dataset stays unknown.
	if _, err := m.GetRecords(context.Background(), "missing"); !errors.Is(err, ErrUnknownDataset) {
		t.Fatalf("err = %v, want ErrUnknownDataset", err)
	}

	// Malformed files are load errors.
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewMemory().LoadDir(dir, []string{"bad"}); err == nil {
		t.Fatal("malformed dataset file accepted")
	}
}
