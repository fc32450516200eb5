package diff

import (
	"reflect"
	"testing"
	"time"

	"github.com/playmaker/playmaker-data/internal/schema"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestSnapshotIsIndependent(t *testing.T) {
	city := "Austin"
	records := []schema.TeamRecord{{Name: "Austin FC", League: "MLS", GeoCity: &city}}

	snap, err := Snapshot(records)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	*records[0].GeoCity = "Dallas"
	records[0].CityPopulation = intPtr(1000)

	if *snap[0].GeoCity != "Austin" {
		t.Fatalf("snapshot geo_city = %q, mutated through shared pointer", *snap[0].GeoCity)
	}
	if snap[0].CityPopulation != nil {
		t.Fatal("snapshot gained a field set after the copy")
	}
}

func TestComputeClassifiesChanges(t *testing.T) {
	before := []schema.TeamRecord{
		{Name: "Austin FC", League: "MLS", GeoCity: strPtr("Austin"), StadiumName: strPtr("Q2 Stadium")},
		{Name: "LA Galaxy", League: "MLS"},
	}
	after := []schema.TeamRecord{
		{Name: "Austin FC", League: "MLS", GeoCity: strPtr("Round Rock"), CityPopulation: intPtr(978908)},
		{Name: "LA Galaxy", League: "MLS"},
	}

	d := Compute(before, after, time.Now())

	if d.TeamsChanged != 1 {
		t.Fatalf("TeamsChanged = %d, want 1 (unchanged teams are omitted)", d.TeamsChanged)
	}
	td := d.Teams[0]
	if td.TeamName != "Austin FC" {
		t.Fatalf("team = %s", td.TeamName)
	}
	if td.FieldsModified != 1 || td.FieldsAdded != 1 {
		t.Fatalf("added = %d modified = %d, want 1 and 1", td.FieldsAdded, td.FieldsModified)
	}

	byField := make(map[string]FieldChange)
	for _, c := range td.Changes {
		byField[c.Field] = c
	}
	if c := byField["geo_city"]; c.ChangeType != ChangeModified || c.OldValue != "Austin" || c.NewValue != "Round Rock" {
		t.Fatalf("geo_city change = %+v", c)
	}
	if c := byField["city_population"]; c.ChangeType != ChangeAdded || c.OldValue != nil {
		t.Fatalf("city_population change = %+v", c)
	}
	if c, ok := byField["stadium_name"]; c.ChangeType != ChangeRemoved || !ok {
		t.Fatalf("stadium_name change = %+v", c)
	}
	// Removed fields don't count toward added/modified totals.
	if d.TotalFieldsAdded != 1 || d.TotalFieldsModified != 1 {
		t.Fatalf("totals = added %d modified %d", d.TotalFieldsAdded, d.TotalFieldsModified)
	}
}

func TestComputeFieldsInCanonicalOrder(t *testing.T) {
	before := []schema.TeamRecord{{Name: "Austin FC", League: "MLS"}}
	after := []schema.TeamRecord{{
		Name: "Austin FC", League: "MLS",
		StadiumName:    strPtr("Q2 Stadium"), // inventory group, later
		GeoCity:        strPtr("Austin"),     // geographic group, first
		CityPopulation: intPtr(978908),
	}}

	d := Compute(before, after, time.Now())
	got := make([]string, 0, 3)
	for _, c := range d.Teams[0].Changes {
		got = append(got, c.Field)
	}
	want := []string{"geo_city", "city_population", "stadium_name"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("change order = %v, want %v", got, want)
	}
}

func TestComputeDeterministic(t *testing.T) {
	before := []schema.TeamRecord{{Name: "Austin FC", League: "MLS"}}
	after := []schema.TeamRecord{{
		Name: "Austin FC", League: "MLS",
		GeoCity: strPtr("Austin"),
		SocialHandles: []schema.SocialHandle{
			{Platform: "x", Handle: "AustinFC"},
		},
	}}

	now := time.Now()
	first := Compute(before, after, now)
	second := Compute(before, after, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different diffs")
	}
}

func TestComputeDeepEqualityForCompositeFields(t *testing.T) {
	handles := []schema.SocialHandle{{Platform: "x", Handle: "AustinFC"}}
	before := []schema.TeamRecord{{Name: "Austin FC", League: "MLS", SocialHandles: handles}}

	// Same content, separately constructed: must not diff.
	after := []schema.TeamRecord{{Name: "Austin FC", League: "MLS",
		SocialHandles: []schema.SocialHandle{{Platform: "x", Handle: "AustinFC"}}}}
	if d := Compute(before, after, time.Now()); d.TeamsChanged != 0 {
		t.Fatalf("equal composite values diffed: %+v", d.Teams)
	}

	// One element changed: one modified entry for the whole field.
	after[0].SocialHandles[0].Handle = "VerdeATX"
	d := Compute(before, after, time.Now())
	if d.TeamsChanged != 1 || d.Teams[0].FieldsModified != 1 {
		t.Fatalf("composite change = %+v", d)
	}
	if d.Teams[0].Changes[0].Field != "social_handles" {
		t.Fatalf("field = %s, want social_handles", d.Teams[0].Changes[0].Field)
	}
}

func TestComputeNoChanges(t *testing.T) {
	records := []schema.TeamRecord{{Name: "Austin FC", League: "MLS", GeoCity: strPtr("Austin")}}
	snap, _ := Snapshot(records)

	d := Compute(snap, records, time.Now())
	if d.TeamsChanged != 0 || len(d.Teams) != 0 {
		t.Fatalf("no-op run produced diff: %+v", d)
	}
}

func TestComputeMatchesByNameAndLeague(t *testing.T) {
	before := []schema.TeamRecord{
		{Name: "Rangers", League: "MLB", GeoCity: strPtr("Arlington")},
		{Name: "Rangers", League: "NHL", GeoCity: strPtr("New York")},
	}
	after, _ := Snapshot(before)
	after[1].CityPopulation = intPtr(8258035)

	d := Compute(before, after, time.Now())
	if d.TeamsChanged != 1 {
		t.Fatalf("TeamsChanged = %d, want 1", d.TeamsChanged)
	}
	// Same name, different league: only the NHL record changed.
	if d.Teams[0].Changes[0].Field != "city_population" {
		t.Fatalf("change = %+v", d.Teams[0].Changes[0])
	}
}
