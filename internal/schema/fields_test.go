package schema

import (
	"reflect"
	"testing"
	"time"
)

func TestValueAbsentFieldsAreNil(t *testing.T) {
	team := &TeamRecord{Name: "Austin FC", League: "MLS"}
	for _, field := range EnrichmentFields() {
		if v := Value(team, field); v != nil {
			t.Errorf("Value(%q) = %v on empty record, want nil", field, v)
		}
	}
}

func TestSetFieldValueRoundTrip(t *testing.T) {
	tests := []struct {
		field string
		value any
		want  any
	}{
		{"geo_city", "Austin", "Austin"},
		{"geo_country", "US", "US"},
		{"city_population", 978908, 978908},
		{"metro_gdp_millions", 212000.5, 212000.5},
		{"followers_x", 250000, 250000},
		{"subscribers_youtube", 41000, 41000},
		{"avg_game_attendance", 20738, 20738},
		{"family_program_count", 3, 3},
		{"family_program_types", []string{"kids_club", "youth_camp"}, []string{"kids_club", "youth_camp"}},
		{"owns_stadium", true, true},
		{"stadium_name", "Q2 Stadium", "Q2 Stadium"},
		{"avg_ticket_price", 58.5, 58.5},
		{"franchise_value_millions", 7010.0, 7010.0},
		{"annual_revenue_millions", 950.0, 950.0},
		{"mission_tags", []string{"community", "youth"}, []string{"community", "youth"}},
		{"community_programs", []string{"Verde Leaders"}, []string{"Verde Leaders"}},
		{"cause_partnerships", []string{"Food Bank"}, []string{"Food Bank"}},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			team := &TeamRecord{Name: "Austin FC", League: "MLS"}
			if err := SetField(team, tc.field, tc.value); err != nil {
				t.Fatalf("SetField: %v", err)
			}
			got := Value(team, tc.field)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Value = %v (%T), want %v (%T)", got, got, tc.want, tc.want)
			}
		})
	}
}

func TestSetFieldTypedSlices(t *testing.T) {
	team := &TeamRecord{Name: "Austin FC", League: "MLS"}

	handles := []SocialHandle{{Platform: "x", Handle: "AustinFC"}}
	if err := SetField(team, "social_handles", handles); err != nil {
		t.Fatalf("social_handles: %v", err)
	}
	if !reflect.DeepEqual(team.SocialHandles, handles) {
		t.Fatalf("SocialHandles = %+v", team.SocialHandles)
	}

	sponsors := []SponsorInfo{{Name: "Q2"}}
	if err := SetField(team, "sponsors", sponsors); err != nil {
		t.Fatalf("sponsors: %v", err)
	}
	if !reflect.DeepEqual(team.Sponsors, sponsors) {
		t.Fatalf("Sponsors = %+v", team.Sponsors)
	}
}

func TestSetFieldCoercion(t *testing.T) {
	team := &TeamRecord{Name: "Austin FC", League: "MLS"}

	// JSON-decoded numbers arrive as float64.
	if err := SetField(team, "city_population", float64(978908)); err != nil {
		t.Fatalf("float64 into int field: %v", err)
	}
	if *team.CityPopulation != 978908 {
		t.Fatalf("CityPopulation = %d", *team.CityPopulation)
	}

	if err := SetField(team, "franchise_value_millions", 7010); err != nil {
		t.Fatalf("int into float field: %v", err)
	}
	if *team.FranchiseValueMillion != 7010 {
		t.Fatalf("FranchiseValueMillion = %v", *team.FranchiseValueMillion)
	}

	// JSON-decoded string lists arrive as []any.
	if err := SetField(team, "mission_tags", []any{"community", "youth"}); err != nil {
		t.Fatalf("[]any into string slice: %v", err)
	}
	if !reflect.DeepEqual(team.MissionTags, []string{"community", "youth"}) {
		t.Fatalf("MissionTags = %v", team.MissionTags)
	}
}

func TestSetFieldRejections(t *testing.T) {
	team := &TeamRecord{Name: "Austin FC", League: "MLS"}

	if err := SetField(team, "geo_city", nil); err == nil {
		t.Fatal("nil value accepted")
	}
	if err := SetField(team, "made_up", "x"); err == nil {
		t.Fatal("unknown field accepted")
	}
	if err := SetField(team, "city_population", "lots"); err == nil {
		t.Fatal("string into int field accepted")
	}
	if err := SetField(team, "name", "Renamed"); err == nil {
		t.Fatal("core field write accepted")
	}
}

func TestIsEnrichmentField(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"geo_city", true},
		{"sponsors", true},
		{"cause_partnerships", true},
		{"name", false},   // core
		{"region", false}, // core
		{"made_up", false},
	}
	for _, tc := range tests {
		if got := IsEnrichmentField(tc.name); got != tc.want {
			t.Errorf("IsEnrichmentField(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEnrichmentFieldsOrderIsStable(t *testing.T) {
	fields := EnrichmentFields()
	if fields[0] != "geo_city" {
		t.Fatalf("first field = %s, want geo_city", fields[0])
	}
	for _, f := range fields {
		if f == "name" || f == "region" || f == "league" {
			t.Fatalf("core field %q leaked into enrichment fields", f)
		}
	}
	if !reflect.DeepEqual(fields, EnrichmentFields()) {
		t.Fatal("EnrichmentFields is not stable across calls")
	}
}

func TestApplyEnrichment(t *testing.T) {
	team := &TeamRecord{Name: "Austin FC", League: "MLS"}
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	team.ApplyEnrichment("geo", now)
	if !team.HasEnrichment("geo") {
		t.Fatal("HasEnrichment = false after apply")
	}
	if team.LastEnriched == nil || *team.LastEnriched != "2026-08-25T12:00:00Z" {
		t.Fatalf("LastEnriched = %v", team.LastEnriched)
	}

	// Re-applying the same module refreshes the stamp without duplicating.
	later := now.Add(time.Hour)
	team.ApplyEnrichment("geo", later)
	if len(team.EnrichmentsApplied) != 1 {
		t.Fatalf("EnrichmentsApplied = %v, want single entry", team.EnrichmentsApplied)
	}
	if *team.LastEnriched != "2026-08-25T13:00:00Z" {
		t.Fatalf("LastEnriched = %v", *team.LastEnriched)
	}

	if team.HasEnrichment("social") {
		t.Fatal("HasEnrichment reports a module that never ran")
	}
}

func TestKey(t *testing.T) {
	a := TeamRecord{Name: "Rangers", League: "MLB"}
	b := TeamRecord{Name: "Rangers", League: "NHL"}
	if a.Key() == b.Key() {
		t.Fatal("same-name teams in different leagues share a key")
	}
}
