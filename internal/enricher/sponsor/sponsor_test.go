package sponsor

import (
	"testing"

	"github.com/playmaker/playmaker-data/internal/enricher/wikidata"
)

func TestOwnsVenue(t *testing.T) {
	tests := []struct {
		name  string
		team  string
		owner string
		want  bool
	}{
		{"exact owner", "Green Bay Packers", "Green Bay Packers", true},
		{"ownership group with nickname", "Dallas Cowboys", "Cowboys Stadium LP", true},
		{"municipal owner", "Chicago Bears", "Chicago Park District", false},
		{"corporate owner", "Austin FC", "Q2 Holdings Inc.", false},
		{"no owner data", "Austin FC", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ownsVenue(tc.team, tc.owner); got != tc.want {
				t.Fatalf("ownsVenue(%q, %q) = %v, want %v", tc.team, tc.owner, got, tc.want)
			}
		})
	}
}

func TestNamingSponsor(t *testing.T) {
	// Corporate owner whose brand appears in the venue name.
	v := &wikidata.Venue{StadiumName: "Q2 Stadium", OwnerLabel: "Q2 Holdings Inc."}
	s, ok := namingSponsor(v)
	if !ok {
		t.Fatal("naming sponsor not detected")
	}
	if s.Name != "Q2 Holdings Inc." || s.Category == nil || *s.Category != "naming_rights" {
		t.Fatalf("sponsor = %+v", s)
	}

	// Corporate owner whose brand is absent from the venue name.
	v = &wikidata.Venue{StadiumName: "Soldier Field", OwnerLabel: "Acme Corp"}
	if _, ok := namingSponsor(v); ok {
		t.Fatal("owner without naming rights reported as sponsor")
	}

	// Non-corporate owner.
	v = &wikidata.Venue{StadiumName: "Lambeau Field", OwnerLabel: "City of Green Bay"}
	if _, ok := namingSponsor(v); ok {
		t.Fatal("municipal owner reported as sponsor")
	}
}

func TestIsCorporate(t *testing.T) {
	for _, label := range []string{"Q2 Holdings Inc.", "Acme LLC", "Globex Corporation", "Initech Group"} {
		if !isCorporate(label) {
			t.Errorf("isCorporate(%q) = false", label)
		}
	}
	for _, label := range []string{"City of Green Bay", "Chicago Park District", ""} {
		if isCorporate(label) {
			t.Errorf("isCorporate(%q) = true", label)
		}
	}
}
