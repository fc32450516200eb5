package geo

import "testing"

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		region string
		want   string
		ok     bool
	}{
		{"Austin", "Austin", true},
		{"  Austin  ", "Austin", true},
		{"austin", "Austin", true},
		{"LA", "Los Angeles", true},
		{"NYC", "New York", true},
		{"Brooklyn", "New York", true},
		{"Foxborough", "New England", true},
		{"Santa Clara", "San Francisco", true},
		{"Tennessee", "Tennessee", true},
		{"Toronto", "Toronto", true},
		{"Atlantis", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.region, func(t *testing.T) {
			got, ok := normalizeCity(tc.region)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("normalizeCity(%q) = %q, %v; want %q, %v", tc.region, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestCountryFor(t *testing.T) {
	if got := countryFor("Toronto"); got != "CA" {
		t.Fatalf("countryFor(Toronto) = %s, want CA", got)
	}
	if got := countryFor("Austin"); got != "US" {
		t.Fatalf("countryFor(Austin) = %s, want US", got)
	}
}

func TestCanadianCitiesHaveNoGeoID(t *testing.T) {
	for city := range canadianCities {
		geoID, known := cityToGeoID[city]
		if !known {
			t.Errorf("canadian city %q missing from cityToGeoID", city)
		}
		if geoID != "" {
			t.Errorf("canadian city %q has US geoId %q", city, geoID)
		}
	}
}

func TestAliasesResolveToKnownCities(t *testing.T) {
	for alias, city := range cityAliases {
		if _, ok := cityToGeoID[city]; !ok {
			t.Errorf("alias %q points at unknown city %q", alias, city)
		}
	}
}
