package valuation

import "testing"

func TestToMillions(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"$7.01B", 7010},
		{"$950M", 950},
		{"$1,200M", 1200},
		{"$2b", 2000},
		{"$58.5m", 58.5},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			m := moneyRe.FindStringSubmatch(tc.raw)
			if m == nil {
				t.Fatalf("moneyRe did not match %q", tc.raw)
			}
			if got := toMillions(m); got != tc.want {
				t.Fatalf("toMillions(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestFindTeamFigures(t *testing.T) {
	page := `<tr><td>1</td><td>Dallas Cowboys</td><td>$10.1B</td><td>$1,200M</td></tr>
<tr><td>2</td><td>New England Patriots</td><td>$7.4B</td></tr>
<tr><td>3</td><td>Green Bay Packers</td></tr>`

	value, revenue, found := findTeamFigures(page, "Dallas Cowboys")
	if !found || value != 10100 || revenue != 1200 {
		t.Fatalf("Cowboys = %v, %v, %v", value, revenue, found)
	}

	// Case-insensitive name match; single figure leaves revenue at zero.
	value, revenue, found = findTeamFigures(page, "new england patriots")
	if !found || value != 7400 || revenue != 0 {
		t.Fatalf("Patriots = %v, %v, %v", value, revenue, found)
	}

	if _, _, found = findTeamFigures(page, "Austin FC"); found {
		t.Fatal("absent team reported as found")
	}

	// Name present but no figures in its row window.
	if _, _, found = findTeamFigures("Green Bay Packers and nothing else", "Green Bay Packers"); found {
		t.Fatal("team without figures reported as found")
	}
}

func TestMinorLeaguesHaveNoList(t *testing.T) {
	for _, league := range []string{"MiLB", "G League", "AHL", "ECHL"} {
		if _, ok := listURLs[league]; ok {
			t.Errorf("league %q unexpectedly has a valuation list", league)
		}
	}
	for _, league := range []string{"MLB", "NBA", "NFL", "NHL"} {
		if _, ok := listURLs[league]; !ok {
			t.Errorf("major league %q missing valuation list", league)
		}
	}
}
