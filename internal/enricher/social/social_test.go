package social

import (
	"testing"

	"github.com/playmaker/playmaker-data/internal/enricher/wikidata"
)

func TestBuildHandlesStableOrder(t *testing.T) {
	handles := wikidata.Handles{
		"youtube":   "UCabc123",
		"x":         "AustinFC",
		"instagram": "austinfc",
	}

	got := buildHandles(handles)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Platform order is fixed regardless of map iteration.
	wantOrder := []string{"x", "instagram", "youtube"}
	for i, platform := range wantOrder {
		if got[i].Platform != platform {
			t.Fatalf("position %d = %s, want %s", i, got[i].Platform, platform)
		}
	}

	x := got[0]
	if x.Handle != "AustinFC" || x.URL == nil || *x.URL != "https://x.com/AustinFC" {
		t.Fatalf("x handle = %+v", x)
	}
	if x.UniqueID != nil {
		t.Fatal("non-YouTube handle carries a unique id")
	}

	yt := got[2]
	if yt.UniqueID == nil || *yt.UniqueID != "UCabc123" {
		t.Fatalf("youtube handle = %+v", yt)
	}
	if yt.URL == nil || *yt.URL != "https://www.youtube.com/channel/UCabc123" {
		t.Fatalf("youtube url = %v", yt.URL)
	}
}

func TestParseCompactCount(t *testing.T) {
	tests := []struct {
		num    string
		suffix string
		want   int
	}{
		{"1.2", "M", 1200000},
		{"850", "K", 850000},
		{"12,345", "", 12345},
		{"2", "m", 2000000},
		{"1", "B", 1000000000},
		{"junk", "", 0},
	}
	for _, tc := range tests {
		if got := parseCompactCount(tc.num, tc.suffix); got != tc.want {
			t.Errorf("parseCompactCount(%q, %q) = %d, want %d", tc.num, tc.suffix, got, tc.want)
		}
	}
}

func TestInstagramFollowersPattern(t *testing.T) {
	page := `<meta property="og:description" content="1.2M Followers, 310 Following, 4,100 Posts">`
	m := instagramFollowersRe.FindStringSubmatch(page)
	if m == nil {
		t.Fatal("og:description follower figure not matched")
	}
	if got := parseCompactCount(m[1], m[2]); got != 1200000 {
		t.Fatalf("followers = %d, want 1200000", got)
	}

	if instagramFollowersRe.FindStringSubmatch(`<meta content="Log in to see photos">`) != nil {
		t.Fatal("matched a page without a follower figure")
	}
}

func TestBuildHandlesSkipsEmpty(t *testing.T) {
	got := buildHandles(wikidata.Handles{"x": "", "tiktok": "austinfc"})
	if len(got) != 1 || got[0].Platform != "tiktok" {
		t.Fatalf("handles = %+v", got)
	}
	if *got[0].URL != "https://www.tiktok.com/@austinfc" {
		t.Fatalf("tiktok url = %v", *got[0].URL)
	}
}
