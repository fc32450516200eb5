// Package website scans each team's official site for family and community
// programming signals.
package website

import (
	"context"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// programKeywords maps a program type to the phrases that indicate it on a
// team site. Matching is case-insensitive against the page text.
var programKeywords = map[string][]string{
	"kids_club":        {"kids club", "kid's club", "junior fan club", "jr. fan club"},
	"youth_camp":       {"youth camp", "summer camp", "youth clinic", "kids camp"},
	"family_night":     {"family night", "family pack", "family four pack", "family 4 pack"},
	"youth_sports":     {"youth sports", "youth league", "youth program", "junior league"},
	"school_program":   {"school program", "school day", "education day", "reading program"},
	"birthday_parties": {"birthday party", "birthday packages"},
	"mascot_visits":    {"mascot appearance", "mascot visit"},
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Enricher fetches the official site and counts family program signals.
type Enricher struct {
	httpClient *http.Client
}

// New creates the website enricher.
func New(timeout time.Duration) *Enricher {
	return &Enricher{httpClient: enricher.NewHTTPClient(timeout)}
}

func (e *Enricher) ID() string   { return "website" }
func (e *Enricher) Name() string { return "Website Enricher" }
func (e *Enricher) Description() string {
	return "Scans official team websites for family and youth programming"
}
func (e *Enricher) FieldsAdded() []string {
	return []string{"family_program_count", "family_program_types"}
}
func (e *Enricher) Available() bool { return true }

// PostRun releases idle connections.
func (e *Enricher) PostRun(_ context.Context, _ []schema.TeamRecord) {
	e.httpClient.CloseIdleConnections()
}

// EnrichOne fetches the team's official URL and scans it for program
// keywords. Teams without a site are not applicable.
func (e *Enricher) EnrichOne(ctx context.Context, team *schema.TeamRecord) (enricher.Outcome, error) {
	if strings.TrimSpace(team.OfficialURL) == "" {
		return enricher.Skipped(enricher.SkipNotApplicable), nil
	}
	if team.FamilyProgramCount != nil && team.FamilyProgramTypes != nil {
		return enricher.Skipped(enricher.SkipAlreadyEnriched), nil
	}

	body, err := enricher.Get(ctx, e.httpClient, team.OfficialURL, nil, map[string]string{
		"Accept": "text/html,application/xhtml+xml",
	})
	if err != nil {
		return enricher.Outcome{}, err
	}

	types := scanPrograms(string(body))
	return enricher.Updated(map[string]any{
		"family_program_count": len(types),
		"family_program_types": types,
	}), nil
}

// scanPrograms returns the sorted program types whose keywords appear in
// the page. HTML tags are stripped first so keywords split across markup
// attributes do not false-positive.
func scanPrograms(html string) []string {
	text := strings.ToLower(tagRe.ReplaceAllString(html, " "))

	types := make([]string, 0, len(programKeywords))
	for programType, phrases := range programKeywords {
		for _, phrase := range phrases {
			if strings.Contains(text, phrase) {
				types = append(types, programType)
				break
			}
		}
	}
	sort.Strings(types)
	return types
}
