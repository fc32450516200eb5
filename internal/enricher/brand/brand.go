// Package brand derives mission and community positioning tags using the
// Gemini API. The module is unavailable without an API key.
package brand

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/schema"
)

const generateURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// Enricher classifies a team's brand positioning into mission tags,
// community programs, and cause partnerships.
type Enricher struct {
	apiKey     string
	httpClient *http.Client
}

// New creates the brand enricher. An empty apiKey makes it unavailable.
func New(apiKey string, timeout time.Duration) *Enricher {
	return &Enricher{
		apiKey:     apiKey,
		httpClient: enricher.NewHTTPClient(timeout),
	}
}

func (e *Enricher) ID() string   { return "brand" }
func (e *Enricher) Name() string { return "Brand Positioning Enricher" }
func (e *Enricher) Description() string {
	return "Derives mission tags, community programs, and cause partnerships via the Gemini API"
}
func (e *Enricher) FieldsAdded() []string {
	return []string{"mission_tags", "community_programs", "cause_partnerships"}
}
func (e *Enricher) Available() bool { return e.apiKey != "" }

// PostRun releases idle connections.
func (e *Enricher) PostRun(_ context.Context, _ []schema.TeamRecord) {
	e.httpClient.CloseIdleConnections()
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// EnrichOne asks Gemini for brand tags and parses the line-oriented reply.
func (e *Enricher) EnrichOne(ctx context.Context, team *schema.TeamRecord) (enricher.Outcome, error) {
	if team.MissionTags != nil && team.CommunityPrograms != nil && team.CausePartnerships != nil {
		return enricher.Skipped(enricher.SkipAlreadyEnriched), nil
	}

	req := generateRequest{Contents: []content{{Parts: []part{{Text: prompt(team)}}}}}

	var resp generateResponse
	headers := map[string]string{"x-goog-api-key": e.apiKey}
	if err := enricher.PostJSON(ctx, e.httpClient, generateURL, headers, req, &resp); err != nil {
		return enricher.Outcome{}, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return enricher.Outcome{}, fmt.Errorf("gemini returned no candidates for %s", team.Name)
	}

	fields := parseReply(resp.Candidates[0].Content.Parts[0].Text)
	if len(fields) == 0 {
		return enricher.Skipped(enricher.SkipNotApplicable), nil
	}
	return enricher.Updated(fields), nil
}

func prompt(team *schema.TeamRecord) string {
	return fmt.Sprintf(
		"For the %s sports team %q based in %s, list their brand positioning as three labeled lines.\n"+
			"mission_tags: comma-separated mission/values keywords\n"+
			"community_programs: comma-separated named community programs\n"+
			"cause_partnerships: comma-separated charitable cause partnerships\n"+
			"Use only publicly known facts. Leave a line empty after the colon if unknown. No other text.",
		team.League, team.Name, team.Region)
}

// parseReply extracts the three labeled lines. Unknown or empty lines are
// dropped so the record keeps nil for fields the model cannot source.
func parseReply(text string) map[string]any {
	fields := make(map[string]any)
	for _, line := range strings.Split(text, "\n") {
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.ToLower(name))
		switch name {
		case "mission_tags", "community_programs", "cause_partnerships":
		default:
			continue
		}
		values := splitList(rest)
		if len(values) > 0 {
			fields[name] = values
		}
	}
	return fields
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" && !strings.EqualFold(item, "unknown") && !strings.EqualFold(item, "none") {
			out = append(out, item)
		}
	}
	return out
}
