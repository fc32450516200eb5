// Package sponsor resolves stadium data and naming-rights sponsors from
// the shared WikiData client.
package sponsor

import (
	"context"
	"fmt"
	"strings"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/enricher/wikidata"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// corporateSuffixes mark a venue owner label as a company rather than a
// municipality or the team itself.
var corporateSuffixes = []string{
	"inc", "inc.", "llc", "ltd", "ltd.", "corp", "corp.",
	"corporation", "company", "co.", "group", "holdings",
}

// Enricher adds stadium name, ownership, and naming-rights sponsor data.
type Enricher struct {
	wikidata *wikidata.Client
}

// New creates the sponsor enricher sharing the given WikiData client.
func New(wd *wikidata.Client) *Enricher {
	return &Enricher{wikidata: wd}
}

func (e *Enricher) ID() string   { return "sponsor" }
func (e *Enricher) Name() string { return "Sponsor & Stadium Enricher" }
func (e *Enricher) Description() string {
	return "Adds stadium name, ownership, and naming-rights sponsor data from WikiData"
}
func (e *Enricher) FieldsAdded() []string {
	return []string{"stadium_name", "owns_stadium", "sponsors"}
}
func (e *Enricher) Available() bool { return true }

// PreRun bulk-prefetches WikiData venue data per league. The social
// enricher shares the same client, so a combined run queries each league
// once.
func (e *Enricher) PreRun(ctx context.Context, teams []schema.TeamRecord) error {
	seen := make(map[string]bool)
	for i := range teams {
		league := teams[i].League
		if league == "" || seen[league] {
			continue
		}
		seen[league] = true
		if err := e.wikidata.PrefetchLeague(ctx, league); err != nil {
			return fmt.Errorf("prefetch league %q: %w", league, err)
		}
	}
	return nil
}

// EnrichOne resolves the team's home venue and classifies its owner.
func (e *Enricher) EnrichOne(_ context.Context, team *schema.TeamRecord) (enricher.Outcome, error) {
	venue, ok := e.wikidata.TeamVenue(team.Name)
	if !ok || venue.StadiumName == "" {
		return enricher.Skipped(enricher.SkipNotApplicable), nil
	}
	if team.StadiumName != nil && team.OwnsStadium != nil {
		return enricher.Skipped(enricher.SkipAlreadyEnriched), nil
	}

	fields := map[string]any{
		"stadium_name": venue.StadiumName,
		"owns_stadium": ownsVenue(team.Name, venue.OwnerLabel),
	}

	if sponsor, ok := namingSponsor(venue); ok {
		fields["sponsors"] = []schema.SponsorInfo{sponsor}
	}

	return enricher.Updated(fields), nil
}

// ownsVenue reports whether the venue owner label names the team itself
// (or its ownership group sharing the team nickname).
func ownsVenue(teamName, ownerLabel string) bool {
	if ownerLabel == "" {
		return false
	}
	owner := wikidata.Normalize(ownerLabel)
	team := wikidata.Normalize(teamName)
	if owner == team {
		return true
	}
	parts := strings.Fields(team)
	if len(parts) == 0 {
		return false
	}
	return strings.Contains(owner, parts[len(parts)-1])
}

// namingSponsor derives a naming-rights sponsor when the stadium name
// carries a corporate owner distinct from the team.
func namingSponsor(venue *wikidata.Venue) (schema.SponsorInfo, bool) {
	owner := strings.TrimSpace(venue.OwnerLabel)
	if owner == "" || !isCorporate(owner) {
		return schema.SponsorInfo{}, false
	}
	// Only count the owner as a sponsor when its brand appears in the
	// venue name, the usual shape of a naming-rights deal.
	brand := strings.Fields(wikidata.Normalize(owner))[0]
	if !strings.Contains(wikidata.Normalize(venue.StadiumName), brand) {
		return schema.SponsorInfo{}, false
	}
	category := "naming_rights"
	asset := "stadium"
	return schema.SponsorInfo{
		Name:      owner,
		Category:  &category,
		AssetType: &asset,
	}, true
}

func isCorporate(label string) bool {
	lower := wikidata.Normalize(label)
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
