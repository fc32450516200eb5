// Package schema defines the TeamRecord model and the shared field
// vocabulary. The orchestrator, the diff engine, and the API all reference
// fields through this package so the schema is declared exactly once.
package schema

import "time"

// SocialHandle is one social media profile for a team. For YouTube the
// UniqueID is the channel ID (stable); for other platforms handles may
// change and we store what is available.
type SocialHandle struct {
	Platform string  `json:"platform"` // "x", "instagram", "facebook", "tiktok", "youtube"
	Handle   string  `json:"handle"`
	URL      *string `json:"url,omitempty"`
	UniqueID *string `json:"unique_id,omitempty"`
}

// SponsorInfo is one sponsor partnership.
type SponsorInfo struct {
	Name      string  `json:"name"`
	Category  *string `json:"category,omitempty"`   // e.g. "Apparel", "Beverage"
	AssetType *string `json:"asset_type,omitempty"` // e.g. "Jersey Patch", "Naming Rights"
}

// TeamRecord is one sports team: immutable core identity plus optional
// enrichment fields grouped by domain. Every enrichment field is
// independently nullable.
type TeamRecord struct {
	// Core identity and scraped fields
	Name              string  `json:"name"`
	Region            string  `json:"region"`
	League            string  `json:"league"`
	TargetDemographic string  `json:"target_demographic,omitempty"`
	OfficialURL       string  `json:"official_url,omitempty"`
	Category          string  `json:"category,omitempty"`
	LogoURL           *string `json:"logo_url,omitempty"`

	// Geographic
	GeoCity         *string  `json:"geo_city,omitempty"`
	GeoCountry      *string  `json:"geo_country,omitempty"`
	CityPopulation  *int     `json:"city_population,omitempty"`
	MetroGDPMillion *float64 `json:"metro_gdp_millions,omitempty"`

	// Social / audience
	SocialHandles      []SocialHandle `json:"social_handles,omitempty"`
	FollowersX         *int           `json:"followers_x,omitempty"`
	FollowersInstagram *int           `json:"followers_instagram,omitempty"`
	FollowersFacebook  *int           `json:"followers_facebook,omitempty"`
	FollowersTikTok    *int           `json:"followers_tiktok,omitempty"`
	SubscribersYouTube *int           `json:"subscribers_youtube,omitempty"`
	AvgGameAttendance  *int           `json:"avg_game_attendance,omitempty"`

	// Family friendliness
	FamilyProgramCount *int     `json:"family_program_count,omitempty"`
	FamilyProgramTypes []string `json:"family_program_types,omitempty"`

	// Inventory / sponsors
	OwnsStadium *bool         `json:"owns_stadium,omitempty"`
	StadiumName *string       `json:"stadium_name,omitempty"`
	Sponsors    []SponsorInfo `json:"sponsors,omitempty"`

	// Pricing / valuation
	AvgTicketPrice        *float64 `json:"avg_ticket_price,omitempty"`
	FranchiseValueMillion *float64 `json:"franchise_value_millions,omitempty"`
	AnnualRevenueMillion  *float64 `json:"annual_revenue_millions,omitempty"`

	// Brand alignment
	MissionTags       []string `json:"mission_tags,omitempty"`
	CommunityPrograms []string `json:"community_programs,omitempty"`
	CausePartnerships []string `json:"cause_partnerships,omitempty"`

	// Enrichment metadata
	EnrichmentsApplied []string `json:"enrichments_applied,omitempty"`
	LastEnriched       *string  `json:"last_enriched,omitempty"` // RFC 3339
}

// Key returns the identity key used to match records across snapshots.
func (t *TeamRecord) Key() string {
	return t.Name + "|" + t.League
}

// ApplyEnrichment marks that an enricher wrote at least one field.
func (t *TeamRecord) ApplyEnrichment(enricherID string, now time.Time) {
	for _, id := range t.EnrichmentsApplied {
		if id == enricherID {
			ts := now.UTC().Format(time.RFC3339)
			t.LastEnriched = &ts
			return
		}
	}
	t.EnrichmentsApplied = append(t.EnrichmentsApplied, enricherID)
	ts := now.UTC().Format(time.RFC3339)
	t.LastEnriched = &ts
}

// HasEnrichment reports whether the given enricher has been applied.
func (t *TeamRecord) HasEnrichment(enricherID string) bool {
	for _, id := range t.EnrichmentsApplied {
		if id == enricherID {
			return true
		}
	}
	return false
}
