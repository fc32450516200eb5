package schema

import "fmt"

// Field groups for display, mirroring the dashboard's metric grouping.
type FieldGroup struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
}

// FieldGroups lists every group in display order. The per-group field order
// is the canonical field order used by the diff engine.
var FieldGroups = []FieldGroup{
	{
		ID:    "core",
		Label: "Core Information",
		Fields: []string{
			"name", "region", "league", "category",
			"target_demographic", "official_url", "logo_url",
		},
	},
	{
		ID:    "geographic",
		Label: "Geographic Data",
		Fields: []string{
			"geo_city", "geo_country", "city_population", "metro_gdp_millions",
		},
	},
	{
		ID:    "social",
		Label: "Social & Audience",
		Fields: []string{
			"social_handles", "followers_x", "followers_instagram",
			"followers_facebook", "followers_tiktok", "subscribers_youtube",
			"avg_game_attendance",
		},
	},
	{
		ID:     "family",
		Label:  "Family Friendliness",
		Fields: []string{"family_program_count", "family_program_types"},
	},
	{
		ID:     "inventory",
		Label:  "Inventory & Sponsors",
		Fields: []string{"owns_stadium", "stadium_name", "sponsors"},
	},
	{
		ID:    "valuation",
		Label: "Pricing & Valuation",
		Fields: []string{
			"avg_ticket_price", "franchise_value_millions", "annual_revenue_millions",
		},
	},
	{
		ID:     "brand",
		Label:  "Brand Alignment",
		Fields: []string{"mission_tags", "community_programs", "cause_partnerships"},
	},
}

// EnrichmentFields returns every enrichment field name in canonical order
// (group order, then declaration order within the group). Core identity
// fields are excluded: they are never written by enrichers.
func EnrichmentFields() []string {
	var fields []string
	for _, g := range FieldGroups {
		if g.ID == "core" {
			continue
		}
		fields = append(fields, g.Fields...)
	}
	return fields
}

// IsEnrichmentField reports whether name is a recognized enrichment field.
func IsEnrichmentField(name string) bool {
	for _, g := range FieldGroups {
		if g.ID == "core" {
			continue
		}
		for _, f := range g.Fields {
			if f == name {
				return true
			}
		}
	}
	return false
}

// Value returns the current value of an enrichment field, or nil if the
// field is absent. Pointer scalars are dereferenced; nil slices stay nil so
// "absent" is uniform across field kinds.
func Value(t *TeamRecord, field string) any {
	switch field {
	case "geo_city":
		return deref(t.GeoCity)
	case "geo_country":
		return deref(t.GeoCountry)
	case "city_population":
		return deref(t.CityPopulation)
	case "metro_gdp_millions":
		return deref(t.MetroGDPMillion)
	case "social_handles":
		if t.SocialHandles == nil {
			return nil
		}
		return t.SocialHandles
	case "followers_x":
		return deref(t.FollowersX)
	case "followers_instagram":
		return deref(t.FollowersInstagram)
	case "followers_facebook":
		return deref(t.FollowersFacebook)
	case "followers_tiktok":
		return deref(t.FollowersTikTok)
	case "subscribers_youtube":
		return deref(t.SubscribersYouTube)
	case "avg_game_attendance":
		return deref(t.AvgGameAttendance)
	case "family_program_count":
		return deref(t.FamilyProgramCount)
	case "family_program_types":
		if t.FamilyProgramTypes == nil {
			return nil
		}
		return t.FamilyProgramTypes
	case "owns_stadium":
		return deref(t.OwnsStadium)
	case "stadium_name":
		return deref(t.StadiumName)
	case "sponsors":
		if t.Sponsors == nil {
			return nil
		}
		return t.Sponsors
	case "avg_ticket_price":
		return deref(t.AvgTicketPrice)
	case "franchise_value_millions":
		return deref(t.FranchiseValueMillion)
	case "annual_revenue_millions":
		return deref(t.AnnualRevenueMillion)
	case "mission_tags":
		if t.MissionTags == nil {
			return nil
		}
		return t.MissionTags
	case "community_programs":
		if t.CommunityPrograms == nil {
			return nil
		}
		return t.CommunityPrograms
	case "cause_partnerships":
		if t.CausePartnerships == nil {
			return nil
		}
		return t.CausePartnerships
	default:
		return nil
	}
}

// SetField writes an enrichment field. Numeric values are coerced so that
// values decoded from JSON (float64) and values produced natively (int,
// float64) both apply cleanly. A nil value is rejected: modules cannot
// clear fields through the orchestrator.
func SetField(t *TeamRecord, field string, value any) error {
	if value == nil {
		return fmt.Errorf("field %q: nil value not allowed", field)
	}
	switch field {
	case "geo_city":
		return setString(&t.GeoCity, field, value)
	case "geo_country":
		return setString(&t.GeoCountry, field, value)
	case "city_population":
		return setInt(&t.CityPopulation, field, value)
	case "metro_gdp_millions":
		return setFloat(&t.MetroGDPMillion, field, value)
	case "social_handles":
		v, ok := value.([]SocialHandle)
		if !ok {
			return typeError(field, value)
		}
		t.SocialHandles = v
	case "followers_x":
		return setInt(&t.FollowersX, field, value)
	case "followers_instagram":
		return setInt(&t.FollowersInstagram, field, value)
	case "followers_facebook":
		return setInt(&t.FollowersFacebook, field, value)
	case "followers_tiktok":
		return setInt(&t.FollowersTikTok, field, value)
	case "subscribers_youtube":
		return setInt(&t.SubscribersYouTube, field, value)
	case "avg_game_attendance":
		return setInt(&t.AvgGameAttendance, field, value)
	case "family_program_count":
		return setInt(&t.FamilyProgramCount, field, value)
	case "family_program_types":
		return setStringSlice(&t.FamilyProgramTypes, field, value)
	case "owns_stadium":
		v, ok := value.(bool)
		if !ok {
			return typeError(field, value)
		}
		t.OwnsStadium = &v
	case "stadium_name":
		return setString(&t.StadiumName, field, value)
	case "sponsors":
		v, ok := value.([]SponsorInfo)
		if !ok {
			return typeError(field, value)
		}
		t.Sponsors = v
	case "avg_ticket_price":
		return setFloat(&t.AvgTicketPrice, field, value)
	case "franchise_value_millions":
		return setFloat(&t.FranchiseValueMillion, field, value)
	case "annual_revenue_millions":
		return setFloat(&t.AnnualRevenueMillion, field, value)
	case "mission_tags":
		return setStringSlice(&t.MissionTags, field, value)
	case "community_programs":
		return setStringSlice(&t.CommunityPrograms, field, value)
	case "cause_partnerships":
		return setStringSlice(&t.CausePartnerships, field, value)
	default:
		return fmt.Errorf("unknown enrichment field %q", field)
	}
	return nil
}

// --------------------------------------------------------------------------
// Coercion helpers
// --------------------------------------------------------------------------

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func setString(dst **string, field string, value any) error {
	v, ok := value.(string)
	if !ok {
		return typeError(field, value)
	}
	*dst = &v
	return nil
}

func setInt(dst **int, field string, value any) error {
	var v int
	switch n := value.(type) {
	case int:
		v = n
	case int64:
		v = int(n)
	case float64:
		v = int(n)
	default:
		return typeError(field, value)
	}
	*dst = &v
	return nil
}

func setFloat(dst **float64, field string, value any) error {
	var v float64
	switch n := value.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	default:
		return typeError(field, value)
	}
	*dst = &v
	return nil
}

func setStringSlice(dst *[]string, field string, value any) error {
	switch v := value.(type) {
	case []string:
		*dst = v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return typeError(field, value)
			}
			out = append(out, s)
		}
		*dst = out
	default:
		return typeError(field, value)
	}
	return nil
}

func typeError(field string, value any) error {
	return fmt.Errorf("field %q: unsupported value type %T", field, value)
}
