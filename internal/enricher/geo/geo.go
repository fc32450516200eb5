// Package geo adds geographic data to team records: resolved city, country,
// and city population from the Data Commons API.
package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/schema"
)

const (
	statValueURL = "https://api.datacommons.org/stat/value"
	// Population variable DCID.
	populationVariable = "Count_Person"
)

// Enricher resolves a team's region to a city and fetches its population.
// Population lookups are cached per run: many teams share a market city.
type Enricher struct {
	apiKey     string
	httpClient *http.Client

	mu       sync.Mutex
	popCache map[string]*int // geoID -> population, nil entry = no data
}

// New creates the geo enricher. apiKey may be empty: Data Commons works
// without one, a key only raises quotas.
func New(apiKey string, timeout time.Duration) *Enricher {
	return &Enricher{
		apiKey:     apiKey,
		httpClient: enricher.NewHTTPClient(timeout),
		popCache:   make(map[string]*int),
	}
}

func (e *Enricher) ID() string   { return "geo" }
func (e *Enricher) Name() string { return "Geographic Enricher" }
func (e *Enricher) Description() string {
	return "Adds resolved city, country, and city population data from the Data Commons API"
}
func (e *Enricher) FieldsAdded() []string {
	return []string{"geo_city", "geo_country", "city_population", "metro_gdp_millions"}
}
func (e *Enricher) Available() bool { return true }

// PreRun resets the per-run population cache.
func (e *Enricher) PreRun(_ context.Context, _ []schema.TeamRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.popCache = make(map[string]*int)
	return nil
}

// PostRun releases idle connections.
func (e *Enricher) PostRun(_ context.Context, _ []schema.TeamRecord) {
	e.httpClient.CloseIdleConnections()
}

// EnrichOne resolves the team's city and fetches its population.
func (e *Enricher) EnrichOne(ctx context.Context, team *schema.TeamRecord) (enricher.Outcome, error) {
	city, ok := normalizeCity(team.Region)
	if !ok {
		return enricher.Skipped(enricher.SkipNotApplicable), nil
	}

	if team.GeoCity != nil && team.CityPopulation != nil {
		return enricher.Skipped(enricher.SkipAlreadyEnriched), nil
	}

	fields := map[string]any{
		"geo_city":    city,
		"geo_country": countryFor(city),
	}

	if geoID := cityToGeoID[city]; geoID != "" && team.CityPopulation == nil {
		population, err := e.fetchPopulation(ctx, geoID)
		if err != nil {
			return enricher.Outcome{}, err
		}
		if population != nil {
			fields["city_population"] = *population
		}
	}

	return enricher.Updated(fields), nil
}

// fetchPopulation fetches the population for one GeoID, with caching. A nil
// result with nil error means Data Commons has no value for the place.
func (e *Enricher) fetchPopulation(ctx context.Context, geoID string) (*int, error) {
	e.mu.Lock()
	if cached, ok := e.popCache[geoID]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	params := url.Values{}
	params.Set("place", geoID)
	params.Set("stat_var", populationVariable)
	if e.apiKey != "" {
		params.Set("key", e.apiKey)
	}

	var resp struct {
		Value *float64 `json:"value"`
	}
	if err := enricher.GetJSON(ctx, e.httpClient, statValueURL, params, nil, &resp); err != nil {
		return nil, fmt.Errorf("data commons %s: %w", geoID, err)
	}

	var population *int
	if resp.Value != nil {
		v := int(*resp.Value)
		population = &v
	}

	e.mu.Lock()
	e.popCache[geoID] = population
	e.mu.Unlock()
	return population, nil
}

// normalizeCity resolves a scraped region string to a known city name.
func normalizeCity(region string) (string, bool) {
	cleaned := strings.TrimSpace(region)
	if cleaned == "" {
		return "", false
	}
	if alias, ok := cityAliases[cleaned]; ok {
		cleaned = alias
	}
	if _, ok := cityToGeoID[cleaned]; ok {
		return cleaned, true
	}
	for name := range cityToGeoID {
		if strings.EqualFold(name, cleaned) {
			return name, true
		}
	}
	return "", false
}

func countryFor(city string) string {
	if canadianCities[city] {
		return "CA"
	}
	return "US"
}
