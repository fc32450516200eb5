// Package wikidata provides the shared SPARQL client the social and
// sponsor enrichers use to resolve team entities. Queries are batched per
// league and cached for the lifetime of one module run.
package wikidata

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/playmaker/playmaker-data/internal/enricher"
)

const sparqlEndpoint = "https://query.wikidata.org/sparql"

// Handles maps platform id ("x", "instagram", ...) to handle for one team.
type Handles map[string]string

// Venue is the home-venue data WikiData knows for one team.
type Venue struct {
	StadiumName string
	OwnerLabel  string
}

// Client queries WikiData with per-run caching keyed by normalized team
// name. Safe for concurrent use by executor workers.
type Client struct {
	httpClient *http.Client

	mu             sync.Mutex
	handlesByTeam  map[string]Handles
	venueByTeam    map[string]*Venue
	fetchedLeagues map[string]bool
}

// New creates a client with a fresh cache.
func New(timeout time.Duration) *Client {
	return &Client{
		httpClient:     enricher.NewHTTPClient(timeout),
		handlesByTeam:  make(map[string]Handles),
		venueByTeam:    make(map[string]*Venue),
		fetchedLeagues: make(map[string]bool),
	}
}

// sparqlResponse is the SPARQL JSON results envelope.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// PrefetchLeague bulk-loads handles and venues for every team in a league
// with one query per league. Duplicate calls are no-ops.
func (c *Client) PrefetchLeague(ctx context.Context, league string) error {
	c.mu.Lock()
	if c.fetchedLeagues[league] {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	query := `
SELECT ?teamLabel ?x ?instagram ?facebook ?tiktok ?youtube ?venueLabel ?ownerLabel WHERE {
  ?team wdt:P118 ?league .
  ?league rdfs:label "` + escape(league) + `"@en .
  OPTIONAL { ?team wdt:P2002 ?x . }
  OPTIONAL { ?team wdt:P2003 ?instagram . }
  OPTIONAL { ?team wdt:P2013 ?facebook . }
  OPTIONAL { ?team wdt:P7085 ?tiktok . }
  OPTIONAL { ?team wdt:P2397 ?youtube . }
  OPTIONAL { ?team wdt:P115 ?venue . OPTIONAL { ?venue wdt:P127 ?owner . } }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}`

	params := url.Values{}
	params.Set("query", query)
	params.Set("format", "json")

	var resp sparqlResponse
	err := enricher.GetJSON(ctx, c.httpClient, sparqlEndpoint, params,
		map[string]string{"Accept": "application/sparql-results+json"}, &resp)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range resp.Results.Bindings {
		name := b["teamLabel"].Value
		if name == "" {
			continue
		}
		key := Normalize(name)

		handles := c.handlesByTeam[key]
		if handles == nil {
			handles = make(Handles)
			c.handlesByTeam[key] = handles
		}
		for _, platform := range []string{"x", "instagram", "facebook", "tiktok", "youtube"} {
			if v := b[platform].Value; v != "" {
				handles[platform] = v
			}
		}

		if venue := b["venueLabel"].Value; venue != "" {
			c.venueByTeam[key] = &Venue{
				StadiumName: venue,
				OwnerLabel:  b["ownerLabel"].Value,
			}
		}
	}
	c.fetchedLeagues[league] = true
	return nil
}

// TeamHandles returns cached handles for a team. Lookup falls back to the
// team nickname (last name component) since scraped names and WikiData
// labels disagree on city prefixes.
func (c *Client) TeamHandles(teamName string) (Handles, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.handlesByTeam[Normalize(teamName)]; ok {
		return h, true
	}
	if key, ok := matchKeyByNickname(teamName, keys(c.handlesByTeam)); ok {
		return c.handlesByTeam[key], true
	}
	return nil, false
}

// TeamVenue returns cached venue data for a team.
func (c *Client) TeamVenue(teamName string) (*Venue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.venueByTeam[Normalize(teamName)]; ok {
		return v, true
	}
	if key, ok := matchKeyByNickname(teamName, keys(c.venueByTeam)); ok {
		return c.venueByTeam[key], true
	}
	return nil, false
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// matchKeyByNickname matches "Austin FC" against a cached "austin fc" or a
// differently-prefixed label sharing the final name component.
func matchKeyByNickname(teamName string, keys []string) (string, bool) {
	parts := strings.Fields(Normalize(teamName))
	if len(parts) == 0 {
		return "", false
	}
	nickname := parts[len(parts)-1]
	for _, key := range keys {
		cached := strings.Fields(key)
		if len(cached) > 0 && cached[len(cached)-1] == nickname {
			return key, true
		}
	}
	return "", false
}

// Reset clears the per-run caches.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlesByTeam = make(map[string]Handles)
	c.venueByTeam = make(map[string]*Venue)
	c.fetchedLeagues = make(map[string]bool)
}

// Normalize lowercases and collapses whitespace for cache keys.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
