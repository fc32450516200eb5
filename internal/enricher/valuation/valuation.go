// Package valuation extracts franchise value and revenue figures from
// published Forbes valuation lists.
package valuation

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/schema"
)

// listURLs maps major leagues to their Forbes valuation list. Minor and
// development leagues have no published valuations.
var listURLs = map[string]string{
	"MLB": "https://www.forbes.com/mlb-valuations/list/",
	"NBA": "https://www.forbes.com/nba-valuations/list/",
	"NFL": "https://www.forbes.com/nfl-valuations/list/",
	"NHL": "https://www.forbes.com/nhl-valuations/list/",
}

// moneyRe matches "$7.01B", "$950M", "$1,200M" style figures.
var moneyRe = regexp.MustCompile(`\$([\d,]+(?:\.\d+)?)\s*([BbMm])`)

// Enricher scrapes Forbes valuation pages, one fetch per league per run.
type Enricher struct {
	httpClient *http.Client

	mu        sync.Mutex
	pageCache map[string]string // league -> page text
}

// New creates the valuation enricher.
func New(timeout time.Duration) *Enricher {
	return &Enricher{
		httpClient: enricher.NewHTTPClient(timeout),
		pageCache:  make(map[string]string),
	}
}

func (e *Enricher) ID() string   { return "valuation" }
func (e *Enricher) Name() string { return "Valuation Enricher" }
func (e *Enricher) Description() string {
	return "Adds franchise value and annual revenue figures from Forbes valuation lists"
}
func (e *Enricher) FieldsAdded() []string {
	return []string{"franchise_value_millions", "annual_revenue_millions"}
}
func (e *Enricher) Available() bool { return true }

// PreRun resets the per-run page cache.
func (e *Enricher) PreRun(_ context.Context, _ []schema.TeamRecord) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pageCache = make(map[string]string)
	return nil
}

// PostRun releases idle connections.
func (e *Enricher) PostRun(_ context.Context, _ []schema.TeamRecord) {
	e.httpClient.CloseIdleConnections()
}

// EnrichOne finds the team's row on its league valuation list. Teams in
// leagues without published valuations are not applicable.
func (e *Enricher) EnrichOne(ctx context.Context, team *schema.TeamRecord) (enricher.Outcome, error) {
	listURL, ok := listURLs[team.League]
	if !ok {
		return enricher.Skipped(enricher.SkipNotApplicable), nil
	}
	if team.FranchiseValueMillion != nil && team.AnnualRevenueMillion != nil {
		return enricher.Skipped(enricher.SkipAlreadyEnriched), nil
	}

	page, err := e.fetchList(ctx, team.League, listURL)
	if err != nil {
		return enricher.Outcome{}, err
	}

	value, revenue, found := findTeamFigures(page, team.Name)
	if !found {
		return enricher.Skipped(enricher.SkipNotApplicable), nil
	}

	fields := map[string]any{"franchise_value_millions": value}
	if revenue > 0 {
		fields["annual_revenue_millions"] = revenue
	}
	return enricher.Updated(fields), nil
}

// fetchList fetches a league valuation page once per run.
func (e *Enricher) fetchList(ctx context.Context, league, listURL string) (string, error) {
	e.mu.Lock()
	if page, ok := e.pageCache[league]; ok {
		e.mu.Unlock()
		return page, nil
	}
	e.mu.Unlock()

	body, err := enricher.Get(ctx, e.httpClient, listURL, nil, map[string]string{
		"Accept": "text/html,application/xhtml+xml",
	})
	if err != nil {
		return "", err
	}

	page := string(body)
	e.mu.Lock()
	e.pageCache[league] = page
	e.mu.Unlock()
	return page, nil
}

// findTeamFigures locates the team name in the page and parses the first
// two dollar figures after it: franchise value, then revenue. Revenue is 0
// when only one figure appears near the name.
func findTeamFigures(page, teamName string) (value, revenue float64, found bool) {
	idx := strings.Index(strings.ToLower(page), strings.ToLower(teamName))
	if idx < 0 {
		return 0, 0, false
	}

	// Figures for a row sit within a few hundred bytes of the name.
	window := page[idx:]
	if len(window) > 600 {
		window = window[:600]
	}

	matches := moneyRe.FindAllStringSubmatch(window, 2)
	if len(matches) == 0 {
		return 0, 0, false
	}

	value = toMillions(matches[0])
	if len(matches) > 1 {
		revenue = toMillions(matches[1])
	}
	return value, revenue, true
}

// toMillions converts a moneyRe match to millions of dollars.
func toMillions(match []string) float64 {
	n, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	if strings.EqualFold(match[2], "b") {
		return n * 1000
	}
	return n
}
