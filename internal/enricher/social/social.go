// Package social collects social media handles and follower counts. Handles
// come from WikiData (bulk-prefetched per league); follower counts come
// from the platform APIs that have credentials configured.
package social

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/playmaker/playmaker-data/internal/enricher"
	"github.com/playmaker/playmaker-data/internal/enricher/wikidata"
	"github.com/playmaker/playmaker-data/internal/schema"
)

const (
	xUserURL       = "https://api.twitter.com/2/users/by/username/"
	youtubeChanURL = "https://www.googleapis.com/youtube/v3/channels"
	metaGraphURL   = "https://graph.facebook.com/v19.0/"
)

// Keys holds the platform credentials the enricher may use. Any of them may
// be empty; handles still resolve through WikiData without keys.
type Keys struct {
	XBearerToken string
	YouTubeKey   string
	MetaToken    string
}

// Enricher adds social handles and follower counts.
type Enricher struct {
	keys       Keys
	wikidata   *wikidata.Client
	httpClient *http.Client
}

// New creates the social enricher sharing the given WikiData client.
func New(keys Keys, wd *wikidata.Client, timeout time.Duration) *Enricher {
	return &Enricher{
		keys:       keys,
		wikidata:   wd,
		httpClient: enricher.NewHTTPClient(timeout),
	}
}

func (e *Enricher) ID() string   { return "social" }
func (e *Enricher) Name() string { return "Social Media Enricher" }
func (e *Enricher) Description() string {
	return "Collects social media handles and follower counts from X, Instagram, Facebook, TikTok, and YouTube"
}
func (e *Enricher) FieldsAdded() []string {
	return []string{
		"social_handles", "followers_x", "followers_instagram",
		"followers_facebook", "followers_tiktok", "subscribers_youtube",
	}
}
func (e *Enricher) Available() bool { return true }

// PreRun bulk-prefetches WikiData handles, one query per league in the
// dataset. A league that fails to prefetch only degrades lookups; it does
// not fail the module.
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

// PostRun releases idle connections.
func (e *Enricher) PostRun(_ context.Context, _ []schema.TeamRecord) {
	e.httpClient.CloseIdleConnections()
}

// EnrichOne resolves handles for the team and fetches follower counts for
// every platform with credentials, in parallel.
func (e *Enricher) EnrichOne(ctx context.Context, team *schema.TeamRecord) (enricher.Outcome, error) {
	handles, ok := e.wikidata.TeamHandles(team.Name)
	if !ok || len(handles) == 0 {
		return enricher.Skipped(enricher.SkipNotApplicable), nil
	}

	if team.SocialHandles != nil && team.FollowersX != nil && team.SubscribersYouTube != nil {
		return enricher.Skipped(enricher.SkipAlreadyEnriched), nil
	}

	fields := map[string]any{
		"social_handles": buildHandles(handles),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	if handle := handles["x"]; handle != "" && e.keys.XBearerToken != "" {
		g.Go(func() error {
			n, err := e.fetchXFollowers(gctx, handle)
			if err != nil {
				return err
			}
			mu.Lock()
			fields["followers_x"] = n
			mu.Unlock()
			return nil
		})
	}
	if channelID := handles["youtube"]; channelID != "" && e.keys.YouTubeKey != "" {
		g.Go(func() error {
			n, err := e.fetchYouTubeSubscribers(gctx, channelID)
			if err != nil {
				return err
			}
			mu.Lock()
			fields["subscribers_youtube"] = n
			mu.Unlock()
			return nil
		})
	}
	if handle := handles["facebook"]; handle != "" && e.keys.MetaToken != "" {
		g.Go(func() error {
			n, err := e.fetchFacebookFollowers(gctx, handle)
			if err != nil {
				return err
			}
			mu.Lock()
			fields["followers_facebook"] = n
			mu.Unlock()
			return nil
		})
	}
	if handle := handles["instagram"]; handle != "" {
		g.Go(func() error {
			n, err := e.fetchInstagramFollowers(gctx, handle)
			if err != nil || n == 0 {
				// Public profile pages often withhold the count; that is
				// a missing value, not a module failure.
				return nil
			}
			mu.Lock()
			fields["followers_instagram"] = n
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return enricher.Outcome{}, err
	}
	return enricher.Updated(fields), nil
}

// fetchXFollowers resolves a public follower count via the X API.
func (e *Enricher) fetchXFollowers(ctx context.Context, handle string) (int, error) {
	params := url.Values{}
	params.Set("user.fields", "public_metrics")

	var resp struct {
		Data struct {
			PublicMetrics struct {
				FollowersCount int `json:"followers_count"`
			} `json:"public_metrics"`
		} `json:"data"`
	}
	headers := map[string]string{"Authorization": "Bearer " + e.keys.XBearerToken}
	if err := enricher.GetJSON(ctx, e.httpClient, xUserURL+url.PathEscape(handle), params, headers, &resp); err != nil {
		return 0, fmt.Errorf("x followers for %s: %w", handle, err)
	}
	return resp.Data.PublicMetrics.FollowersCount, nil
}

// fetchYouTubeSubscribers resolves a channel's subscriber count. The
// WikiData P2397 value is the stable channel ID.
func (e *Enricher) fetchYouTubeSubscribers(ctx context.Context, channelID string) (int, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", channelID)
	params.Set("key", e.keys.YouTubeKey)

	var resp struct {
		Items []struct {
			Statistics struct {
				SubscriberCount string `json:"subscriberCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := enricher.GetJSON(ctx, e.httpClient, youtubeChanURL, params, nil, &resp); err != nil {
		return 0, fmt.Errorf("youtube subscribers for %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return 0, fmt.Errorf("youtube channel %s not found", channelID)
	}
	n, err := strconv.Atoi(resp.Items[0].Statistics.SubscriberCount)
	if err != nil {
		return 0, fmt.Errorf("parse subscriber count: %w", err)
	}
	return n, nil
}

// fetchFacebookFollowers resolves a page's follower count via the Meta
// Graph API. WikiData P2013 values are page usernames the Graph API
// resolves directly.
func (e *Enricher) fetchFacebookFollowers(ctx context.Context, handle string) (int, error) {
	params := url.Values{}
	params.Set("fields", "followers_count")
	params.Set("access_token", e.keys.MetaToken)

	var resp struct {
		FollowersCount int `json:"followers_count"`
	}
	if err := enricher.GetJSON(ctx, e.httpClient, metaGraphURL+url.PathEscape(handle), params, nil, &resp); err != nil {
		return 0, fmt.Errorf("facebook followers for %s: %w", handle, err)
	}
	return resp.FollowersCount, nil
}

// instagramFollowersRe matches the follower figure Instagram embeds in the
// og:description meta tag, e.g. `content="1.2M Followers, 310 Following"`.
var instagramFollowersRe = regexp.MustCompile(`(?i)content="([\d][\d,.]*)\s*([KMB])?\s+Followers`)

// fetchInstagramFollowers scrapes the public profile page. No API key
// exists for this; the count lives in the page's og:description.
func (e *Enricher) fetchInstagramFollowers(ctx context.Context, handle string) (int, error) {
	body, err := enricher.Get(ctx, e.httpClient, "https://www.instagram.com/"+url.PathEscape(handle)+"/", nil, nil)
	if err != nil {
		return 0, err
	}
	m := instagramFollowersRe.FindSubmatch(body)
	if m == nil {
		return 0, nil
	}
	return parseCompactCount(string(m[1]), string(m[2])), nil
}

// parseCompactCount converts figures like "1.2"+"M" or "12,345"+"" to an
// absolute count.
func parseCompactCount(num, suffix string) int {
	num = strings.ReplaceAll(num, ",", "")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	switch strings.ToUpper(suffix) {
	case "K":
		f *= 1_000
	case "M":
		f *= 1_000_000
	case "B":
		f *= 1_000_000_000
	}
	return int(f)
}

// buildHandles converts the WikiData platform map into schema handles with
// profile URLs, in stable platform order.
func buildHandles(handles wikidata.Handles) []schema.SocialHandle {
	var out []schema.SocialHandle
	for _, platform := range []string{"x", "instagram", "facebook", "tiktok", "youtube"} {
		handle := handles[platform]
		if handle == "" {
			continue
		}
		sh := schema.SocialHandle{Platform: platform, Handle: handle}
		if u := profileURL(platform, handle); u != "" {
			sh.URL = &u
		}
		if platform == "youtube" {
			id := handle
			sh.UniqueID = &id
		}
		out = append(out, sh)
	}
	return out
}

func profileURL(platform, handle string) string {
	switch platform {
	case "x":
		return "https://x.com/" + handle
	case "instagram":
		return "https://www.instagram.com/" + handle
	case "facebook":
		return "https://www.facebook.com/" + handle
	case "tiktok":
		return "https://www.tiktok.com/@" + handle
	case "youtube":
		return "https://www.youtube.com/channel/" + handle
	}
	return ""
}
