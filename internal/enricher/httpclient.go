package enricher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// NewHTTPClient returns the HTTP client shape shared by the built-in
// modules. Redirect following stays on: several sources (Forbes, team
// sites) redirect to canonical URLs.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// GetJSON performs a GET and decodes a JSON response into v. Rate-limit and
// server-side failures come back as TransientError so the executor retries
// them; anything else is terminal.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, params url.Values, headers map[string]string, v any) error {
	body, err := Get(ctx, client, rawURL, params, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response from %s: %w", rawURL, err)
	}
	return nil
}

// Get performs a GET and returns the response body. Status classification:
// 429 and 5xx are transient, other non-2xx are terminal.
func Get(ctx context.Context, client *http.Client, rawURL string, params url.Values, headers map[string]string) ([]byte, error) {
	u := rawURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		// Client.Do errors are network-level: timeouts, resets, DNS.
		return nil, Transient(fmt.Errorf("http request %s: %w", rawURL, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transient(fmt.Errorf("read response body: %w", err))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, Transientf("%s returned %d: %s", rawURL, resp.StatusCode, truncate(body, 200))
	default:
		return nil, fmt.Errorf("%s returned %d: %s", rawURL, resp.StatusCode, truncate(body, 200))
	}
}

// PostJSON performs a JSON POST and decodes the JSON response into out.
// Same status classification as Get.
func PostJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Transient(fmt.Errorf("http request %s: %w", rawURL, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transient(fmt.Errorf("read response body: %w", err))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", rawURL, err)
		}
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Transientf("%s returned %d: %s", rawURL, resp.StatusCode, truncate(body, 200))
	default:
		return fmt.Errorf("%s returned %d: %s", rawURL, resp.StatusCode, truncate(body, 200))
	}
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
