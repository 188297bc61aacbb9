package osrs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public OSRS Wiki real-time prices API.
const DefaultBaseURL = "https://prices.runescape.wiki/api/v1/osrs"

// Client is an HTTP client for the OSRS Wiki prices API.
// The API requires a descriptive User-Agent or requests get blocked.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient creates a client for the given base URL and User-Agent.
// Empty arguments fall back to the public API and a generic agent string.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = "ge-flipper/1.0"
	}
	http := resty.New()
	http.SetTimeout(30 * time.Second)
	http.SetHeader("User-Agent", userAgent)
	http.SetHeader("Accept", "application/json")
	return &Client{http: http, baseURL: baseURL}
}

// getJSON fetches baseURL+path and decodes the JSON body into dst.
func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	resp, err := c.http.R().SetContext(ctx).SetResult(dst).Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("osrs api %s: %w", path, err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("osrs api %s: status %d: %s", path, resp.StatusCode(), resp.String())
	}
	return nil
}

// HealthCheck verifies the upstream API is reachable.
func (c *Client) HealthCheck(ctx context.Context) bool {
	var latest LatestData
	return c.getJSON(ctx, "/latest", &latest) == nil
}
