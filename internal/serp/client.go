package serp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://serpapi.com"
	defaultEngine  = "google"

	// keyPlaceholder is the template value people leave in .env files.
	// A key containing it is treated the same as no key at all.
	keyPlaceholder = "your_api_key_here"
)

var (
	// ErrMissingKey indicates no usable API key was configured.
	ErrMissingKey = errors.New("serp: api key missing or placeholder")
	// ErrEmptyQuery indicates the caller passed an empty query string.
	ErrEmptyQuery = errors.New("serp: empty query")
)

// Result is a single organic search result, in provider order. Order
// matters to callers: first-match-wins policies depend on it.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Client is a minimal HTTP client for the SerpAPI Google Search endpoint.
type Client struct {
	apiKey  string
	baseURL string
	engine  string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets a custom http.Client (e.g. with proxy or custom transport).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithEngine overrides the search engine parameter.
func WithEngine(engine string) Option {
	return func(c *Client) { c.engine = engine }
}

// NewClient constructs a Client with sane defaults. The key is validated
// lazily on Search, so a keyless client can still be constructed.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		engine:  defaultEngine,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// searchResponse models the slice of the SerpAPI payload we care about.
// The provider reports its own failures in-band via the "error" field.
type searchResponse struct {
	Error          string   `json:"error"`
	OrganicResults []Result `json:"organic_results"`
}

// Search performs a single search round trip and returns the organic
// results in provider order. No retries, no caching. query must be
// non-empty and num >= 1.
func (c *Client) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if num < 1 {
		return nil, fmt.Errorf("serp: num must be >= 1, got %d", num)
	}
	if c.apiKey == "" || strings.Contains(c.apiKey, keyPlaceholder) {
		return nil, ErrMissingKey
	}

	q := url.Values{}
	q.Set("engine", c.engine)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(num))
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serp: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serp: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("serp: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("serp: http %d: %s", resp.StatusCode, clip(string(body), 200))
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("serp: decode response: %w", err)
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("serp: provider error: %s", sr.Error)
	}
	return sr.OrganicResults, nil
}

func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
