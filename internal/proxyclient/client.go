// Package proxyclient talks to the character proxy's HTTP surface. Every call
// takes a context so the search pipeline can abort superseded requests, and
// every failure comes back as an *apierr.Error.
package proxyclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"heropick/internal/apierr"
	"heropick/internal/domain"
)

// maxErrorBody caps how much of an error response is kept for diagnostics
const maxErrorBody = 300

// HTTPClient allows injecting a custom transport
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a proxy API client
type Client struct {
	baseURL *url.URL
	http    HTTPClient
}

// New creates a client for the proxy rooted at baseURL (e.g. http://localhost:8787).
// A nil httpClient uses a client with a generous safety timeout; per-request
// deadlines come from the caller's context.
func New(baseURL string, httpClient HTTPClient) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q: scheme and host required", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

// Health calls GET /api/health
func (c *Client) Health(ctx context.Context) (domain.Health, error) {
	var h domain.Health
	err := c.getJSON(ctx, "/api/health", nil, &h)
	return h, err
}

// SearchCharacters calls GET /api/marvel/characters?query=..&limit=..
func (c *Client) SearchCharacters(ctx context.Context, query string, limit int) ([]domain.CharacterSummary, error) {
	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var results []domain.CharacterSummary
	if err := c.getJSON(ctx, "/api/marvel/characters", params, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.CharacterSummary{}
	}
	return results, nil
}

// GetCharacter calls GET /api/marvel/characters/:id
func (c *Client) GetCharacter(ctx context.Context, id int) (domain.CharacterDetail, error) {
	var d domain.CharacterDetail
	err := c.getJSON(ctx, "/api/marvel/characters/"+strconv.Itoa(id), nil, &d)
	return d, err
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := *c.baseURL
	u.Path = u.Path + path
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &apierr.Error{Kind: apierr.NetworkFailure, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The transport error may hide the context's reason; prefer the context's
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return apierr.FromTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apierr.FromStatus(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apierr.FromTransport(fmt.Errorf("%w: %v", ctxErr, err))
		}
		return &apierr.Error{Kind: apierr.UpstreamError, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
