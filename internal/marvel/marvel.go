// Package marvel is the server-side client for the upstream character API.
// It signs every request, throttles outbound calls and maps upstream records
// to the proxy's normalized shapes.
package marvel

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"heropick/internal/domain"
)

// ErrMissingCredentials is returned when either API key is unset
var ErrMissingCredentials = errors.New("marvel: missing public or private key")

// ErrNotFound is returned when a detail lookup yields no record
var ErrNotFound = errors.New("marvel: character not found")

// StatusError is an upstream non-2xx response. Body is passed through verbatim.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("marvel: upstream returned %d", e.Status)
}

// HTTPClient interface allows injecting mock HTTP clients for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Client
type Config struct {
	BaseURL    string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
	Rate       rate.Limit
	Burst      int
}

// Client calls the upstream API
type Client struct {
	baseURL    string
	publicKey  string
	privateKey string
	timeout    time.Duration
	http       HTTPClient
	limiter    *rate.Limiter
	now        func() time.Time
}

// New creates an upstream client. httpClient may be nil.
func New(cfg Config, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(cfg.Rate, burst)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		timeout:    cfg.Timeout,
		http:       httpClient,
		limiter:    limiter,
		now:        time.Now,
	}
}

// HasCredentials reports whether both keys are configured
func (c *Client) HasCredentials() bool {
	return c.publicKey != "" && c.privateKey != ""
}

// PublicKeyLoaded reports whether the public key is configured
func (c *Client) PublicKeyLoaded() bool { return c.publicKey != "" }

// PrivateKeyLoaded reports whether the private key is configured
func (c *Client) PrivateKeyLoaded() bool { return c.privateKey != "" }

// Sign returns the request hash for timestamp ts
func Sign(ts, privateKey, publicKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}

// SearchByName returns characters whose name starts with prefix
func (c *Client) SearchByName(ctx context.Context, prefix string, limit int) ([]domain.CharacterSummary, error) {
	params := url.Values{}
	params.Set("nameStartsWith", prefix)
	params.Set("limit", strconv.Itoa(limit))

	var env envelope
	if err := c.get(ctx, "/characters", params, &env); err != nil {
		return nil, err
	}

	out := make([]domain.CharacterSummary, 0, len(env.Data.Results))
	for _, r := range env.Data.Results {
		out = append(out, domain.CharacterSummary{
			ID:           r.ID,
			Name:         r.Name,
			ThumbnailURL: r.Thumbnail.URL(),
		})
	}
	return out, nil
}

// Character returns the detail record for id
func (c *Client) Character(ctx context.Context, id string) (domain.CharacterDetail, error) {
	var env envelope
	if err := c.get(ctx, "/characters/"+url.PathEscape(id), nil, &env); err != nil {
		return domain.CharacterDetail{}, err
	}
	if len(env.Data.Results) == 0 {
		return domain.CharacterDetail{}, ErrNotFound
	}

	r := env.Data.Results[0]
	desc := r.Description
	if desc == "" {
		desc = "(No description)"
	}
	return domain.CharacterDetail{
		ID:               r.ID,
		Name:             r.Name,
		Description:      desc,
		ThumbnailURL:     r.Thumbnail.URL(),
		ComicsAvailable:  r.Comics.Available,
		SeriesAvailable:  r.Series.Available,
		StoriesAvailable: r.Stories.Available,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if !c.HasCredentials() {
		return ErrMissingCredentials
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("marvel: rate limiter: %w", err)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if params == nil {
		params = url.Values{}
	}
	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	params.Set("ts", ts)
	params.Set("apikey", c.publicKey)
	params.Set("hash", Sign(ts, c.privateKey, c.publicKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("marvel: failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("marvel: failed to call upstream: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("marvel: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("marvel: failed to decode response: %w", err)
	}
	return nil
}
