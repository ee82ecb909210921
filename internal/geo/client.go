package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public ip-api.com JSON endpoint. Lookups against
// it resolve the location of the caller's public IP.
const DefaultBaseURL = "http://ip-api.com/json/"

const defaultTimeout = 10 * time.Second

// Client provides IP-based geolocation lookups.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the lookup endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for lookups.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a geolocation client against ip-api.com.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup resolves the location of the caller's public IP address.
func (c *Client) Lookup(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, &GeoError{Op: "lookup", Err: fmt.Errorf("failed to build request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GeoError{Op: "lookup", Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &GeoError{
			Op:  "lookup",
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, &GeoError{Op: "lookup", Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if loc.Status == "fail" {
		return nil, &GeoError{Op: "lookup", Err: fmt.Errorf("lookup failed: %s", loc.Message)}
	}

	return &loc, nil
}
