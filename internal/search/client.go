package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the DuckDuckGo Instant Answer API endpoint.
const DefaultBaseURL = "https://api.duckduckgo.com/"

// DefaultMaxResults caps how many hits a search returns.
const DefaultMaxResults = 5

const defaultTimeout = 15 * time.Second

// Client queries the DuckDuckGo Instant Answer API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for searches.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a web search client.
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

// Search runs the query and returns up to maxResults hits. The instant
// answer (abstract or direct answer) comes first when present, followed
// by related topics with their nested categories flattened.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if query == "" {
		return nil, &SearchError{Op: "search", Err: fmt.Errorf("query cannot be empty")}
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	endpoint := fmt.Sprintf("%s?q=%s&format=json&no_html=1&skip_disambig=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &SearchError{Op: "search", Query: query, Err: fmt.Errorf("failed to build request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SearchError{Op: "search", Query: query, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &SearchError{
			Op:    "search",
			Query: query,
			Err:   fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body),
		}
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, &SearchError{Op: "search", Query: query, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return collectResults(&answer, maxResults), nil
}

// collectResults turns an instant answer payload into a flat result list.
func collectResults(answer *instantAnswer, maxResults int) []Result {
	results := make([]Result, 0, maxResults)

	if answer.Answer != "" {
		results = append(results, Result{Title: answer.Heading, Text: answer.Answer})
	} else if answer.AbstractText != "" {
		results = append(results, Result{
			Title: answer.Heading,
			Text:  answer.AbstractText,
			URL:   answer.AbstractURL,
		})
	}

	results = appendTopics(results, answer.RelatedTopics, maxResults)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func appendTopics(results []Result, topics []relatedTopic, maxResults int) []Result {
	for _, topic := range topics {
		if len(results) >= maxResults {
			break
		}
		if len(topic.Topics) > 0 {
			results = appendTopics(results, topic.Topics, maxResults)
			continue
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, Result{Text: topic.Text, URL: topic.FirstURL})
	}
	return results
}
