package search

import "fmt"

// Result is a single search hit.
type Result struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
}

// instantAnswer mirrors the subset of the DuckDuckGo Instant Answer API
// response the client consumes.
type instantAnswer struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	Answer        string         `json:"Answer"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

// relatedTopic is either a direct topic or a category holding nested topics.
type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

// SearchError represents an error that occurred during a web search
type SearchError struct {
	// Op is the operation that failed (e.g., "search")
	Op string

	// Query is the search query associated with the operation
	Query string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *SearchError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("search %s (query: %s): %v", e.Op, e.Query, e.Err)
	}
	return fmt.Sprintf("search %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *SearchError) Unwrap() error {
	return e.Err
}
