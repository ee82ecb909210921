// Package search provides web lookups via the DuckDuckGo Instant Answer
// API, backing the web_search tool.
package search
