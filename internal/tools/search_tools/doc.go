// Package search_tools provides MCP tools for web search via the
// DuckDuckGo Instant Answer API.
package search_tools
