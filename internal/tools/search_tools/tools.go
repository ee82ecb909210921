package search_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/schedbot/schedbot/internal/instrumentation"
	"github.com/schedbot/schedbot/internal/search"
	"github.com/schedbot/schedbot/internal/server"
	"github.com/schedbot/schedbot/internal/tools/common"
)

// RegisterSearchTools registers web search tools with the MCP server
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	webSearchTool := mcp.NewTool("web_search",
		mcp.WithDescription("Search the web using the DuckDuckGo Instant Answer API. Returns a list of results with title, text and URL."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results to return (default: 5)"),
		),
	)

	s.AddTool(webSearchTool, common.InstrumentedToolHandlerWithService(
		"web_search", instrumentation.ServiceSearch, "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleWebSearch(ctx, sc, request)
		}))

	return nil
}

func handleWebSearch(ctx context.Context, sc *server.ServerContext, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	maxResults := search.DefaultMaxResults
	if raw, ok := args["max_results"].(float64); ok && raw > 0 {
		maxResults = int(raw)
	}

	results, err := sc.SearchClient().Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode search results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
