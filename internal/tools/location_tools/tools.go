package location_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/schedbot/schedbot/internal/instrumentation"
	"github.com/schedbot/schedbot/internal/server"
	"github.com/schedbot/schedbot/internal/tools/common"
)

// RegisterLocationTools registers geolocation tools with the MCP server
func RegisterLocationTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	currentLocationTool := mcp.NewTool("get_current_location",
		mcp.WithDescription("Get the user's current location based on the server's public IP address. Useful to find places nearby."),
	)

	s.AddTool(currentLocationTool, common.InstrumentedToolHandlerWithService(
		"get_current_location", instrumentation.ServiceGeo, "lookup", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCurrentLocation(ctx, sc)
		}))

	return nil
}

func handleCurrentLocation(ctx context.Context, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	loc, err := sc.GeoClient().Lookup(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve location: %v", err)), nil
	}

	payload, err := json.Marshal(loc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode location: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
