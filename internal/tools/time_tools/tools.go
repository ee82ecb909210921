package time_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/schedbot/schedbot/internal/calendar"
	"github.com/schedbot/schedbot/internal/instrumentation"
	"github.com/schedbot/schedbot/internal/server"
	"github.com/schedbot/schedbot/internal/timeutil"
	"github.com/schedbot/schedbot/internal/tools/common"
)

// RegisterTimeTools registers clock-related tools with the MCP server
func RegisterTimeTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	currentTimeTool := mcp.NewTool("get_current_time",
		mcp.WithDescription("Get the current date and time in the server's timezone. Useful to anchor relative expressions like 'tomorrow' or 'next week'."),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone to report the time in (e.g., 'America/Chicago'). Defaults to the server timezone."),
		),
	)

	s.AddTool(currentTimeTool, common.InstrumentedToolHandlerWithService(
		"get_current_time", instrumentation.ServiceTime, "now", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCurrentTime(request, sc)
		}))

	currentDateTool := mcp.NewTool("get_current_date",
		mcp.WithDescription("Get today's date (YYYY-MM-DD) in the server's timezone"),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone to report the date in (e.g., 'America/Chicago'). Defaults to the server timezone."),
		),
	)

	s.AddTool(currentDateTool, common.InstrumentedToolHandlerWithService(
		"get_current_date", instrumentation.ServiceTime, "today", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCurrentDate(request, sc)
		}))

	return nil
}

func zoneFromArgs(request mcp.CallToolRequest, sc *server.ServerContext) string {
	if zoneVal, ok := request.GetArguments()["timezone"].(string); ok && zoneVal != "" {
		return zoneVal
	}
	if zone := sc.CalendarConfig().TimeZone; zone != "" {
		return zone
	}
	return calendar.DefaultTimeZone
}

func handleCurrentTime(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	now, err := timeutil.CurrentTime(zoneFromArgs(request, sc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve current time: %v", err)), nil
	}
	return mcp.NewToolResultText(now), nil
}

func handleCurrentDate(request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	today, err := timeutil.CurrentDate(zoneFromArgs(request, sc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve current date: %v", err)), nil
	}
	return mcp.NewToolResultText(today), nil
}
