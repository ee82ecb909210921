package calendar_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/schedbot/schedbot/internal/calendar"
	"github.com/schedbot/schedbot/internal/instrumentation"
	"github.com/schedbot/schedbot/internal/server"
	"github.com/schedbot/schedbot/internal/tools/common"
)

// getScheduler retrieves the calendar scheduler for the specified account
func getScheduler(account string, sc *server.ServerContext) (*calendar.Scheduler, error) {
	scheduler := sc.SchedulerForAccount(account)
	if scheduler == nil {
		authURL := calendar.GetAuthURLForAccount(account)
		return nil, fmt.Errorf(`Google OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Google Calendar
4. Copy the authorization code

5. Run: schedbot auth --account %s <authorization-code>

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
	}
	return scheduler, nil
}

// RegisterCalendarTools registers all calendar-related tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List events tool (read-only, always available)
	listEventsTool := mcp.NewTool("list_events",
		mcp.WithDescription("List events from all selected calendars within a time range, sorted by start time"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("start_datetime",
			mcp.Required(),
			mcp.Description("Start of the range as a wall-clock datetime (YYYY-MM-DDTHH:MM:SS, no offset)"),
		),
		mcp.WithString("end_datetime",
			mcp.Required(),
			mcp.Description("End of the range as a wall-clock datetime (YYYY-MM-DDTHH:MM:SS, no offset; exclusive)"),
		),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone the datetimes are expressed in (e.g., 'America/Chicago'). Defaults to the server timezone."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of events to fetch per calendar (default: 10)"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandlerWithService(
		"list_events", instrumentation.ServiceCalendar, "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	// Create event tool
	createEventTool := mcp.NewTool("create_event",
		mcp.WithDescription("Create a calendar event"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("start_datetime",
			mcp.Required(),
			mcp.Description("Event start as a wall-clock datetime (YYYY-MM-DDTHH:MM:SS, no offset)"),
		),
		mcp.WithString("end_datetime",
			mcp.Required(),
			mcp.Description("Event end as a wall-clock datetime (YYYY-MM-DDTHH:MM:SS, no offset)"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title/summary"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone the datetimes are expressed in (e.g., 'America/Chicago')"),
		),
		mcp.WithBoolean("add_google_meet",
			mcp.Description("Automatically add a Google Meet link to the event"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithService(
		"create_event", instrumentation.ServiceCalendar, "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	// Update event tool
	updateEventTool := mcp.NewTool("update_event",
		mcp.WithDescription("Update an existing calendar event. Only the supplied fields change; an empty string clears a field."),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("The ID of the event to update"),
		),
		mcp.WithString("start_datetime",
			mcp.Description("New event start as a wall-clock datetime (YYYY-MM-DDTHH:MM:SS, no offset)"),
		),
		mcp.WithString("end_datetime",
			mcp.Description("New event end as a wall-clock datetime (YYYY-MM-DDTHH:MM:SS, no offset)"),
		),
		mcp.WithString("summary",
			mcp.Description("New event title/summary"),
		),
		mcp.WithString("location",
			mcp.Description("New event location"),
		),
		mcp.WithString("description",
			mcp.Description("New event description"),
		),
		mcp.WithString("timezone",
			mcp.Description("IANA timezone the datetimes are expressed in (e.g., 'America/Chicago')"),
		),
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandlerWithService(
		"update_event", instrumentation.ServiceCalendar, "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateEvent(ctx, request, sc)
		}))

	return nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	startStr, ok := args["start_datetime"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("start_datetime is required"), nil
	}
	endStr, ok := args["end_datetime"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("end_datetime is required"), nil
	}

	zone := ""
	if zoneVal, ok := args["timezone"].(string); ok {
		zone = zoneVal
	}

	var maxResults int64
	if maxVal, ok := args["max_results"].(float64); ok {
		maxResults = int64(maxVal)
	}

	scheduler, err := getScheduler(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	views, err := scheduler.ListEvents(ctx, startStr, endStr, maxResults, zone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	payload, err := json.Marshal(views)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode events: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	in := calendar.CreateInput{}

	var ok bool
	if in.Start, ok = args["start_datetime"].(string); !ok || in.Start == "" {
		return mcp.NewToolResultError("start_datetime is required"), nil
	}
	if in.End, ok = args["end_datetime"].(string); !ok || in.End == "" {
		return mcp.NewToolResultError("end_datetime is required"), nil
	}
	if in.Summary, ok = args["summary"].(string); !ok || in.Summary == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}

	if locVal, ok := args["location"].(string); ok {
		in.Location = locVal
	}
	if descVal, ok := args["description"].(string); ok {
		in.Description = descVal
	}
	if zoneVal, ok := args["timezone"].(string); ok {
		in.TimeZone = zoneVal
	}
	if meetVal, ok := args["add_google_meet"].(bool); ok {
		in.AddConference = meetVal
	}

	scheduler, err := getScheduler(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg, err := scheduler.CreateEvent(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	return mcp.NewToolResultText(msg), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	in := calendar.UpdateInput{}

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("event_id is required"), nil
	}
	in.EventID = eventID

	// An argument that is present but empty still counts as supplied, so
	// the scheduler can clear the field.
	if startVal, ok := args["start_datetime"].(string); ok {
		in.Start = &startVal
	}
	if endVal, ok := args["end_datetime"].(string); ok {
		in.End = &endVal
	}
	if summaryVal, ok := args["summary"].(string); ok {
		in.Summary = &summaryVal
	}
	if locVal, ok := args["location"].(string); ok {
		in.Location = &locVal
	}
	if descVal, ok := args["description"].(string); ok {
		in.Description = &descVal
	}
	if zoneVal, ok := args["timezone"].(string); ok {
		in.TimeZone = zoneVal
	}

	scheduler, err := getScheduler(account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg, err := scheduler.UpdateEvent(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update event: %v", err)), nil
	}

	return mcp.NewToolResultText(msg), nil
}
