package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calctl/internal/calendar"
	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/tools/common"
)

// RegisterEventTools registers event-related tools with the MCP server.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List events tool
	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List/search calendar events within a time range"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for the primary calendar)"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Start time for the range (RFC3339 format, e.g., '2026-01-01T00:00:00Z'). Defaults to now."),
		),
		mcp.WithString("timeMax",
			mcp.Description("End time for the range (RFC3339 format). Defaults to seven days after timeMin."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of events to return (default: 10)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional free-text search query to filter events"),
		),
	)

	s.AddTool(listEventsTool, instrumentedEventHandler("calendar_list_events", "list_events", sc, handleListEvents))

	// Get event tool
	getEventTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of a specific calendar event"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for the primary calendar)"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to retrieve"),
		),
	)

	s.AddTool(getEventTool, instrumentedEventHandler("calendar_get_event", "get_event", sc, handleGetEvent))

	// Create event tool
	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a new calendar event (supports all-day, recurring, and Google Meet)"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for the primary calendar)"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title/summary"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start time (RFC3339, or '2006-01-02' for all-day events)"),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End time (RFC3339, or '2006-01-02' for all-day events)"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone (e.g., 'Europe/Berlin'). Defaults to UTC."),
		),
		mcp.WithString("attendees",
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithString("recurrence",
			mcp.Description("Recurrence rule (e.g., 'RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR')"),
		),
		mcp.WithBoolean("allDay",
			mcp.Description("Create as all-day event (uses the date portion of start/end)"),
		),
		mcp.WithBoolean("addGoogleMeet",
			mcp.Description("Request a Google Meet link for the event"),
		),
	)

	s.AddTool(createEventTool, instrumentedEventHandler("calendar_create_event", "create_event", sc, handleCreateEvent))

	// Update event tool
	updateEventTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update an existing calendar event; omitted fields are left unchanged"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for the primary calendar)"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to update"),
		),
		mcp.WithString("summary",
			mcp.Description("New event title/summary"),
		),
		mcp.WithString("description",
			mcp.Description("New event description"),
		),
		mcp.WithString("location",
			mcp.Description("New event location"),
		),
		mcp.WithString("start",
			mcp.Description("New start time (RFC3339, or '2006-01-02' for all-day events)"),
		),
		mcp.WithString("end",
			mcp.Description("New end time (RFC3339, or '2006-01-02' for all-day events)"),
		),
		mcp.WithString("timeZone",
			mcp.Description("Time zone (e.g., 'Europe/Berlin')"),
		),
		mcp.WithString("attendees",
			mcp.Description("New comma-separated list of attendee email addresses"),
		),
		mcp.WithBoolean("allDay",
			mcp.Description("Update to be an all-day event"),
		),
	)

	s.AddTool(updateEventTool, instrumentedEventHandler("calendar_update_event", "update_event", sc, handleUpdateEvent))

	// Delete event tool
	deleteEventTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for the primary calendar)"),
		),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The ID of the event to delete"),
		),
	)

	s.AddTool(deleteEventTool, instrumentedEventHandler("calendar_delete_event", "delete_event", sc, handleDeleteEvent))

	return nil
}

type eventHandler func(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error)

func instrumentedEventHandler(toolName, operation string, sc *server.ServerContext, handler eventHandler) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return common.InstrumentedToolHandlerWithOperation(toolName, operation, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, request, sc)
		})
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	calendarID := getCalendarID(args)

	var opts calendar.ListEventsOptions

	if timeMinStr, ok := args["timeMin"].(string); ok && timeMinStr != "" {
		timeMin, err := time.Parse(time.RFC3339, timeMinStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMin format: %v", err)), nil
		}
		opts.From = timeMin
	}

	if timeMaxStr, ok := args["timeMax"].(string); ok && timeMaxStr != "" {
		timeMax, err := time.Parse(time.RFC3339, timeMaxStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMax format: %v", err)), nil
		}
		opts.To = timeMax
	}

	if maxResults, ok := args["maxResults"].(float64); ok && maxResults > 0 {
		opts.MaxResults = int64(maxResults)
	}

	if queryVal, ok := args["query"].(string); ok {
		opts.Query = queryVal
	}

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := client.ListEvents(calendarID, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	result := fmt.Sprintf("Found %d event(s):\n\n", len(events))
	for i, event := range events {
		result += fmt.Sprintf("%d. %s\n", i+1, event.Summary)
		result += fmt.Sprintf("   ID: %s\n", event.ID)
		result += formatEventTimes(event, "   ")
		if event.Location != "" {
			result += fmt.Sprintf("   Location: %s\n", event.Location)
		}
		if event.MeetLink != "" {
			result += fmt.Sprintf("   Meet: %s\n", event.MeetLink)
		}
		if len(event.Attendees) > 0 {
			result += fmt.Sprintf("   Attendees: %d\n", len(event.Attendees))
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	calendarID := getCalendarID(args)

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.GetEvent(calendarID, eventID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get event: %v", err)), nil
	}

	result := fmt.Sprintf("Event: %s\n", event.Summary)
	result += fmt.Sprintf("ID: %s\n", event.ID)
	result += formatEventTimes(*event, "")
	result += fmt.Sprintf("Status: %s\n", event.Status)
	if event.Description != "" {
		result += fmt.Sprintf("Description: %s\n", event.Description)
	}
	if event.Location != "" {
		result += fmt.Sprintf("Location: %s\n", event.Location)
	}
	if event.Organizer != "" {
		result += fmt.Sprintf("Organizer: %s\n", event.Organizer)
	}
	if event.MeetLink != "" {
		result += fmt.Sprintf("Google Meet: %s\n", event.MeetLink)
	}

	if len(event.Attendees) > 0 {
		result += fmt.Sprintf("\nAttendees (%d):\n", len(event.Attendees))
		for _, att := range event.Attendees {
			result += fmt.Sprintf("  - %s (%s)", att.Email, att.ResponseStatus)
			if att.DisplayName != "" {
				result += fmt.Sprintf(" - %s", att.DisplayName)
			}
			if att.Optional {
				result += " [optional]"
			}
			result += "\n"
		}
	}

	return mcp.NewToolResultText(result), nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	calendarID := getCalendarID(args)

	summary, ok := args["summary"].(string)
	if !ok || summary == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}

	allDay, _ := args["allDay"].(bool)

	startStr, ok := args["start"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("start is required"), nil
	}
	start, err := parseEventArgTime(startStr, allDay)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid start format: %v", err)), nil
	}

	endStr, ok := args["end"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("end is required"), nil
	}
	end, err := parseEventArgTime(endStr, allDay)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid end format: %v", err)), nil
	}

	input := calendar.EventInput{
		Summary: summary,
		Start:   start,
		End:     end,
		AllDay:  allDay,
	}

	if desc, ok := args["description"].(string); ok {
		input.Description = desc
	}
	if loc, ok := args["location"].(string); ok {
		input.Location = loc
	}
	if tz, ok := args["timeZone"].(string); ok {
		input.TimeZone = tz
	}
	if attendeesStr, ok := args["attendees"].(string); ok && attendeesStr != "" {
		input.Attendees = splitAndTrim(attendeesStr)
	}
	if recurrence, ok := args["recurrence"].(string); ok && recurrence != "" {
		input.Recurrence = []string{recurrence}
	}
	if addMeet, ok := args["addGoogleMeet"].(bool); ok {
		input.RequestMeetLink = addMeet
	}

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.CreateEvent(calendarID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
	}

	result := fmt.Sprintf("Event created: %s\nID: %s\n", event.Summary, event.ID)
	if event.MeetLink != "" {
		result += fmt.Sprintf("Google Meet: %s\n", event.MeetLink)
	}

	return mcp.NewToolResultText(result), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	calendarID := getCalendarID(args)

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	allDay, _ := args["allDay"].(bool)

	var input calendar.EventInput
	input.AllDay = allDay

	if summary, ok := args["summary"].(string); ok {
		input.Summary = summary
	}
	if desc, ok := args["description"].(string); ok {
		input.Description = desc
	}
	if loc, ok := args["location"].(string); ok {
		input.Location = loc
	}
	if tz, ok := args["timeZone"].(string); ok {
		input.TimeZone = tz
	}
	if attendeesStr, ok := args["attendees"].(string); ok && attendeesStr != "" {
		input.Attendees = splitAndTrim(attendeesStr)
	}

	if startStr, ok := args["start"].(string); ok && startStr != "" {
		start, err := parseEventArgTime(startStr, allDay)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid start format: %v", err)), nil
		}
		input.Start = start
	}

	if endStr, ok := args["end"].(string); ok && endStr != "" {
		end, err := parseEventArgTime(endStr, allDay)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid end format: %v", err)), nil
		}
		input.End = end
	}

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.UpdateEvent(calendarID, eventID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event updated: %s\nID: %s\n", event.Summary, event.ID)), nil
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	calendarID := getCalendarID(args)

	eventID, ok := args["eventId"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.DeleteEvent(calendarID, eventID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event %s deleted from %s\n", eventID, calendarID)), nil
}

// parseEventArgTime parses a start/end argument, accepting a bare date for
// all-day events.
func parseEventArgTime(value string, allDay bool) (time.Time, error) {
	if allDay {
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339, value)
}

func formatEventTimes(event calendar.EventSummary, indent string) string {
	if event.AllDay {
		return fmt.Sprintf("%sStart: %s (all day)\n%sEnd: %s (all day)\n",
			indent, event.Start.Format("2006-01-02"), indent, event.End.Format("2006-01-02"))
	}
	return fmt.Sprintf("%sStart: %s\n%sEnd: %s\n",
		indent, event.Start.Format(time.RFC3339), indent, event.End.Format(time.RFC3339))
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
