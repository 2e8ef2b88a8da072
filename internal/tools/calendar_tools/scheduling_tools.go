package calendar_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/tools/common"
)

// RegisterSchedulingTools registers availability tools with the MCP server.
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	queryFreeBusyTool := mcp.NewTool("calendar_free_busy",
		mcp.WithDescription("Check availability for one or more calendars in a time range"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start time for the range (RFC3339 format, e.g., '2026-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End time for the range (RFC3339 format, e.g., '2026-01-31T23:59:59Z')"),
		),
		mcp.WithString("calendars",
			mcp.Required(),
			mcp.Description("Comma-separated list of calendar IDs or email addresses to check"),
		),
	)

	s.AddTool(queryFreeBusyTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_free_busy", "free_busy", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryFreeBusy(ctx, request, sc)
		}))

	return nil
}

func handleQueryFreeBusy(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	timeMinStr, ok := args["timeMin"].(string)
	if !ok || timeMinStr == "" {
		return mcp.NewToolResultError("timeMin is required"), nil
	}
	timeMin, err := time.Parse(time.RFC3339, timeMinStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMin format: %v", err)), nil
	}

	timeMaxStr, ok := args["timeMax"].(string)
	if !ok || timeMaxStr == "" {
		return mcp.NewToolResultError("timeMax is required"), nil
	}
	timeMax, err := time.Parse(time.RFC3339, timeMaxStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMax format: %v", err)), nil
	}

	calendarsStr, ok := args["calendars"].(string)
	if !ok || calendarsStr == "" {
		return mcp.NewToolResultError("calendars is required"), nil
	}
	calendars := splitAndTrim(calendarsStr)

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	freeBusyInfos, err := client.QueryFreeBusy(timeMin, timeMax, calendars)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query free/busy: %v", err)), nil
	}

	result := fmt.Sprintf("Free/busy information for %d calendar(s):\n\n", len(freeBusyInfos))
	for _, info := range freeBusyInfos {
		result += fmt.Sprintf("Calendar: %s\n", info.Calendar)
		for _, e := range info.Errors {
			result += fmt.Sprintf("  Error: %s\n", e)
		}
		if len(info.Busy) == 0 {
			result += "  Free for the entire range\n"
		} else {
			result += fmt.Sprintf("  Busy (%d interval(s)):\n", len(info.Busy))
			for _, busy := range info.Busy {
				result += fmt.Sprintf("    %s - %s\n",
					busy.Start.Format(time.RFC3339), busy.End.Format(time.RFC3339))
			}
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}
