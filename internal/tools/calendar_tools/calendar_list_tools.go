package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/tools/common"
)

// RegisterCalendarListTools registers calendar list tools with the MCP server.
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List calendars tool
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars accessible to the account"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_list_calendars", "list_calendars", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	// List ACL rules tool
	listACLTool := mcp.NewTool("calendar_list_acl",
		mcp.WithDescription("List the sharing rules of a calendar"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email of the stored account to act as"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for the primary calendar)"),
		),
	)

	s.AddTool(listACLTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_list_acl", "list_acl", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListACL(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendars, err := client.ListCalendars()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list calendars: %v", err)), nil
	}

	result := fmt.Sprintf("Found %d calendar(s):\n\n", len(calendars))
	for i, cal := range calendars {
		result += fmt.Sprintf("%d. %s\n", i+1, cal.Summary)
		result += fmt.Sprintf("   ID: %s\n", cal.ID)
		result += fmt.Sprintf("   Access Role: %s\n", cal.AccessRole)
		if cal.Primary {
			result += "   [PRIMARY]\n"
		}
		if cal.Description != "" {
			result += fmt.Sprintf("   Description: %s\n", cal.Description)
		}
		if cal.TimeZone != "" {
			result += fmt.Sprintf("   Time Zone: %s\n", cal.TimeZone)
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func handleListACL(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	calendarID := getCalendarID(args)

	client, err := getCalendarClient(ctx, args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rules, err := client.ListACLRules(calendarID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list sharing rules: %v", err)), nil
	}

	result := fmt.Sprintf("Found %d sharing rule(s) on %s:\n\n", len(rules), calendarID)
	for i, rule := range rules {
		result += fmt.Sprintf("%d. %s\n", i+1, rule.ID)
		result += fmt.Sprintf("   Role: %s\n", rule.Role)
		result += fmt.Sprintf("   Scope: %s", rule.ScopeType)
		if rule.ScopeValue != "" {
			result += fmt.Sprintf(" (%s)", rule.ScopeValue)
		}
		result += "\n\n"
	}

	return mcp.NewToolResultText(result), nil
}
