package calendar_tools

import (
	"context"
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calctl/internal/calendar"
	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/tools/common"
)

// getCalendarClient resolves a calendar client for the account named in the
// request arguments.
func getCalendarClient(ctx context.Context, args map[string]interface{}, sc *server.ServerContext) (*calendar.Client, error) {
	account, err := common.GetAccountFromArgs(args)
	if err != nil {
		return nil, err
	}
	return sc.ClientForAccount(ctx, account)
}

// getCalendarID returns the calendarId argument, defaulting to "primary".
func getCalendarID(args map[string]interface{}) string {
	if calIDVal, ok := args["calendarId"].(string); ok && calIDVal != "" {
		return calIDVal
	}
	return "primary"
}

// RegisterCalendarTools registers all Calendar-related tools with the MCP server.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterCalendarListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	if err := RegisterSchedulingTools(s, sc); err != nil {
		return fmt.Errorf("failed to register scheduling tools: %w", err)
	}

	return nil
}
