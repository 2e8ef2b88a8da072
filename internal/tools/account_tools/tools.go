package account_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/tools/common"
)

// RegisterAccountTools registers account inspection tools with the MCP server.
func RegisterAccountTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listAccountsTool := mcp.NewTool("account_list",
		mcp.WithDescription("List the authorized Google accounts available to calendar tools"),
	)

	s.AddTool(listAccountsTool, common.InstrumentedToolHandler(
		"account_list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAccounts(ctx, request, sc)
		}))

	removeAccountTool := mcp.NewTool("account_remove",
		mcp.WithDescription("Remove a stored Google account and its cached calendar client"),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Email address of the account to remove"),
		),
	)

	s.AddTool(removeAccountTool, common.InstrumentedToolHandler(
		"account_remove", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemoveAccount(ctx, request, sc)
		}))

	return nil
}

func handleListAccounts(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	accounts := sc.Store().Accounts()

	if len(accounts) == 0 {
		return mcp.NewToolResultText("No accounts configured. Run 'calctl account add <email>' to authorize one.\n"), nil
	}

	result := fmt.Sprintf("Found %d account(s):\n\n", len(accounts))
	for i, account := range accounts {
		result += fmt.Sprintf("%d. %s\n", i+1, account.Email)
	}

	return mcp.NewToolResultText(result), nil
}

func handleRemoveAccount(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	email, err := common.GetAccountFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	removed, err := sc.Store().DeleteAccount(email)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove account: %v", err)), nil
	}
	if !removed {
		return mcp.NewToolResultError(fmt.Sprintf("no account found for %s", email)), nil
	}

	// Drop any cached client so the removed account cannot be queried again
	// within this process.
	sc.Cache().Evict(email)

	return mcp.NewToolResultText(fmt.Sprintf("Removed account %s\n", email)), nil
}
