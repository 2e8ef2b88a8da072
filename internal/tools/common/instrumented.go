package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/calctl/internal/instrumentation"
	"github.com/teemow/calctl/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with invocation metrics.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		metrics.RecordToolInvocation(ctx, toolName, status, duration)

		return result, err
	}
}

// InstrumentedToolHandlerWithOperation is like InstrumentedToolHandler but
// also records the underlying calendar API operation, giving per-operation
// latency and error counts in addition to per-tool ones.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithOperation("my_tool", "list_events", sc, handler))
func InstrumentedToolHandlerWithOperation(
	toolName string,
	operation string,
	sc *server.ServerContext,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		metrics.RecordCalendarOperation(ctx, operation, status, duration)

		return result, err
	}
}
