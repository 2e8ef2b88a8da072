package calendar_tools

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/calctl/internal/calendar"
	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/store"
)

func TestGetCalendarID(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "no calendarId provided",
			args:     map[string]interface{}{},
			expected: "primary",
		},
		{
			name: "calendarId provided",
			args: map[string]interface{}{
				"calendarId": "team@example.com",
			},
			expected: "team@example.com",
		},
		{
			name: "empty calendarId string",
			args: map[string]interface{}{
				"calendarId": "",
			},
			expected: "primary",
		},
		{
			name: "non-string calendarId",
			args: map[string]interface{}{
				"calendarId": 42,
			},
			expected: "primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getCalendarID(tt.args)
			if result != tt.expected {
				t.Errorf("getCalendarID() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestParseEventArgTime(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		allDay      bool
		expected    time.Time
		expectError bool
	}{
		{
			name:     "rfc3339 timed event",
			value:    "2026-01-15T14:00:00Z",
			expected: time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "bare date for all-day event",
			value:    "2026-01-15",
			allDay:   true,
			expected: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 for all-day event",
			value:    "2026-01-15T00:00:00Z",
			allDay:   true,
			expected: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "bare date for timed event fails",
			value:       "2026-01-15",
			expectError: true,
		},
		{
			name:        "garbage",
			value:       "next tuesday",
			allDay:      true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEventArgTime(tt.value, tt.allDay)
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("parseEventArgTime() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim("a@example.com, b@example.com ,c@example.com")
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() returned %d parts, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestFormatEventTimes_AllDay(t *testing.T) {
	event := calendar.EventSummary{
		Start:  time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC),
		AllDay: true,
	}

	got := formatEventTimes(event, "")
	want := "Start: 2026-01-20 (all day)\nEnd: 2026-01-25 (all day)\n"
	if got != want {
		t.Errorf("formatEventTimes() = %q, expected %q", got, want)
	}
}

func testServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	sc := server.NewServerContext(context.Background(), st, nil)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestHandleGetEvent_MissingEventID(t *testing.T) {
	sc := testServerContext(t)

	result, err := handleGetEvent(context.Background(), callRequest(map[string]interface{}{
		"account": "alice@example.com",
	}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result for missing eventId")
	}
}

func TestHandleListEvents_MissingAccount(t *testing.T) {
	sc := testServerContext(t)

	result, err := handleListEvents(context.Background(), callRequest(map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result for missing account")
	}
}

func TestHandleListEvents_UnknownAccount(t *testing.T) {
	sc := testServerContext(t)

	result, err := handleListEvents(context.Background(), callRequest(map[string]interface{}{
		"account": "nobody@example.com",
	}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result for unknown account")
	}
}

func TestHandleCreateEvent_InvalidStart(t *testing.T) {
	sc := testServerContext(t)

	result, err := handleCreateEvent(context.Background(), callRequest(map[string]interface{}{
		"account": "alice@example.com",
		"summary": "Standup",
		"start":   "not-a-time",
		"end":     "2026-01-15T15:00:00Z",
	}), sc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected error result for invalid start time")
	}
}
