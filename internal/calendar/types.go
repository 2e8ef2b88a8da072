package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// EventInput carries the caller-supplied fields for creating or updating an
// event. Zero-valued fields are "not provided": on update they leave the
// existing value untouched.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
	Recurrence  []string // RRULE, EXRULE, RDATE, EXDATE

	// AllDay maps Start/End to date-only boundaries instead of date-times.
	AllDay bool

	// RequestMeetLink attaches a conference-creation request so the provider
	// provisions a meeting link for the event.
	RequestMeetLink bool
}

// EventSummary is the simplified event representation returned by the facade.
type EventSummary struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Status      string
	Organizer   string
	Attendees   []AttendeeInfo
	MeetLink    string
}

// AttendeeInfo describes one event attendee.
type AttendeeInfo struct {
	Email          string
	DisplayName    string
	ResponseStatus string // "needsAction", "declined", "tentative", "accepted"
	Optional       bool
	Organizer      bool
}

// CalendarInfo describes one calendar visible to the account.
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	TimeZone    string
	Primary     bool
	AccessRole  string // "owner", "writer", "reader", "freeBusyReader"
}

// ACLRule describes one access-control rule on a calendar.
type ACLRule struct {
	ID         string
	Role       string // "none", "freeBusyReader", "reader", "writer", "owner"
	ScopeType  string // "default", "user", "group", "domain"
	ScopeValue string
}

// TimeRange is a half-open busy interval.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// FreeBusyInfo holds the busy intervals of one requested calendar. Busy is
// never nil: a calendar with no busy intervals maps to an empty slice.
type FreeBusyInfo struct {
	Calendar string
	Busy     []TimeRange
	Errors   []string
}

const dateLayout = "2006-01-02"

// toEventSummary converts a Google Calendar event to an EventSummary.
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
	}

	if event.Start != nil {
		summary.Start, summary.AllDay = parseEventTime(event.Start)
	}
	if event.End != nil {
		summary.End, _ = parseEventTime(event.End)
	}

	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}

	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
			Optional:       att.Optional,
			Organizer:      att.Organizer,
		})
	}

	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				summary.MeetLink = ep.Uri
				break
			}
		}
	}

	return summary
}

// parseEventTime handles both date-time and all-day (date-only) boundaries.
func parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t, false
		}
		return time.Time{}, false
	}
	if edt.Date != "" {
		if t, err := time.Parse(dateLayout, edt.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toCalendarInfo converts a calendar list entry to CalendarInfo.
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}

// toACLRule converts an ACL rule resource.
func toACLRule(rule *calendar.AclRule) ACLRule {
	if rule == nil {
		return ACLRule{}
	}
	out := ACLRule{
		ID:   rule.Id,
		Role: rule.Role,
	}
	if rule.Scope != nil {
		out.ScopeType = rule.Scope.Type
		out.ScopeValue = rule.Scope.Value
	}
	return out
}
