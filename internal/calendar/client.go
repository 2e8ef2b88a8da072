package calendar

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/calctl/internal/auth"
	"github.com/teemow/calctl/internal/store"
)

const (
	// defaultLookahead is the event listing window when the caller gives none.
	defaultLookahead = 7 * 24 * time.Hour

	// defaultPageSize is the event listing page size when the caller gives none.
	defaultPageSize = 10
)

// Client wraps the Google Calendar service for one account.
type Client struct {
	svc   *calendar.Service
	email string
}

// Email returns the account this client is associated with.
func (c *Client) Email() string {
	return c.email
}

// NewClient builds an authenticated calendar client from a stored account
// record. The oauth2 token source refreshes the access token on demand; the
// refreshed token is not persisted back to storage.
func NewClient(ctx context.Context, account store.Account) (*Client, error) {
	conf := &oauth2.Config{
		ClientID:     account.OAuth.ClientID,
		ClientSecret: account.OAuth.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       auth.Scopes,
	}

	token := &oauth2.Token{
		RefreshToken: account.OAuth.RefreshToken,
		TokenType:    "Bearer",
	}
	if account.OAuth.AccessToken != "" {
		// Seed the stored access token with an expired deadline so the token
		// source validates it through a refresh instead of trusting it.
		token.AccessToken = account.OAuth.AccessToken
		token.Expiry = time.Unix(1, 0)
	}

	client := oauth2.NewClient(ctx, conf.TokenSource(ctx, token))

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Client{svc: svc, email: account.Email}, nil
}

// ListCalendars lists all calendars accessible to the account.
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}

	var calendars []CalendarInfo
	for _, entry := range list.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}
	return calendars, nil
}

// ListACLRules lists the access-control rules of a calendar.
func (c *Client) ListACLRules(calendarID string) ([]ACLRule, error) {
	list, err := c.svc.Acl.List(calendarID).Do()
	if err != nil {
		return nil, fmt.Errorf("list acl rules: %w", err)
	}

	var rules []ACLRule
	for _, rule := range list.Items {
		rules = append(rules, toACLRule(rule))
	}
	return rules, nil
}

// ListEventsOptions narrows an event listing. Zero values select the
// defaults: a window from now through seven days ahead, ten results.
type ListEventsOptions struct {
	From       time.Time
	To         time.Time
	MaxResults int64
	Query      string
}

// ListEvents lists events in a calendar. Recurring events are always
// expanded into single instances and results are ordered by start time.
func (c *Client) ListEvents(calendarID string, opts ListEventsOptions) ([]EventSummary, error) {
	if opts.From.IsZero() {
		opts.From = time.Now()
	}
	if opts.To.IsZero() {
		opts.To = opts.From.Add(defaultLookahead)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultPageSize
	}

	call := c.svc.Events.List(calendarID).
		TimeMin(opts.From.Format(time.RFC3339)).
		TimeMax(opts.To.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(opts.MaxResults)

	if opts.Query != "" {
		call = call.Q(opts.Query)
	}

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}
	return summaries, nil
}

// GetEvent retrieves a specific event by ID.
func (c *Client) GetEvent(calendarID, eventID string) (*EventSummary, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	summary := toEventSummary(event)
	return &summary, nil
}

// CreateEvent creates a new calendar event.
func (c *Client) CreateEvent(calendarID string, input EventInput) (*EventSummary, error) {
	event := &calendar.Event{}
	applyEventInput(event, input)

	call := c.svc.Events.Insert(calendarID, event)
	if input.RequestMeetLink {
		call = call.ConferenceDataVersion(1)
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: meetRequestID(),
			},
		}
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// UpdateEvent updates an event read-modify-write: the current event is
// fetched, the supplied fields are overlaid, and the merged representation is
// submitted in full.
func (c *Client) UpdateEvent(calendarID, eventID string, input EventInput) (*EventSummary, error) {
	existing, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("get existing event: %w", err)
	}

	applyEventInput(existing, input)

	call := c.svc.Events.Update(calendarID, eventID, existing)
	if input.RequestMeetLink {
		call = call.ConferenceDataVersion(1)
		existing.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: meetRequestID(),
			},
		}
	}

	updated, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	summary := toEventSummary(updated)
	return &summary, nil
}

// DeleteEvent deletes a calendar event.
func (c *Client) DeleteEvent(calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Do(); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// QueryFreeBusy returns the busy intervals of the requested calendars within
// [from, to). Results follow the request order, and a calendar with no busy
// intervals yields an empty slice, never a missing entry.
func (c *Client) QueryFreeBusy(from, to time.Time, calendarIDs []string) ([]FreeBusyInfo, error) {
	items := make([]*calendar.FreeBusyRequestItem, len(calendarIDs))
	for i, id := range calendarIDs {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	result, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   items,
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("query freebusy: %w", err)
	}

	infos := make([]FreeBusyInfo, 0, len(calendarIDs))
	for _, id := range calendarIDs {
		info := FreeBusyInfo{Calendar: id, Busy: []TimeRange{}}
		if cal, ok := result.Calendars[id]; ok {
			for _, busy := range cal.Busy {
				start, _ := time.Parse(time.RFC3339, busy.Start)
				end, _ := time.Parse(time.RFC3339, busy.End)
				info.Busy = append(info.Busy, TimeRange{Start: start, End: end})
			}
			for _, calErr := range cal.Errors {
				info.Errors = append(info.Errors, calErr.Reason)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// applyEventInput overlays the caller-supplied fields onto event. Fields left
// at their zero value keep whatever event already holds, which gives update
// its overlay semantics and create its plain population.
func applyEventInput(event *calendar.Event, input EventInput) {
	if input.Summary != "" {
		event.Summary = input.Summary
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if input.Location != "" {
		event.Location = input.Location
	}

	if !input.Start.IsZero() {
		event.Start = toEventDateTime(input.Start, input.AllDay, input.TimeZone)
	}
	if !input.End.IsZero() {
		event.End = toEventDateTime(input.End, input.AllDay, input.TimeZone)
	}

	if len(input.Attendees) > 0 {
		attendees := make([]*calendar.EventAttendee, 0, len(input.Attendees))
		for _, email := range input.Attendees {
			attendees = append(attendees, &calendar.EventAttendee{Email: email})
		}
		event.Attendees = attendees
	}

	if len(input.Recurrence) > 0 {
		event.Recurrence = input.Recurrence
	}
}

// toEventDateTime maps a boundary to the wire representation: a date-only
// field for all-day events, a date-time with zone otherwise.
func toEventDateTime(t time.Time, allDay bool, timeZone string) *calendar.EventDateTime {
	if allDay {
		return &calendar.EventDateTime{Date: t.Format(dateLayout)}
	}
	if timeZone == "" {
		timeZone = "UTC"
	}
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: timeZone,
	}
}

// meetRequestID builds the idempotent conference-creation request id. It must
// be unique per call; a reused id makes the provider return the previously
// provisioned conference instead of a new one.
func meetRequestID() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("meet-%d-%s", time.Now().UnixNano(), hex.EncodeToString(suffix))
}
