package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/calctl/internal/calendar"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Work with calendar events",
	}

	cmd.AddCommand(newEventsListCmd())
	cmd.AddCommand(newEventsShowCmd())
	cmd.AddCommand(newEventsCreateCmd())
	cmd.AddCommand(newEventsUpdateCmd())
	cmd.AddCommand(newEventsDeleteCmd())

	return cmd
}

func newEventsListCmd() *cobra.Command {
	var (
		account    string
		calendarID string
		from       string
		to         string
		maxResults int64
		query      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming events",
		Long: `List events in a calendar, ordered by start time.

Without --from/--to the window runs from now through the next seven
days. Recurring events are expanded into their single instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts calendar.ListEventsOptions
			var err error

			if from != "" {
				opts.From, err = time.Parse(time.RFC3339, from)
				if err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
			}
			if to != "" {
				opts.To, err = time.Parse(time.RFC3339, to)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}
			opts.MaxResults = maxResults
			opts.Query = query

			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			events, err := client.ListEvents(calendarID, opts)
			if err != nil {
				return err
			}

			for _, event := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					event.ID, formatEventWindow(event), event.Summary)
			}
			return nil
		},
	}

	addAccountFlag(cmd, &account)
	addCalendarFlag(cmd, &calendarID)
	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339, default: now)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339, default: seven days after start)")
	cmd.Flags().Int64Var(&maxResults, "max-results", 0, "Maximum number of events (default: 10)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text search query")

	return cmd
}

func newEventsShowCmd() *cobra.Command {
	var (
		account    string
		calendarID string
	)

	cmd := &cobra.Command{
		Use:   "show <eventId>",
		Short: "Show the details of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			event, err := client.GetEvent(calendarID, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Summary: %s\n", event.Summary)
			fmt.Fprintf(out, "ID: %s\n", event.ID)
			fmt.Fprintf(out, "When: %s\n", formatEventWindow(*event))
			fmt.Fprintf(out, "Status: %s\n", event.Status)
			if event.Location != "" {
				fmt.Fprintf(out, "Location: %s\n", event.Location)
			}
			if event.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", event.Description)
			}
			if event.Organizer != "" {
				fmt.Fprintf(out, "Organizer: %s\n", event.Organizer)
			}
			if event.MeetLink != "" {
				fmt.Fprintf(out, "Meet: %s\n", event.MeetLink)
			}
			for _, att := range event.Attendees {
				fmt.Fprintf(out, "Attendee: %s (%s)\n", att.Email, att.ResponseStatus)
			}
			return nil
		},
	}

	addAccountFlag(cmd, &account)
	addCalendarFlag(cmd, &calendarID)

	return cmd
}

func newEventsCreateCmd() *cobra.Command {
	var (
		account     string
		calendarID  string
		description string
		location    string
		start       string
		end         string
		timeZone    string
		attendees   []string
		recurrence  []string
		allDay      bool
		addMeet     bool
	)

	cmd := &cobra.Command{
		Use:   "create <summary>",
		Short: "Create a new event",
		Long: `Create an event in a calendar.

Timed events take RFC3339 --start/--end values; all-day events take
bare dates (2006-01-02) together with --all-day. Pass --meet to have a
Google Meet link provisioned for the event.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, err := parseEventFlagTime(start, allDay)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			endTime, err := parseEventFlagTime(end, allDay)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}

			input := calendar.EventInput{
				Summary:         args[0],
				Description:     description,
				Location:        location,
				Start:           startTime,
				End:             endTime,
				TimeZone:        timeZone,
				Attendees:       attendees,
				Recurrence:      recurrence,
				AllDay:          allDay,
				RequestMeetLink: addMeet,
			}

			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			event, err := client.CreateEvent(calendarID, input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", event.ID)
			if event.MeetLink != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Meet: %s\n", event.MeetLink)
			}
			return nil
		},
	}

	addAccountFlag(cmd, &account)
	addCalendarFlag(cmd, &calendarID)
	cmd.Flags().StringVar(&description, "description", "", "Event description")
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringVar(&start, "start", "", "Start time (RFC3339, or 2006-01-02 with --all-day)")
	cmd.Flags().StringVar(&end, "end", "", "End time (RFC3339, or 2006-01-02 with --all-day)")
	cmd.Flags().StringVar(&timeZone, "time-zone", "", "Time zone (e.g. Europe/Berlin, default: UTC)")
	cmd.Flags().StringSliceVar(&attendees, "attendee", nil, "Attendee email (repeatable)")
	cmd.Flags().StringSliceVar(&recurrence, "recurrence", nil, "Recurrence rule, e.g. 'RRULE:FREQ=WEEKLY' (repeatable)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().BoolVar(&addMeet, "meet", false, "Request a Google Meet link")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newEventsUpdateCmd() *cobra.Command {
	var (
		account     string
		calendarID  string
		summary     string
		description string
		location    string
		start       string
		end         string
		timeZone    string
		attendees   []string
		allDay      bool
	)

	cmd := &cobra.Command{
		Use:   "update <eventId>",
		Short: "Update an existing event",
		Long: `Update fields of an event. Flags that are not set leave the
corresponding field unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := calendar.EventInput{
				Summary:     summary,
				Description: description,
				Location:    location,
				TimeZone:    timeZone,
				Attendees:   attendees,
				AllDay:      allDay,
			}

			var err error
			if start != "" {
				input.Start, err = parseEventFlagTime(start, allDay)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}
			if end != "" {
				input.End, err = parseEventFlagTime(end, allDay)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
			}

			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			event, err := client.UpdateEvent(calendarID, args[0], input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", event.ID)
			return nil
		},
	}

	addAccountFlag(cmd, &account)
	addCalendarFlag(cmd, &calendarID)
	cmd.Flags().StringVar(&summary, "summary", "", "New event title")
	cmd.Flags().StringVar(&description, "description", "", "New event description")
	cmd.Flags().StringVar(&location, "location", "", "New event location")
	cmd.Flags().StringVar(&start, "start", "", "New start time (RFC3339, or 2006-01-02 with --all-day)")
	cmd.Flags().StringVar(&end, "end", "", "New end time (RFC3339, or 2006-01-02 with --all-day)")
	cmd.Flags().StringVar(&timeZone, "time-zone", "", "New time zone")
	cmd.Flags().StringSliceVar(&attendees, "attendee", nil, "New attendee list (repeatable, replaces existing)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Turn the event into an all-day event")

	return cmd
}

func newEventsDeleteCmd() *cobra.Command {
	var (
		account    string
		calendarID string
	)

	cmd := &cobra.Command{
		Use:   "delete <eventId>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			if err := client.DeleteEvent(calendarID, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	addAccountFlag(cmd, &account)
	addCalendarFlag(cmd, &calendarID)

	return cmd
}

func addAccountFlag(cmd *cobra.Command, account *string) {
	cmd.Flags().StringVarP(account, "account", "a", "", "Email of the stored account to act as")
	_ = cmd.MarkFlagRequired("account")
}

func addCalendarFlag(cmd *cobra.Command, calendarID *string) {
	cmd.Flags().StringVarP(calendarID, "calendar", "c", "primary", "Calendar ID")
}

// parseEventFlagTime parses a --start/--end flag, accepting a bare date for
// all-day events.
func parseEventFlagTime(value string, allDay bool) (time.Time, error) {
	if allDay {
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t, nil
		}
	}
	return time.Parse(time.RFC3339, value)
}

func formatEventWindow(event calendar.EventSummary) string {
	if event.AllDay {
		start := event.Start.Format("2006-01-02")
		end := event.End.Format("2006-01-02")
		if start == end {
			return start + " (all day)"
		}
		return fmt.Sprintf("%s - %s (all day)", start, end)
	}
	return fmt.Sprintf("%s - %s",
		event.Start.Format(time.RFC3339), event.End.Format(time.RFC3339))
}
