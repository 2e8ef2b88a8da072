package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newFreeBusyCmd() *cobra.Command {
	var (
		account   string
		calendars []string
		from      string
		to        string
	)

	cmd := &cobra.Command{
		Use:   "freebusy",
		Short: "Query availability across calendars",
		Long: `Query the busy intervals of one or more calendars in a time range.

Calendars are reported in the order they were requested. A calendar
with no busy intervals is free for the entire range.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromTime, err := time.Parse(time.RFC3339, from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			toTime, err := time.Parse(time.RFC3339, to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			infos, err := client.QueryFreeBusy(fromTime, toTime, calendars)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, info := range infos {
				fmt.Fprintf(out, "%s:\n", info.Calendar)
				for _, e := range info.Errors {
					fmt.Fprintf(out, "  error: %s\n", e)
				}
				if len(info.Busy) == 0 {
					fmt.Fprintln(out, "  free")
					continue
				}
				for _, busy := range info.Busy {
					fmt.Fprintf(out, "  busy %s - %s\n",
						busy.Start.Format(time.RFC3339), busy.End.Format(time.RFC3339))
				}
			}
			return nil
		},
	}

	addAccountFlag(cmd, &account)
	cmd.Flags().StringSliceVarP(&calendars, "calendar", "c", []string{"primary"}, "Calendar ID or email to check (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "Window start (RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (RFC3339)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
