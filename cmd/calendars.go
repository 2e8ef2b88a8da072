package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/calctl/internal/calendar"
	"github.com/teemow/calctl/internal/store"
)

// clientForAccount builds a calendar client for a stored account email.
func clientForAccount(ctx context.Context, email string) (*calendar.Client, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}

	account, ok := st.Account(email)
	if !ok {
		return nil, &store.AccountNotFoundError{Email: email}
	}

	return calendar.NewClient(ctx, account)
}

func newCalendarsCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List the calendars of an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			calendars, err := client.ListCalendars()
			if err != nil {
				return err
			}

			for _, cal := range calendars {
				line := fmt.Sprintf("%s\t%s\t%s", cal.ID, cal.Summary, cal.AccessRole)
				if cal.Primary {
					line += "\t[primary]"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "Email of the stored account to act as")
	_ = cmd.MarkFlagRequired("account")

	cmd.AddCommand(newCalendarsACLCmd())

	return cmd
}

func newCalendarsACLCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "acl [calendarId]",
		Short: "List the sharing rules of a calendar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calendarID := "primary"
			if len(args) > 0 {
				calendarID = args[0]
			}

			client, err := clientForAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			rules, err := client.ListACLRules(calendarID)
			if err != nil {
				return err
			}

			for _, rule := range rules {
				scope := rule.ScopeType
				if rule.ScopeValue != "" {
					scope += ":" + rule.ScopeValue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", rule.ID, rule.Role, scope)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "Email of the stored account to act as")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
