package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/calctl/internal/auth"
	"github.com/teemow/calctl/internal/logging"
	"github.com/teemow/calctl/internal/store"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage authorized Google accounts",
		Long: `Manage the Google accounts calctl can act as.

Import the shared OAuth client credentials once, then authorize each
account with 'account add'. Authorized accounts are stored locally and
selected by email in every other command.`,
	}

	cmd.AddCommand(newAccountCredentialsCmd())
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountAddCmd())
	cmd.AddCommand(newAccountRemoveCmd())

	return cmd
}

func newAccountCredentialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "credentials <file>",
		Short: "Import the OAuth client credentials JSON",
		Long: `Import the OAuth client credentials shared by all accounts.

The file may be a Google Cloud Console OAuth client download (with an
"installed" or "web" section) or a flat JSON object with "clientId" and
"clientSecret" fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read credentials file: %w", err)
			}

			creds, err := store.ParseClientCredentials(data)
			if err != nil {
				return err
			}

			st, err := openStore()
			if err != nil {
				return err
			}

			if err := st.SetCredentials(creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OAuth client credentials saved")
			return nil
		},
	}
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List authorized accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			accounts := st.Accounts()
			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No accounts configured. Run 'calctl account add <email>' to authorize one.")
				return nil
			}

			for _, account := range accounts {
				fmt.Fprintln(cmd.OutOrStdout(), account.Email)
			}
			return nil
		},
	}
}

func newAccountAddCmd() *cobra.Command {
	var (
		manual  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Authorize a Google account and store it",
		Long: `Run the interactive OAuth handshake for a Google account and store
the resulting refresh token.

By default a browser window is opened and the authorization response is
captured on a local loopback listener. Use --manual on machines without
a browser: the authorization URL is printed and the redirect URL is
pasted back by hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			st, err := openStore()
			if err != nil {
				return err
			}

			creds, ok := st.Credentials()
			if !ok {
				return &store.CredentialsNotConfiguredError{}
			}

			if st.HasAccount(email) {
				return &store.DuplicateAccountError{Email: email}
			}

			refreshToken, err := auth.Authorize(cmd.Context(), creds, auth.Options{
				Manual:  manual,
				Timeout: timeout,
				Input:   cmd.InOrStdin(),
				Status:  cmd.ErrOrStderr(),
			})
			if err != nil {
				slog.Error("authorization failed",
					logging.Account(email),
					logging.Err(err))
				return err
			}

			account := store.Account{
				Email: email,
				OAuth: store.OAuthMaterial{
					ClientID:     creds.ClientID,
					ClientSecret: creds.ClientSecret,
					RefreshToken: refreshToken,
				},
			}

			if err := st.AddAccount(account); err != nil {
				return err
			}

			slog.Info("account authorized", logging.Account(email))
			fmt.Fprintf(cmd.OutOrStdout(), "Account %s authorized\n", email)
			return nil
		},
	}

	cmd.Flags().BoolVar(&manual, "manual", false, "Paste the redirect URL by hand instead of using a loopback listener")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Bound for the whole handshake (default: 2m)")

	return cmd
}

func newAccountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Remove a stored account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			st, err := openStore()
			if err != nil {
				return err
			}

			removed, err := st.DeleteAccount(email)
			if err != nil {
				return err
			}
			if !removed {
				return &store.AccountNotFoundError{Email: email}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account %s removed\n", email)
			return nil
		},
	}
}
