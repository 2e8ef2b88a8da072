package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/calctl/internal/store"
)

// rootCmd represents the base command for the calctl application
var rootCmd = &cobra.Command{
	Use:   "calctl",
	Short: "Manage Google Calendar from the command line",
	Long: `calctl manages events, calendars and availability across multiple
Google accounts.

Accounts are authorized once via OAuth and stored locally; every other
command selects an account by its email address.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// configDir overrides the default configuration directory when set.
var configDir string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// openStore opens the account store, honoring --config-dir.
func openStore() (*store.Store, error) {
	if configDir != "" {
		return store.Open(configDir)
	}
	return store.OpenDefault()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("calctl version %s\n", version)
		},
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory for credentials and accounts (default: XDG config dir)")

	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newCalendarsCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newFreeBusyCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
