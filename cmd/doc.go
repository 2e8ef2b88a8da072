// Package cmd implements the command-line interface for calctl.
//
// This package provides the following commands:
//   - account: Import OAuth client credentials and manage authorized accounts
//   - calendars: List calendars and their sharing rules
//   - events: List, show, create, update and delete calendar events
//   - freebusy: Query availability across calendars
//   - serve: Start the MCP server to provide calendar tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
package cmd
