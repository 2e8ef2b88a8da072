// Package account_tools provides MCP tools for inspecting the stored
// Google accounts. Authorization itself is interactive and stays in the
// CLI; the tools only expose which accounts are available.
package account_tools
