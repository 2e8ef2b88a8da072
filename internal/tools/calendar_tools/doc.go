// Package calendar_tools provides MCP tools for Google Calendar operations:
// listing calendars and their sharing rules, listing, reading, creating,
// updating and deleting events, and free/busy queries across calendars.
//
// Every tool takes an "account" argument naming a stored account email;
// clients are resolved through the server context's cache.
package calendar_tools
