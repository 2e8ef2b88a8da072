// Package server provides the MCP server context and the Prometheus
// metrics endpoint for the calctl serve mode.
//
// ServerContext holds the account store, the per-account calendar client
// cache and the metrics recorder. Tool handlers resolve calendar clients
// through it so that repeated invocations for the same account reuse one
// client.
//
// MetricsServer serves /metrics on a dedicated port, keeping operational
// metrics off the MCP transport.
package server
