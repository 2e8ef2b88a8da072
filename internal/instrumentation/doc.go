// Package instrumentation wires OpenTelemetry metrics and tracing for the
// MCP serve mode.
//
// Metrics can be exported via Prometheus (scraped from the --metrics-addr
// endpoint), OTLP over HTTP, or stdout for debugging. Tracing is off by
// default and can export via OTLP or stdout. Configuration is read from the
// conventional OTEL_* environment variables.
package instrumentation
