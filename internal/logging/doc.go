// Package logging provides structured logging helpers for calctl.
//
// It centralizes slog attribute naming and sanitization of sensitive values:
// account emails are hashed before logging and tokens are never logged
// directly.
package logging
