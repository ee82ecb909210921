// Package logging provides structured logging utilities for the schedbot
// application.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "calendar.list_events")
//	logger.Info("listing events",
//	    logging.Status("success"))
//
// # Security Considerations
//
// OAuth tokens are never logged directly; use SanitizeToken when a token
// needs to appear in a log line at all.
package logging
