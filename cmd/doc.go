// Package cmd implements the command-line interface for schedbot.
//
// This package provides the following commands:
//   - agenda: Print today's events from all selected calendars
//   - serve: Start the MCP server to provide tools for AI assistants
//   - auth: Authorize Google Calendar access for an account
//   - version: Display version information
//
// The agenda command is the default command when no subcommand is specified.
package cmd
