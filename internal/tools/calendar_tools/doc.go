// Package calendar_tools provides MCP tools for listing, creating, and
// updating Google Calendar events through the scheduling layer.
package calendar_tools
