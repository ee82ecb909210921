// Package time_tools provides MCP tools that report the current time and
// date so an assistant can resolve relative expressions like "tomorrow".
package time_tools
