// Package location_tools provides the MCP tool that resolves the user's
// approximate location from the server's public IP address.
package location_tools
