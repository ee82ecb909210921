// Package geo resolves the location of the server's public IP address
// via the ip-api.com JSON endpoint.
//
// The result feeds the get_current_location tool so an assistant can
// ground "nearby" questions without the user stating where they are.
package geo
