// Package google provides shared OAuth2 configuration and token handling
// for the Google Calendar API.
package google
