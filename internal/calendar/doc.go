// Package calendar implements the calendar event access layer: a
// Scheduler that normalizes wall-clock datetime input, aggregates event
// listings across the user's selected calendars and shapes create/update
// requests against a single configured destination calendar.
//
// Network access goes through the Provider port. The Client type is the
// Google Calendar implementation; tests substitute a fake.
package calendar
