package calendar

import (
	"context"
	"errors"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// ErrUnsupportedOperation is returned for invocation modes this package
// does not implement, such as asynchronous execution.
var ErrUnsupportedOperation = errors.New("operation not supported")

// Capability identifies an optional feature a caller can probe for before
// invoking the corresponding path.
type Capability string

const (
	// CapabilitySync is the blocking, request-at-a-time invocation mode.
	CapabilitySync Capability = "sync"

	// CapabilityAsync is a non-blocking invocation mode. Not implemented;
	// callers must check this capability instead of relying on a failing
	// call.
	CapabilityAsync Capability = "async"
)

// CalendarRef identifies one calendar in the user's calendar list.
type CalendarRef struct {
	ID       string
	Summary  string
	Primary  bool
	TimeZone string

	// Selected mirrors the provider's "show in UI" flag; aggregate queries
	// only consult selected calendars.
	Selected bool
}

// Provider is the port to the external calendar API. Implementations
// perform the authenticated network calls; the scheduler core only shapes
// requests and responses.
//
// Provider events are Google Calendar v3 records: times are nested
// start/end objects carrying either a zoned dateTime or a date-only value
// for all-day events.
type Provider interface {
	// ListCalendars returns every calendar in the user's calendar list.
	ListCalendars(ctx context.Context) ([]CalendarRef, error)

	// ListEvents returns events whose start falls in [timeMin, timeMax),
	// recurring events expanded into single occurrences by the provider,
	// ordered by start time, capped at maxResults.
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, maxResults int64) ([]*calendar.Event, error)

	// GetEvent retrieves a single event by ID.
	GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error)

	// InsertEvent creates a new event. When withConference is set the
	// provider is asked to attach a video conference to the event.
	InsertEvent(ctx context.Context, calendarID string, event *calendar.Event, withConference bool) (*calendar.Event, error)

	// UpdateEvent replaces the stored event with the given representation.
	UpdateEvent(ctx context.Context, calendarID, eventID string, event *calendar.Event) (*calendar.Event, error)
}
