package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/schedbot/schedbot/internal/logging"
	"github.com/schedbot/schedbot/internal/timeutil"
)

const (
	// DefaultCalendarID is the destination calendar used for create and
	// update when none is configured.
	DefaultCalendarID = "primary"

	// DefaultTimeZone is used to interpret wall-clock input and to render
	// event times when the caller does not name a timezone.
	DefaultTimeZone = "America/Chicago"

	// DefaultMaxResults caps the number of events fetched per calendar.
	DefaultMaxResults = 10
)

const (
	createFallbackLink = "Failed to create event"
	updateFallbackLink = "Failed to update event"
)

// ErrInvalidEventWindow indicates an event whose start is not before its end.
var ErrInvalidEventWindow = errors.New("event start must be before end")

// Config holds the scheduler's fixed configuration.
type Config struct {
	// CalendarID is the destination calendar for create/update operations.
	CalendarID string

	// TimeZone is the default timezone for input and display.
	TimeZone string
}

func (c Config) withDefaults() Config {
	if c.CalendarID == "" {
		c.CalendarID = DefaultCalendarID
	}
	if c.TimeZone == "" {
		c.TimeZone = DefaultTimeZone
	}
	return c
}

// Scheduler is the calendar event access layer. It normalizes wall-clock
// input, fans list queries out across the user's selected calendars, and
// shapes create/update requests for a fixed destination calendar. It holds
// no state between calls; the provider owns durable storage.
type Scheduler struct {
	provider Provider
	cfg      Config
	logger   *slog.Logger
}

// NewScheduler creates a scheduler on top of the given provider.
func NewScheduler(provider Provider, cfg Config, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		provider: provider,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Supports reports whether the scheduler implements the given invocation
// capability. Callers must probe CapabilityAsync before attempting a
// non-blocking invocation; it is not implemented.
func (s *Scheduler) Supports(c Capability) bool {
	return c == CapabilitySync
}

// Config returns the effective scheduler configuration.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// EventView is the display representation of one event, rendered in the
// caller's timezone. Optional fields are pointers so that absent values
// serialize as explicit nulls rather than disappearing from the output.
type EventView struct {
	Start          string  `json:"start"`
	End            string  `json:"end"`
	ID             *string `json:"id"`
	Summary        *string `json:"summary"`
	Description    *string `json:"description"`
	Location       *string `json:"location"`
	ConferenceLink *string `json:"hangoutLink"`
}

// ListEvents returns the events of every selected calendar whose start
// falls in the half-open window [start, end), merged into a single ordered
// list. maxResults caps results per calendar, not in total. Any provider
// failure aborts the whole listing; there are no partial results.
func (s *Scheduler) ListEvents(ctx context.Context, startStr, endStr string, maxResults int64, zone string) ([]EventView, error) {
	if zone == "" {
		zone = s.cfg.TimeZone
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	timeMin, err := timeutil.ParseWallClock(startStr, zone)
	if err != nil {
		return nil, err
	}
	timeMax, err := timeutil.ParseWallClock(endStr, zone)
	if err != nil {
		return nil, err
	}

	refs, err := s.provider.ListCalendars(ctx)
	if err != nil {
		return nil, err
	}

	var merged []*calendar.Event
	for _, ref := range refs {
		if !ref.Selected {
			continue
		}
		events, err := s.provider.ListEvents(ctx, ref.ID, timeMin, timeMax, maxResults)
		if err != nil {
			return nil, err
		}
		merged = append(merged, events...)
	}

	sortByNativeStart(merged)

	views := make([]EventView, 0, len(merged))
	for _, event := range merged {
		view, err := toEventView(event, zone)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	s.logger.Debug("listed events",
		logging.Operation("list"),
		"count", len(views),
		"window_start", startStr,
		"window_end", endStr,
		"timezone", zone)

	return views, nil
}

// CreateInput carries the fields for a new event. Empty Location and
// Description are treated as not provided and left out of the request body.
type CreateInput struct {
	Start         string
	End           string
	Summary       string
	Location      string
	Description   string
	TimeZone      string
	AddConference bool
}

// CreateEvent creates a new event on the configured destination calendar
// and returns a status message carrying the shareable link.
func (s *Scheduler) CreateEvent(ctx context.Context, in CreateInput) (string, error) {
	if strings.TrimSpace(in.Summary) == "" {
		return "", fmt.Errorf("summary is required")
	}

	zone := in.TimeZone
	if zone == "" {
		zone = s.cfg.TimeZone
	}

	start, err := timeutil.ParseWallClock(in.Start, zone)
	if err != nil {
		return "", err
	}
	end, err := timeutil.ParseWallClock(in.End, zone)
	if err != nil {
		return "", err
	}
	if !start.Before(end) {
		return "", fmt.Errorf("%w: %s >= %s", ErrInvalidEventWindow, in.Start, in.End)
	}

	event := &calendar.Event{
		Summary: in.Summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
	if in.Location != "" {
		event.Location = in.Location
	}
	if in.Description != "" {
		event.Description = in.Description
	}

	created, err := s.provider.InsertEvent(ctx, s.cfg.CalendarID, event, in.AddConference)
	if err != nil {
		return "", err
	}

	s.logger.Info("event created",
		logging.Operation("create"),
		logging.Calendar(s.cfg.CalendarID),
		"event_id", created.Id)

	link := created.HtmlLink
	if link == "" {
		link = createFallbackLink
	}
	return "Event created: " + link, nil
}

// CreateEventAsync is the non-blocking variant of CreateEvent. The
// scheduler only implements synchronous invocation, so the call fails
// with ErrUnsupportedOperation before reaching the provider; callers
// should probe Supports(CapabilityAsync) instead of relying on the error.
func (s *Scheduler) CreateEventAsync(ctx context.Context, in CreateInput) (string, error) {
	if !s.Supports(CapabilityAsync) {
		return "", fmt.Errorf("async event creation: %w", ErrUnsupportedOperation)
	}
	return s.CreateEvent(ctx, in)
}

// UpdateInput carries a partial modification of an existing event. Nil
// fields are left untouched; a pointer to the empty string clears the
// corresponding text field.
type UpdateInput struct {
	EventID     string
	Start       *string
	End         *string
	Summary     *string
	Location    *string
	Description *string
	TimeZone    string
}

// UpdateEvent fetches the stored event, overlays only the supplied fields
// and submits the merged representation back as a full update. The
// read-modify-write is not atomic: a concurrent external modification
// between fetch and submit is overwritten.
func (s *Scheduler) UpdateEvent(ctx context.Context, in UpdateInput) (string, error) {
	if in.EventID == "" {
		return "", fmt.Errorf("event id is required")
	}

	zone := in.TimeZone
	if zone == "" {
		zone = s.cfg.TimeZone
	}

	var start, end time.Time
	var err error
	if in.Start != nil {
		start, err = timeutil.ParseWallClock(*in.Start, zone)
		if err != nil {
			return "", err
		}
	}
	if in.End != nil {
		end, err = timeutil.ParseWallClock(*in.End, zone)
		if err != nil {
			return "", err
		}
	}
	if in.Start != nil && in.End != nil && !start.Before(end) {
		return "", fmt.Errorf("%w: %s >= %s", ErrInvalidEventWindow, *in.Start, *in.End)
	}

	existing, err := s.provider.GetEvent(ctx, s.cfg.CalendarID, in.EventID)
	if err != nil {
		return "", err
	}

	if in.Start != nil {
		existing.Start = &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)}
	}
	if in.End != nil {
		existing.End = &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)}
	}
	if in.Summary != nil {
		existing.Summary = *in.Summary
		if *in.Summary == "" {
			existing.ForceSendFields = append(existing.ForceSendFields, "Summary")
		}
	}
	if in.Location != nil {
		existing.Location = *in.Location
		if *in.Location == "" {
			existing.ForceSendFields = append(existing.ForceSendFields, "Location")
		}
	}
	if in.Description != nil {
		existing.Description = *in.Description
		if *in.Description == "" {
			existing.ForceSendFields = append(existing.ForceSendFields, "Description")
		}
	}

	updated, err := s.provider.UpdateEvent(ctx, s.cfg.CalendarID, in.EventID, existing)
	if err != nil {
		return "", err
	}

	s.logger.Info("event updated",
		logging.Operation("update"),
		logging.Calendar(s.cfg.CalendarID),
		"event_id", in.EventID)

	link := updated.HtmlLink
	if link == "" {
		link = updateFallbackLink
	}
	return "Event updated: " + link, nil
}

// nativeStart returns the provider's comparison key for an event: the
// zoned dateTime when present, else the date-only value of an all-day
// event.
func nativeStart(e *calendar.Event) string {
	if e == nil || e.Start == nil {
		return ""
	}
	if e.Start.DateTime != "" {
		return e.Start.DateTime
	}
	return e.Start.Date
}

func nativeEnd(e *calendar.Event) string {
	if e == nil || e.End == nil {
		return ""
	}
	if e.End.DateTime != "" {
		return e.End.DateTime
	}
	return e.End.Date
}

// sortByNativeStart orders merged events by the provider-native start key
// compared as strings. This keeps aggregate ordering identical to what the
// provider emits per calendar; all-day dates interleave with timed events
// at the lexical level rather than chronologically.
func sortByNativeStart(events []*calendar.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return nativeStart(events[i]) < nativeStart(events[j])
	})
}

// toEventView maps one provider event into its display representation.
func toEventView(e *calendar.Event, zone string) (EventView, error) {
	start, err := timeutil.FormatEventTime(nativeStart(e), zone)
	if err != nil {
		return EventView{}, fmt.Errorf("event %s: bad start value: %w", e.Id, err)
	}
	end, err := timeutil.FormatEventTime(nativeEnd(e), zone)
	if err != nil {
		return EventView{}, fmt.Errorf("event %s: bad end value: %w", e.Id, err)
	}

	return EventView{
		Start:          start,
		End:            end,
		ID:             optionalString(e.Id),
		Summary:        optionalString(e.Summary),
		Description:    optionalString(e.Description),
		Location:       optionalString(e.Location),
		ConferenceLink: optionalString(e.HangoutLink),
	}, nil
}

// optionalString maps the provider's zero value to an explicit null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
