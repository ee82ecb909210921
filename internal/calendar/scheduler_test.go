package calendar

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/schedbot/schedbot/internal/timeutil"
)

type listCall struct {
	calendarID string
	timeMin    time.Time
	timeMax    time.Time
	maxResults int64
}

type insertCall struct {
	calendarID     string
	event          *calendar.Event
	withConference bool
}

type updateCall struct {
	calendarID string
	eventID    string
	event      *calendar.Event
}

// fakeProvider is an in-memory Provider for scheduler tests.
type fakeProvider struct {
	calendars    []CalendarRef
	calendarsErr error

	events    map[string][]*calendar.Event
	eventsErr map[string]error
	listCalls []listCall

	stored map[string]*calendar.Event
	getErr error

	insertResult *calendar.Event
	insertErr    error
	insertCalls  []insertCall

	updateResult *calendar.Event
	updateErr    error
	updateCalls  []updateCall
}

func (f *fakeProvider) ListCalendars(ctx context.Context) ([]CalendarRef, error) {
	return f.calendars, f.calendarsErr
}

func (f *fakeProvider) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, maxResults int64) ([]*calendar.Event, error) {
	f.listCalls = append(f.listCalls, listCall{calendarID, timeMin, timeMax, maxResults})
	if err := f.eventsErr[calendarID]; err != nil {
		return nil, err
	}
	return f.events[calendarID], nil
}

func (f *fakeProvider) GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	event, ok := f.stored[eventID]
	if !ok {
		return nil, errors.New("event not found")
	}
	return event, nil
}

func (f *fakeProvider) InsertEvent(ctx context.Context, calendarID string, event *calendar.Event, withConference bool) (*calendar.Event, error) {
	f.insertCalls = append(f.insertCalls, insertCall{calendarID, event, withConference})
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.insertResult != nil {
		return f.insertResult, nil
	}
	return event, nil
}

func (f *fakeProvider) UpdateEvent(ctx context.Context, calendarID, eventID string, event *calendar.Event) (*calendar.Event, error) {
	f.updateCalls = append(f.updateCalls, updateCall{calendarID, eventID, event})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	return event, nil
}

func timedEvent(id, summary, start, end string) *calendar.Event {
	return &calendar.Event{
		Id:      id,
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start},
		End:     &calendar.EventDateTime{DateTime: end},
	}
}

func allDayEvent(id, summary, start, end string) *calendar.Event {
	return &calendar.Event{
		Id:      id,
		Summary: summary,
		Start:   &calendar.EventDateTime{Date: start},
		End:     &calendar.EventDateTime{Date: end},
	}
}

func TestListEventsNoSelectedCalendars(t *testing.T) {
	provider := &fakeProvider{
		calendars: []CalendarRef{
			{ID: "hidden", Selected: false},
		},
	}
	s := NewScheduler(provider, Config{}, nil)

	views, err := s.ListEvents(context.Background(), "2024-06-01T00:00:00", "2024-06-02T00:00:00", 10, "America/Chicago")
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
	assert.Empty(t, provider.listCalls, "unselected calendars must not be queried")
}

func TestListEventsMergesSelectedCalendars(t *testing.T) {
	provider := &fakeProvider{
		calendars: []CalendarRef{
			{ID: "work", Selected: true},
			{ID: "ignored", Selected: false},
			{ID: "personal", Selected: true},
		},
		events: map[string][]*calendar.Event{
			"work": {
				timedEvent("e2", "Lunch", "2024-06-01T12:00:00-05:00", "2024-06-01T13:00:00-05:00"),
				timedEvent("e1", "Standup", "2024-06-01T10:00:00-05:00", "2024-06-01T11:00:00-05:00"),
			},
			"personal": {
				timedEvent("e3", "Dentist", "2024-06-01T09:00:00-05:00", "2024-06-01T09:30:00-05:00"),
			},
		},
	}
	s := NewScheduler(provider, Config{}, nil)

	views, err := s.ListEvents(context.Background(), "2024-06-01T00:00:00", "2024-06-02T00:00:00", 5, "America/Chicago")
	require.NoError(t, err)
	require.Len(t, views, 3)

	// Globally re-sorted by the native start key across calendars.
	assert.Equal(t, "Dentist", *views[0].Summary)
	assert.Equal(t, "Standup", *views[1].Summary)
	assert.Equal(t, "Lunch", *views[2].Summary)

	// Only the selected calendars were queried, each with the per-calendar cap.
	require.Len(t, provider.listCalls, 2)
	for _, call := range provider.listCalls {
		assert.EqualValues(t, 5, call.maxResults)
	}
}

func TestListEventsLexicalOrderWithAllDayEvents(t *testing.T) {
	provider := &fakeProvider{
		calendars: []CalendarRef{{ID: "cal", Selected: true}},
		events: map[string][]*calendar.Event{
			"cal": {
				timedEvent("timed", "Early call", "2024-06-01T00:30:00-05:00", "2024-06-01T01:00:00-05:00"),
				allDayEvent("allday", "Conference", "2024-06-01", "2024-06-02"),
			},
		},
	}
	s := NewScheduler(provider, Config{}, nil)

	views, err := s.ListEvents(context.Background(), "2024-06-01T00:00:00", "2024-06-03T00:00:00", 10, "America/Chicago")
	require.NoError(t, err)
	require.Len(t, views, 2)

	// The date-only key "2024-06-01" sorts before "2024-06-01T00:30:00-05:00"
	// as a string, so the all-day event comes first.
	assert.Equal(t, "Conference", *views[0].Summary)
	assert.Equal(t, "Early call", *views[1].Summary)
	assert.Equal(t, "2024/06/01 00:00:00", views[0].Start)
}

func TestListEventsDisplayMapping(t *testing.T) {
	provider := &fakeProvider{
		calendars: []CalendarRef{{ID: "cal", Selected: true}},
		events: map[string][]*calendar.Event{
			"cal": {
				timedEvent("abc123", "Standup", "2024-06-01T10:00:00-05:00", "2024-06-01T11:00:00-05:00"),
			},
		},
	}
	s := NewScheduler(provider, Config{}, nil)

	views, err := s.ListEvents(context.Background(), "2024-06-01T00:00:00", "2024-06-02T00:00:00", 10, "America/Chicago")
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "2024/06/01 10:00:00", view.Start)
	assert.Equal(t, "2024/06/01 11:00:00", view.End)
	require.NotNil(t, view.ID)
	assert.Equal(t, "abc123", *view.ID)
	require.NotNil(t, view.Summary)
	assert.Equal(t, "Standup", *view.Summary)

	// Absent optional fields are explicit nulls, not missing keys.
	assert.Nil(t, view.Description)
	assert.Nil(t, view.Location)
	assert.Nil(t, view.ConferenceLink)
}

func TestListEventsFailFast(t *testing.T) {
	providerErr := errors.New("backend unavailable")
	provider := &fakeProvider{
		calendars: []CalendarRef{
			{ID: "ok", Selected: true},
			{ID: "broken", Selected: true},
		},
		events: map[string][]*calendar.Event{
			"ok": {timedEvent("e1", "Fine", "2024-06-01T10:00:00-05:00", "2024-06-01T11:00:00-05:00")},
		},
		eventsErr: map[string]error{"broken": providerErr},
	}
	s := NewScheduler(provider, Config{}, nil)

	views, err := s.ListEvents(context.Background(), "2024-06-01T00:00:00", "2024-06-02T00:00:00", 10, "America/Chicago")
	assert.Nil(t, views, "no partial results on provider failure")
	require.Error(t, err)
	assert.ErrorIs(t, err, providerErr)
}

func TestListEventsInputErrors(t *testing.T) {
	s := NewScheduler(&fakeProvider{}, Config{}, nil)

	_, err := s.ListEvents(context.Background(), "yesterday", "2024-06-02T00:00:00", 10, "America/Chicago")
	assert.ErrorIs(t, err, timeutil.ErrInvalidDatetimeFormat)

	_, err = s.ListEvents(context.Background(), "2024-06-01T00:00:00", "2024-06-02T00:00:00", 10, "Middle/Earth")
	assert.ErrorIs(t, err, timeutil.ErrUnknownTimezone)
}

func TestListEventsDefaults(t *testing.T) {
	provider := &fakeProvider{
		calendars: []CalendarRef{{ID: "cal", Selected: true}},
	}
	s := NewScheduler(provider, Config{}, nil)

	_, err := s.ListEvents(context.Background(), "2024-06-01T00:00:00", "2024-06-02T00:00:00", 0, "")
	require.NoError(t, err)
	require.Len(t, provider.listCalls, 1)
	assert.EqualValues(t, DefaultMaxResults, provider.listCalls[0].maxResults)

	// Default timezone applies to window interpretation (CDT is UTC-5).
	assert.Equal(t, "2024-06-01T00:00:00-05:00", provider.listCalls[0].timeMin.Format(time.RFC3339))
}

func TestCreateEvent(t *testing.T) {
	provider := &fakeProvider{
		insertResult: &calendar.Event{
			Id:       "new1",
			HtmlLink: "https://calendar.example/event/new1",
		},
	}
	s := NewScheduler(provider, Config{CalendarID: "team@group.calendar.google.com"}, nil)

	msg, err := s.CreateEvent(context.Background(), CreateInput{
		Start:   "2024-07-01T10:30:00",
		End:     "2024-07-01T11:30:00",
		Summary: "Test event",
	})
	require.NoError(t, err)
	assert.Equal(t, "Event created: https://calendar.example/event/new1", msg)

	require.Len(t, provider.insertCalls, 1)
	call := provider.insertCalls[0]
	assert.Equal(t, "team@group.calendar.google.com", call.calendarID)
	assert.False(t, call.withConference)

	body := call.event
	assert.Equal(t, "Test event", body.Summary)
	assert.Equal(t, "2024-07-01T10:30:00-05:00", body.Start.DateTime)
	assert.Equal(t, "2024-07-01T11:30:00-05:00", body.End.DateTime)

	// Empty location/description are omitted entirely.
	assert.Empty(t, body.Location)
	assert.Empty(t, body.Description)
	assert.Empty(t, body.ForceSendFields)
}

func TestCreateEventWithOptionalFields(t *testing.T) {
	provider := &fakeProvider{insertResult: &calendar.Event{HtmlLink: "https://x"}}
	s := NewScheduler(provider, Config{}, nil)

	_, err := s.CreateEvent(context.Background(), CreateInput{
		Start:         "2024-07-01T10:30:00",
		End:           "2024-07-01T11:30:00",
		Summary:       "Planning",
		Location:      "Room 4",
		Description:   "Quarterly planning",
		TimeZone:      "Europe/Berlin",
		AddConference: true,
	})
	require.NoError(t, err)

	require.Len(t, provider.insertCalls, 1)
	call := provider.insertCalls[0]
	assert.True(t, call.withConference)
	assert.Equal(t, "Room 4", call.event.Location)
	assert.Equal(t, "Quarterly planning", call.event.Description)
	assert.Equal(t, "2024-07-01T10:30:00+02:00", call.event.Start.DateTime)
}

func TestCreateEventFallbackLink(t *testing.T) {
	provider := &fakeProvider{insertResult: &calendar.Event{Id: "x"}}
	s := NewScheduler(provider, Config{}, nil)

	msg, err := s.CreateEvent(context.Background(), CreateInput{
		Start:   "2024-07-01T10:30:00",
		End:     "2024-07-01T11:30:00",
		Summary: "Test event",
	})
	require.NoError(t, err)
	assert.Equal(t, "Event created: Failed to create event", msg)
}

func TestCreateEventValidation(t *testing.T) {
	s := NewScheduler(&fakeProvider{}, Config{}, nil)

	_, err := s.CreateEvent(context.Background(), CreateInput{
		Start:   "2024-07-01T11:30:00",
		End:     "2024-07-01T10:30:00",
		Summary: "Backwards",
	})
	assert.ErrorIs(t, err, ErrInvalidEventWindow)

	_, err = s.CreateEvent(context.Background(), CreateInput{
		Start:   "2024-07-01T10:30:00",
		End:     "2024-07-01T11:30:00",
		Summary: "   ",
	})
	assert.Error(t, err)

	_, err = s.CreateEvent(context.Background(), CreateInput{
		Start:   "July 1st",
		End:     "2024-07-01T11:30:00",
		Summary: "Bad start",
	})
	assert.ErrorIs(t, err, timeutil.ErrInvalidDatetimeFormat)
}

func TestCreateEventProviderErrorSurfaced(t *testing.T) {
	providerErr := errors.New("quota exceeded")
	s := NewScheduler(&fakeProvider{insertErr: providerErr}, Config{}, nil)

	_, err := s.CreateEvent(context.Background(), CreateInput{
		Start:   "2024-07-01T10:30:00",
		End:     "2024-07-01T11:30:00",
		Summary: "Test event",
	})
	assert.ErrorIs(t, err, providerErr)
}

func TestUpdateEventNoFieldsIsNoOp(t *testing.T) {
	stored := timedEvent("ev1", "Original", "2024-06-01T10:00:00-05:00", "2024-06-01T11:00:00-05:00")
	stored.Location = "Room 1"
	stored.Description = "Keep me"
	provider := &fakeProvider{
		stored:       map[string]*calendar.Event{"ev1": stored},
		updateResult: &calendar.Event{HtmlLink: "https://x"},
	}
	s := NewScheduler(provider, Config{}, nil)

	msg, err := s.UpdateEvent(context.Background(), UpdateInput{EventID: "ev1"})
	require.NoError(t, err)
	assert.Equal(t, "Event updated: https://x", msg)

	require.Len(t, provider.updateCalls, 1)
	call := provider.updateCalls[0]
	assert.Equal(t, "ev1", call.eventID)

	// The submitted body is exactly the fetched representation.
	assert.Equal(t, stored, call.event)
	assert.Equal(t, "Original", call.event.Summary)
	assert.Equal(t, "Room 1", call.event.Location)
	assert.Equal(t, "Keep me", call.event.Description)
	assert.Equal(t, "2024-06-01T10:00:00-05:00", call.event.Start.DateTime)
}

func TestUpdateEventOverlaysOnlySuppliedFields(t *testing.T) {
	stored := timedEvent("ev1", "Original", "2024-06-01T10:00:00-05:00", "2024-06-01T11:00:00-05:00")
	stored.Location = "Room 1"
	provider := &fakeProvider{
		stored:       map[string]*calendar.Event{"ev1": stored},
		updateResult: &calendar.Event{HtmlLink: "https://x"},
	}
	s := NewScheduler(provider, Config{}, nil)

	newStart := "2024-06-01T14:00:00"
	newSummary := "Moved"
	_, err := s.UpdateEvent(context.Background(), UpdateInput{
		EventID: "ev1",
		Start:   &newStart,
		Summary: &newSummary,
	})
	require.NoError(t, err)

	require.Len(t, provider.updateCalls, 1)
	body := provider.updateCalls[0].event
	assert.Equal(t, "2024-06-01T14:00:00-05:00", body.Start.DateTime)
	assert.Equal(t, "Moved", body.Summary)

	// Untouched fields ride along unchanged.
	assert.Equal(t, "2024-06-01T11:00:00-05:00", body.End.DateTime)
	assert.Equal(t, "Room 1", body.Location)
}

func TestUpdateEventClearsFieldWithEmptyString(t *testing.T) {
	stored := timedEvent("ev1", "Original", "2024-06-01T10:00:00-05:00", "2024-06-01T11:00:00-05:00")
	stored.Location = "Room 1"
	provider := &fakeProvider{
		stored:       map[string]*calendar.Event{"ev1": stored},
		updateResult: &calendar.Event{HtmlLink: "https://x"},
	}
	s := NewScheduler(provider, Config{}, nil)

	empty := ""
	_, err := s.UpdateEvent(context.Background(), UpdateInput{
		EventID:  "ev1",
		Location: &empty,
	})
	require.NoError(t, err)

	body := provider.updateCalls[0].event
	assert.Empty(t, body.Location)
	assert.Contains(t, body.ForceSendFields, "Location")
}

func TestUpdateEventValidation(t *testing.T) {
	s := NewScheduler(&fakeProvider{}, Config{}, nil)

	_, err := s.UpdateEvent(context.Background(), UpdateInput{})
	assert.Error(t, err)

	start := "2024-06-01T12:00:00"
	end := "2024-06-01T10:00:00"
	_, err = s.UpdateEvent(context.Background(), UpdateInput{EventID: "e", Start: &start, End: &end})
	assert.ErrorIs(t, err, ErrInvalidEventWindow)

	bad := "noonish"
	_, err = s.UpdateEvent(context.Background(), UpdateInput{EventID: "e", Start: &bad})
	assert.ErrorIs(t, err, timeutil.ErrInvalidDatetimeFormat)
}

func TestUpdateEventProviderErrorsSurfaced(t *testing.T) {
	getErr := errors.New("not found")
	s := NewScheduler(&fakeProvider{getErr: getErr}, Config{}, nil)
	_, err := s.UpdateEvent(context.Background(), UpdateInput{EventID: "missing"})
	assert.ErrorIs(t, err, getErr)

	updateErr := errors.New("rejected")
	provider := &fakeProvider{
		stored:    map[string]*calendar.Event{"ev1": timedEvent("ev1", "x", "2024-06-01T10:00:00-05:00", "2024-06-01T11:00:00-05:00")},
		updateErr: updateErr,
	}
	s = NewScheduler(provider, Config{}, nil)
	_, err = s.UpdateEvent(context.Background(), UpdateInput{EventID: "ev1"})
	assert.ErrorIs(t, err, updateErr)
}

func TestSchedulerCapabilities(t *testing.T) {
	s := NewScheduler(&fakeProvider{}, Config{}, nil)

	assert.True(t, s.Supports(CapabilitySync))
	assert.False(t, s.Supports(CapabilityAsync))
}

func TestCreateEventAsyncUnsupported(t *testing.T) {
	provider := &fakeProvider{}
	s := NewScheduler(provider, Config{}, nil)

	_, err := s.CreateEventAsync(context.Background(), CreateInput{
		Start:   "2024-06-01T10:00:00",
		End:     "2024-06-01T11:00:00",
		Summary: "Dentist",
	})
	require.ErrorIs(t, err, ErrUnsupportedOperation)
	assert.Empty(t, provider.insertCalls, "unsupported invocation must not reach the provider")
}

func TestCreateEventLogAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	provider := &fakeProvider{
		insertResult: &calendar.Event{Id: "ev1", HtmlLink: "https://calendar.example/created"},
	}
	s := NewScheduler(provider, Config{CalendarID: "team"}, logger)

	_, err := s.CreateEvent(context.Background(), CreateInput{
		Start:   "2024-06-01T10:00:00",
		End:     "2024-06-01T11:00:00",
		Summary: "Dentist",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "operation=create")
	assert.Contains(t, out, "calendar=team")
}

func TestConfigDefaults(t *testing.T) {
	s := NewScheduler(&fakeProvider{}, Config{}, nil)
	assert.Equal(t, DefaultCalendarID, s.Config().CalendarID)
	assert.Equal(t, DefaultTimeZone, s.Config().TimeZone)

	s = NewScheduler(&fakeProvider{}, Config{CalendarID: "cal", TimeZone: "UTC"}, nil)
	assert.Equal(t, "cal", s.Config().CalendarID)
	assert.Equal(t, "UTC", s.Config().TimeZone)
}
