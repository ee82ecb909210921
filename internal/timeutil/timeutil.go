package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// WallClockLayout is the datetime shape accepted from the agent runtime:
// date and time separated by "T", no offset, no fractional seconds.
const WallClockLayout = "2006-01-02T15:04:05"

// DisplayLayout is the fixed human-readable rendering used for event times.
const DisplayLayout = "2006/01/02 15:04:05"

// ClockLayout is the rendering used for current-time lookups.
const ClockLayout = "2006-01-02 15:04:05"

// dateOnlyLayout matches provider values for all-day events.
const dateOnlyLayout = "2006-01-02"

var (
	// ErrInvalidDatetimeFormat indicates the input string does not match
	// WallClockLayout or does not denote a real calendar instant.
	ErrInvalidDatetimeFormat = errors.New("invalid datetime format, expected YYYY-MM-DDTHH:MM:SS")

	// ErrUnknownTimezone indicates the timezone name is not present in the
	// IANA timezone database.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

var wallClockPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)

// LoadZone resolves an IANA timezone name (e.g. "America/Chicago").
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// ParseWallClock interprets a naive datetime string as local time in the
// named timezone and returns the resulting zoned instant. The wall-clock
// fields are preserved exactly; only the offset is attached.
func ParseWallClock(value, zone string) (time.Time, error) {
	if !wallClockPattern.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDatetimeFormat, value)
	}

	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(WallClockLayout, value, loc)
	if err != nil {
		// Pattern matched but the fields are out of range (month 13, hour 99).
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDatetimeFormat, value)
	}

	return t, nil
}

// FormatEventTime converts a provider start/end value into DisplayLayout in
// the named timezone. The value is either a full RFC3339 datetime or a
// date-only string; date-only values (all-day events) are taken as local
// midnight in the display timezone, matching provider semantics.
func FormatEventTime(value, zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}

	if len(value) == len(dateOnlyLayout) {
		t, err := time.ParseInLocation(dateOnlyLayout, value, loc)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDatetimeFormat, value)
		}
		return t.Format(DisplayLayout), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDatetimeFormat, value)
	}
	return t.In(loc).Format(DisplayLayout), nil
}

// CurrentTime returns the current time in the named timezone, rendered as
// ClockLayout.
func CurrentTime(zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	return time.Now().In(loc).Format(ClockLayout), nil
}

// CurrentDate returns today's date in the named timezone as YYYY-MM-DD.
func CurrentDate(zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	return time.Now().In(loc).Format(dateOnlyLayout), nil
}
