package format

import (
	"fmt"
	"strings"
	"time"
)

// Accepted layouts for calendar dates, times of day and timestamps.
//
//nolint:gochecknoglobals // Read-only layout tables.
var (
	dateLayouts = []string{"2006-01-02"}

	timestampLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
	}

	clockLayouts = []string{
		"15:04",
		"15:04:05",
		"3:04 PM",
		"3:04PM",
		"03:04 PM",
		"3:04:05 PM",
	}
)

// clockAnchor is the fixed calendar date a bare time of day is attached to before formatting.
const (
	clockAnchorYear  = 1970
	clockAnchorMonth = time.January
	clockAnchorDay   = 1
)

// ParseDate parses an appointment date. Date-only values ("2024-03-15") are calendar dates and
// are returned at midnight UTC with dateOnly set. Full timestamps are returned as parsed so the
// caller can move them into a display zone before reading the calendar date.
func ParseDate(s string) (t time.Time, dateOnly bool, err error) {
	value := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if parsed, parseErr := time.Parse(layout, value); parseErr == nil {
			return parsed, true, nil
		}
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("date %q: %w", s, ErrUnparseable)
	}
	return parsed, false, nil
}

// ParseClock parses a bare time of day such as "14:30", "14:30:00" or "2:30 PM".
// The result is anchored to 1970-01-01 in loc.
func ParseClock(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return time.Date(clockAnchorYear, clockAnchorMonth, clockAnchorDay,
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("time of day %q: %w", s, ErrUnparseable)
}

// ParseTimestamp parses an RFC 3339 timestamp. Values without an offset are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q: %w", s, ErrUnparseable)
}
