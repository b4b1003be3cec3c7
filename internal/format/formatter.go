// Package format renders appointment dates, times of day and booking timestamps for display.
//
// The display locale and timezone are injected when a Formatter is built, so output is
// deterministic for a given configuration. Locale strings are BCP 47 tags matched with
// golang.org/x/text/language against the locales github.com/goodsign/monday translates;
// anything else falls back to US English.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database so configured timezones resolve on any host
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults used when no locale or timezone is configured.
const (
	DefaultLocale   = "en-US"
	DefaultTimezone = "Local"
)

// Formatter formats dates and times for one locale and timezone.
// It is immutable and safe for concurrent use.
type Formatter struct {
	tag language.Tag
	loc *time.Location
	style dateStyle
}

// New builds a Formatter for the given BCP 47 locale (e.g. "en-US") and IANA timezone
// (e.g. "Europe/Berlin"). An empty locale selects DefaultLocale; an empty timezone or
// "Local" selects the host zone.
func New(locale, timezone string) (*Formatter, error) {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidLocale, locale, err)
	}

	loc, err := loadLocation(timezone)
	if err != nil {
		return nil, err
	}

	return &Formatter{
		tag: tag,
		loc: loc,
		style: lookupStyle(tag),
	}, nil
}

// MustNew is New for static, known-good arguments. It panics on error.
func MustNew(locale, timezone string) *Formatter {
	f, err := New(locale, timezone)
	if err != nil {
		panic(err)
	}
	return f
}

func loadLocation(timezone string) (*time.Location, error) {
	switch strings.TrimSpace(timezone) {
	case "", DefaultTimezone:
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w %q", ErrUnknownTimezone, timezone), err)
	}
	return loc, nil
}

// Locale returns the configured language tag.
func (f *Formatter) Locale() language.Tag { return f.tag }

// Location returns the configured display timezone.
func (f *Formatter) Location() *time.Location { return f.loc }

// Date renders a calendar date in long form, e.g. "Friday, March 15, 2024" for English.
// Date-only input is not shifted between zones; timestamps are converted to the display
// zone before the calendar date is read.
func (f *Formatter) Date(s string) (string, error) {
	t, dateOnly, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	if !dateOnly {
		t = t.In(f.loc)
	}
	return f.style.date(t), nil
}

// Clock renders a bare time of day, e.g. "2:30 PM" for English or "14:30" for German.
func (f *Formatter) Clock(s string) (string, error) {
	t, err := ParseClock(s, f.loc)
	if err != nil {
		return "", err
	}
	return f.style.clock(t), nil
}

// ClockRange renders "start - end" for a time slot.
func (f *Formatter) ClockRange(start, end string) (string, error) {
	from, err := f.Clock(start)
	if err != nil {
		return "", err
	}
	to, err := f.Clock(end)
	if err != nil {
		return "", err
	}
	return from + " - " + to, nil
}

// Timestamp renders a booking timestamp in the display zone as long date plus clock.
func (f *Formatter) Timestamp(s string) (string, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return "", err
	}
	t = t.In(f.loc)
	return f.style.timestamp(t), nil
}

// Capitalize upper-cases the first letter of s using the configured language's casing rules
// and leaves the rest untouched ("pending" becomes "Pending").
func (f *Formatter) Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	// Casers are stateful, so one is built per call.
	return cases.Upper(f.tag).String(s[:size]) + s[size:]
}
