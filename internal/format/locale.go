package format

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// layout holds the Go time layouts used for one display language. Weekday and month
// names in the rendered output are translated by monday.
type layout struct {
	date  string
	clock string
	// join sits between the long date and the clock of a booking timestamp.
	join string
}

const (
	clock12 = "3:04 PM"
	clock24 = "15:04"
)

//nolint:gochecknoglobals // Read-only layout tables and matcher.
var (
	defaultLayout = layout{date: "Monday, 2 January 2006", clock: clock24, join: " "}

	// layoutsByLanguage is keyed by base language; regions share their language's layout.
	layoutsByLanguage = map[string]layout{
		"en": {date: "Monday, January 2, 2006", clock: clock12, join: " at "},
		"es": {date: "Monday, 2 de January de 2006", clock: clock24, join: ", "},
		"pt": {date: "Monday, 2 de January de 2006", clock: clock24, join: ", "},
		"fr": {date: "Monday 2 January 2006", clock: clock24, join: " à "},
		"de": {date: "Monday, 2. January 2006", clock: clock24, join: " um "},
		"nl": {date: "Monday 2 January 2006", clock: clock24, join: " om "},
		"it": {date: "Monday 2 January 2006", clock: clock24, join: " alle "},
	}

	// Non-US English keeps the day-first order.
	layoutsByLocale = map[monday.Locale]layout{
		monday.LocaleEnGB: {date: "Monday, 2 January 2006", clock: clock24, join: " at "},
	}

	// supportedLocales and supportedTags are index-aligned. en_US comes first so it is the
	// matcher fallback.
	supportedLocales, supportedTags = buildSupported()

	matcher = language.NewMatcher(supportedTags)
)

func buildSupported() ([]monday.Locale, []language.Tag) {
	locales := []monday.Locale{monday.LocaleEnUS}
	tags := []language.Tag{language.AmericanEnglish}
	for _, l := range monday.ListLocales() {
		if l == monday.LocaleEnUS {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(string(l), "_", "-"))
		if err != nil {
			continue
		}
		locales = append(locales, l)
		tags = append(tags, tag)
	}
	return locales, tags
}

// dateStyle pairs a monday locale with its layouts.
type dateStyle struct {
	locale monday.Locale
	layout layout
}

// lookupStyle returns the closest supported locale for tag, falling back to US English.
func lookupStyle(tag language.Tag) dateStyle {
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No || index < 0 || index >= len(supportedLocales) {
		index = 0
	}
	locale := supportedLocales[index]
	if l, ok := layoutsByLocale[locale]; ok {
		return dateStyle{locale: locale, layout: l}
	}
	base, _ := supportedTags[index].Base()
	if l, ok := layoutsByLanguage[base.String()]; ok {
		return dateStyle{locale: locale, layout: l}
	}
	return dateStyle{locale: locale, layout: defaultLayout}
}

// date renders t's calendar date in long form.
func (s dateStyle) date(t time.Time) string {
	return monday.Format(t, s.layout.date, s.locale)
}

// clock renders the hour and minute of t.
func (s dateStyle) clock(t time.Time) string {
	return monday.Format(t, s.layout.clock, s.locale)
}

// timestamp renders the long date and the clock of t.
func (s dateStyle) timestamp(t time.Time) string {
	return s.date(t) + s.layout.join + s.clock(t)
}
