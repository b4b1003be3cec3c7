package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		timezone string
		wantErr  error
	}{
		{name: "defaults", locale: "", timezone: ""},
		{name: "explicit utc", locale: "en-US", timezone: "UTC"},
		{name: "iana zone", locale: "de-DE", timezone: "Europe/Berlin"},
		{name: "bad locale", locale: "!!", timezone: "UTC", wantErr: ErrInvalidLocale},
		{name: "bad timezone", locale: "en", timezone: "Mars/Olympus_Mons", wantErr: ErrUnknownTimezone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.locale, tt.timezone)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f.Location())
		})
	}
}

func TestFormatter_Date(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		timezone string
		input    string
		want     string
	}{
		{name: "english date only", locale: "en-US", timezone: "UTC", input: "2024-03-15", want: "Friday, March 15, 2024"},
		{name: "date only is not shifted", locale: "en-US", timezone: "Asia/Tokyo", input: "2024-03-15", want: "Friday, March 15, 2024"},
		{
			name: "timestamp moves to display zone", locale: "en-US", timezone: "Asia/Tokyo",
			input: "2024-03-15T23:30:00Z", want: "Saturday, March 16, 2024",
		},
		{name: "spanish", locale: "es-MX", timezone: "UTC", input: "2024-03-15", want: "viernes, 15 de marzo de 2024"},
		{name: "french", locale: "fr-FR", timezone: "UTC", input: "2024-03-15", want: "vendredi 15 mars 2024"},
		{name: "german", locale: "de", timezone: "UTC", input: "2024-03-15", want: "Freitag, 15. März 2024"},
		{name: "british english", locale: "en-GB", timezone: "UTC", input: "2024-03-15", want: "Friday, 15 March 2024"},
		{name: "unsupported locale falls back to english", locale: "sw-KE", timezone: "UTC", input: "2024-01-01", want: "Monday, January 1, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MustNew(tt.locale, tt.timezone)
			got, err := f.Date(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_DateUnparseable(t *testing.T) {
	f := MustNew("en-US", "UTC")
	for _, input := range []string{"", "15/03/2024", "tomorrow", "2024-13-01"} {
		_, err := f.Date(input)
		assert.ErrorIs(t, err, ErrUnparseable, "input %q", input)
	}
}

func TestFormatter_Clock(t *testing.T) {
	tests := []struct {
		locale string
		input  string
		want   string
	}{
		{locale: "en-US", input: "14:30", want: "2:30 PM"},
		{locale: "en-US", input: "09:05", want: "9:05 AM"},
		{locale: "en-US", input: "00:00", want: "12:00 AM"},
		{locale: "en-US", input: "12:00", want: "12:00 PM"},
		{locale: "en-US", input: "14:30:59", want: "2:30 PM"},
		{locale: "en-US", input: "2:30 pm", want: "2:30 PM"},
		{locale: "en-US", input: "10:15 AM", want: "10:15 AM"},
		{locale: "es", input: "14:30", want: "14:30"},
		{locale: "en-GB", input: "14:30", want: "14:30"},
		{locale: "fr", input: "14:30", want: "14:30"},
		{locale: "de", input: "9:05 AM", want: "09:05"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.input, func(t *testing.T) {
			got, err := MustNew(tt.locale, "UTC").Clock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_ClockUnparseable(t *testing.T) {
	f := MustNew("en-US", "UTC")
	for _, input := range []string{"", "25:00", "noon", "14h30"} {
		_, err := f.Clock(input)
		assert.ErrorIs(t, err, ErrUnparseable, "input %q", input)
	}
}

func TestFormatter_ClockRange(t *testing.T) {
	f := MustNew("en-US", "UTC")

	got, err := f.ClockRange("09:00", "09:30")
	require.NoError(t, err)
	assert.Equal(t, "9:00 AM - 9:30 AM", got)

	_, err = f.ClockRange("09:00", "later")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestFormatter_Timestamp(t *testing.T) {
	got, err := MustNew("en-US", "UTC").Timestamp("2024-03-10T09:15:00Z")
	require.NoError(t, err)
	assert.Equal(t, "Sunday, March 10, 2024 at 9:15 AM", got)

	got, err = MustNew("de-DE", "Europe/Berlin").Timestamp("2024-03-10T09:15:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "Sonntag, 10. März 2024 um 10:15", got)

	_, err = MustNew("en-US", "UTC").Timestamp("2024-03-10")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestFormatter_Capitalize(t *testing.T) {
	tests := []struct {
		locale string
		input  string
		want   string
	}{
		{locale: "en", input: "pending", want: "Pending"},
		{locale: "en", input: "confirmed", want: "Confirmed"},
		{locale: "en", input: "no_show", want: "No_show"},
		{locale: "en", input: "", want: ""},
		{locale: "en", input: "éclair", want: "Éclair"},
		{locale: "tr", input: "iptal", want: "İptal"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MustNew(tt.locale, "UTC").Capitalize(tt.input))
		})
	}
}

func TestParseClock_AnchorsToFixedDate(t *testing.T) {
	loc := time.FixedZone("clinic", 2*60*60)
	got, err := ParseClock("16:45", loc)
	require.NoError(t, err)
	assert.Equal(t, 1970, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, 16, got.Hour())
	assert.Equal(t, 45, got.Minute())
	assert.Equal(t, loc, got.Location())
}

func TestParseDate_ReportsDateOnly(t *testing.T) {
	_, dateOnly, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.True(t, dateOnly)

	_, dateOnly, err = ParseDate("2024-03-15T10:00:00Z")
	require.NoError(t, err)
	assert.False(t, dateOnly)
}
