package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUADateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		want  string // RFC3339 in Kyiv when ok
	}{
		{"date first", "15.06.2025 10:00", true, "2025-06-15T10:00:00+03:00"},
		{"time first", "10:00 15.06.2025", true, "2025-06-15T10:00:00+03:00"},
		{"padded", "  10:00 15.06.2025  ", true, "2025-06-15T10:00:00+03:00"},
		{"winter offset", "08:30 15.01.2025", true, "2025-01-15T08:30:00+02:00"},
		{"empty", "", false, ""},
		{"one part", "15.06.2025", false, ""},
		{"three parts", "15.06.2025 10:00 extra", false, ""},
		{"garbage", "not a date", false, ""},
		{"bad day", "99.06.2025 10:00", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseUADateTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format(time.RFC3339))
			}
		})
	}
}

func TestNextDayUnix(t *testing.T) {
	// Plain day: exactly 24 hours.
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, Kyiv())
	next := NextDayUnix(day.Unix())
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, Kyiv()).Unix(), next)
	assert.Equal(t, int64(86400), next-day.Unix())
}

func TestNextDayUnixAcrossDSTFallback(t *testing.T) {
	// Clocks go back on the last Sunday of October: that calendar day has
	// 25 hours, so a flat +86400 would land at 23:00, not midnight.
	day := time.Date(2025, 10, 26, 0, 0, 0, 0, Kyiv())
	next := NextDayUnix(day.Unix())

	require.Equal(t, time.Date(2025, 10, 27, 0, 0, 0, 0, Kyiv()).Unix(), next)
	assert.Equal(t, int64(90000), next-day.Unix())
}

func TestDayMonthFromUnix(t *testing.T) {
	anchor := time.Date(2025, 6, 15, 0, 0, 0, 0, Kyiv()).Unix()
	assert.Equal(t, "15 червня", DayMonthFromUnix(anchor))

	january := time.Date(2025, 1, 2, 0, 0, 0, 0, Kyiv()).Unix()
	assert.Equal(t, "2 січня", DayMonthFromUnix(january))
}

func TestCurrentStamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 5, 0, 0, time.UTC)
	// 09:05 UTC is 12:05 in Kyiv summer time.
	assert.Equal(t, "12:05 15.06.2025", CurrentStamp(now))
}

func TestFormatTimeDiff(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
		ok   bool
	}{
		{"zero", 0, "", false},
		{"negative", -time.Hour, "", false},
		{"minutes only", 30 * time.Minute, "0 год 30 хв", true},
		{"exact hours", 2 * time.Hour, "2 год 0 хв", true},
		{"floor not round", 2*time.Hour + 59*time.Minute + 59*time.Second, "2 год 59 хв", true},
		{"with days", 26*time.Hour + 5*time.Minute, "1 дн 2 год 5 хв", true},
		{"zero hours with days", 24*time.Hour + 10*time.Minute, "1 дн 0 год 10 хв", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatTimeDiff(tt.d)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeDiff(t *testing.T) {
	got, ok := TimeDiff("10:00 15.06.2025", "12:00 15.06.2025")
	require.True(t, ok)
	assert.Equal(t, "2 год 0 хв", got)

	_, ok = TimeDiff("garbage", "12:00 15.06.2025")
	assert.False(t, ok)

	_, ok = TimeDiff("10:00 15.06.2025", "garbage")
	assert.False(t, ok)

	// Reversed interval is unknown, not negative.
	_, ok = TimeDiff("12:00 15.06.2025", "10:00 15.06.2025")
	assert.False(t, ok)
}

func TestSameKyivDay(t *testing.T) {
	a := time.Date(2025, 6, 15, 23, 30, 0, 0, Kyiv())
	b := time.Date(2025, 6, 16, 0, 30, 0, 0, Kyiv())
	assert.False(t, SameKyivDay(a, b))
	assert.True(t, SameKyivDay(a, a.Add(-time.Hour)))

	// 21:30 UTC on the 15th is already the 16th in Kyiv.
	utc := time.Date(2025, 6, 15, 21, 30, 0, 0, time.UTC)
	assert.True(t, SameKyivDay(utc, b))
}
