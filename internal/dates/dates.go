// Package dates holds the Kyiv-timezone date handling shared by the DTEK
// client and the message formatters. DTEK emits two datetime orders
// ("10:00 15.06.2025" and "15.06.2025 10:00") and anchors its schedule days
// on unix timestamps at Kyiv midnight.
package dates

import (
	"fmt"
	"strings"
	"time"
)

var kyiv *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Kyiv")
	if err != nil {
		// tzdata is compiled into the image; a missing zone means a broken
		// build, not a runtime condition worth limping through.
		panic(fmt.Sprintf("load Europe/Kyiv: %v", err))
	}
	kyiv = loc
}

// Kyiv returns the fixed source timezone.
func Kyiv() *time.Location {
	return kyiv
}

var monthsGenitive = [...]string{
	"січня", "лютого", "березня", "квітня", "травня", "червня",
	"липня", "серпня", "вересня", "жовтня", "листопада", "грудня",
}

// ParseUADateTime parses a DTEK datetime string in either field order,
// interpreting it in the Kyiv timezone. ok is false for anything that is
// not exactly a date part and a time part.
func ParseUADateTime(s string) (time.Time, bool) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return time.Time{}, false
	}

	datePart, timePart := parts[0], parts[1]
	if !strings.Contains(datePart, ".") {
		datePart, timePart = timePart, datePart
	}

	t, err := time.ParseInLocation("02.01.2006 15:04", datePart+" "+timePart, kyiv)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CurrentStamp formats the current moment the way DTEK expects its
// updateFact cache-buster: "HH:MM DD.MM.YYYY" in Kyiv.
func CurrentStamp(now time.Time) string {
	return now.In(kyiv).Format("15:04 02.01.2006")
}

// NextDayUnix advances a day-anchor timestamp by one calendar day in Kyiv.
// AddDate rather than +86400s so the anchor stays on midnight across DST
// switches.
func NextDayUnix(unix int64) int64 {
	return time.Unix(unix, 0).In(kyiv).AddDate(0, 0, 1).Unix()
}

// DayMonthFromUnix renders a day anchor as "15 червня".
func DayMonthFromUnix(unix int64) string {
	t := time.Unix(unix, 0).In(kyiv)
	return fmt.Sprintf("%d %s", t.Day(), monthsGenitive[t.Month()-1])
}

// FormatTime renders the clock part of t in Kyiv.
func FormatTime(t time.Time) string {
	return t.In(kyiv).Format("15:04")
}

// FormatDayMonth renders t as "15 червня" in Kyiv.
func FormatDayMonth(t time.Time) string {
	t = t.In(kyiv)
	return fmt.Sprintf("%d %s", t.Day(), monthsGenitive[t.Month()-1])
}

// SameKyivDay reports whether both instants fall on the same calendar day
// in Kyiv.
func SameKyivDay(a, b time.Time) bool {
	a, b = a.In(kyiv), b.In(kyiv)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// FormatTimeDiff breaks a duration into days/hours/minutes by floor
// division and renders it in Ukrainian. Days are omitted when zero; hours
// and minutes always appear. ok is false for zero or negative durations.
func FormatTimeDiff(d time.Duration) (string, bool) {
	if d <= 0 {
		return "", false
	}

	totalMinutes := int64(d / time.Minute)
	days := totalMinutes / (24 * 60)
	hours := (totalMinutes / 60) % 24
	minutes := totalMinutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d дн", days))
	}
	parts = append(parts, fmt.Sprintf("%d год", hours), fmt.Sprintf("%d хв", minutes))
	return strings.Join(parts, " "), true
}

// TimeDiff parses both endpoints and formats the elapsed duration between
// them. ok is false when either endpoint is unparsable or the interval is
// not positive.
func TimeDiff(from, to string) (string, bool) {
	start, ok := ParseUADateTime(from)
	if !ok {
		return "", false
	}
	end, ok := ParseUADateTime(to)
	if !ok {
		return "", false
	}
	return FormatTimeDiff(end.Sub(start))
}
