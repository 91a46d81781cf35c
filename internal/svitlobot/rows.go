package svitlobot

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const fieldDelimiter = ";&&&;"

// Field positions within a feed row.
const (
	fieldLightRaw  = 1
	fieldTimestamp = 2
	fieldLocation  = 3
	fieldPeople    = 5
	fieldLat       = 6
	fieldLon       = 7
)

const minFields = 6

// LightStatus is the normalized power reading of one channel.
type LightStatus int

const (
	LightOff LightStatus = 0
	LightOn  LightStatus = 1
)

// PowerRow is one parsed feed row. Optional fields that failed to parse are
// nil rather than zero so "unknown" never masquerades as a reading.
type PowerRow struct {
	City        string
	Address     string
	Timestamp   *time.Time
	PeopleCount *int
	LightStatus *LightStatus
	Lat         *float64
	Lon         *float64
	Raw         string
}

// ParseRow decodes a single feed row. ok is false for rows with too few
// fields or no resolvable city; such rows are dropped, not defaulted.
func ParseRow(row string) (PowerRow, bool) {
	if strings.TrimSpace(row) == "" {
		return PowerRow{}, false
	}

	fields := strings.Split(row, fieldDelimiter)
	if len(fields) < minFields {
		return PowerRow{}, false
	}

	city, address, ok := parseLocation(fields[fieldLocation])
	if !ok {
		return PowerRow{}, false
	}

	return PowerRow{
		City:        city,
		Address:     address,
		Timestamp:   parseTimestamp(fields[fieldTimestamp]),
		PeopleCount: parseIntField(fieldAt(fields, fieldPeople)),
		LightStatus: parseLightStatus(fields[fieldLightRaw]),
		Lat:         parseFloatField(fieldAt(fields, fieldLat)),
		Lon:         parseFloatField(fieldAt(fields, fieldLon)),
		Raw:         row,
	}, true
}

// parseLightStatus maps the raw numeric code: 1 means power on, 2 means
// power off, anything else is unknown and stays nil.
func parseLightStatus(raw string) *LightStatus {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	switch n {
	case 1:
		s := LightOn
		return &s
	case 2:
		s := LightOff
		return &s
	default:
		return nil
	}
}

// villagePrefixes are settlement markers stripped from the city part.
var villagePrefixes = []string{"с. ", "с.", "С. ", "С."}

// parseLocation splits "city->address" and strips the village prefix. ok is
// false when no city remains.
func parseLocation(raw string) (city, address string, ok bool) {
	parts := strings.SplitN(raw, "->", 2)

	city = strings.TrimSpace(parts[0])
	for _, prefix := range villagePrefixes {
		if strings.HasPrefix(city, prefix) {
			city = strings.TrimSpace(strings.TrimPrefix(city, prefix))
			break
		}
	}
	if city == "" {
		return "", "", false
	}

	if len(parts) == 2 {
		address = strings.TrimSpace(parts[1])
	}
	return city, address, true
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func fieldAt(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

func parseIntField(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatField(raw string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
