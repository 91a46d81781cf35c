package dtek

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// groupNumberRe pulls the first numeric token out of an opaque reason code
// ("kyiv_GPV_3.1" -> "3.1"). Best-effort display fallback only; the code
// format is not documented upstream.
var groupNumberRe = regexp.MustCompile(`\d+\.?\d*`)

// UnknownGroup is shown when neither the preset lookup nor the numeric
// fallback can name the house's outage group.
const UnknownGroup = "Невідомо"

// ExtractTodayUnix validates the fact.today day anchor. ok is false for
// zero, negative, non-integer, or unparsable values; callers must treat
// that as "no schedule can be built".
func ExtractTodayUnix(fact *Fact) (int64, bool) {
	if fact == nil {
		return 0, false
	}
	raw := strings.TrimSpace(string(fact.Today))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// HouseFromResponse looks up the configured house record. A missing key is
// logged (it usually means the street/house config drifted from what DTEK
// serves) and reported as nil.
func HouseFromResponse(resp *Response, houseID string) *HouseData {
	if resp == nil || resp.Data == nil {
		return nil
	}
	house, ok := resp.Data[houseID]
	if !ok {
		log.Printf("[dtek] house %q not found in response data", houseID)
		return nil
	}
	return house
}

// ReasonKey returns the house's active outage group code, or "" when the
// house carries none.
func ReasonKey(house *HouseData) string {
	if house == nil || len(house.SubTypeReason) == 0 {
		return ""
	}
	return house.SubTypeReason[0]
}

// HouseGroup resolves the human-readable group label: preset sch_names
// first, then a numeric extraction from the raw reason code, then
// UnknownGroup.
func HouseGroup(house *HouseData, preset *Preset) string {
	reason := ReasonKey(house)
	if preset != nil {
		if name, ok := preset.SchNames[reason]; ok && name != "" {
			return name
		}
	}
	if m := groupNumberRe.FindString(reason); m != "" {
		return m
	}
	return UnknownGroup
}

// HoursFor returns the hour grid for one day anchor and reason code, or nil
// when the response has no such grid.
func HoursFor(fact *Fact, reason string, dayUnix int64) HoursData {
	if fact == nil || reason == "" {
		return nil
	}
	day, ok := fact.Data[strconv.FormatInt(dayUnix, 10)]
	if !ok {
		return nil
	}
	return day[reason]
}

// HasOutagePeriod reports whether the house record describes an active
// outage: a sub_type plus at least one period endpoint.
func HasOutagePeriod(house *HouseData) bool {
	return house != nil && house.SubType != "" && (house.StartDate != "" || house.EndDate != "")
}
