// Package schedule reconciles the raw DTEK hour grids into one request's
// schedule context and renders them as message text blocks.
package schedule

import (
	"outage-bot/internal/dates"
	"outage-bot/internal/dtek"
)

// Data is the schedule context derived once per DTEK response: the day
// anchors, the house's active reason code, and the hour grids for today and
// (when published) tomorrow.
type Data struct {
	TodayUnix     int64
	TomorrowUnix  int64
	ReasonKey     string
	Preset        *dtek.Preset
	HoursToday    dtek.HoursData
	HoursTomorrow dtek.HoursData
}

// Extract builds the schedule context. The house record comes from the
// explicit argument when given, otherwise from the houseID lookup in the
// response. Both the day anchor and the reason code are mandatory: if
// either is unresolvable the whole schedule is nil — partial data is no
// data for the schedule block, while the outage-period message can still
// render without it.
func Extract(resp *dtek.Response, house *dtek.HouseData, houseID string) *Data {
	if resp == nil {
		return nil
	}
	if house == nil {
		house = dtek.HouseFromResponse(resp, houseID)
	}

	reason := dtek.ReasonKey(house)
	if reason == "" {
		return nil
	}

	todayUnix, ok := dtek.ExtractTodayUnix(&resp.Fact)
	if !ok {
		return nil
	}
	tomorrowUnix := dates.NextDayUnix(todayUnix)

	return &Data{
		TodayUnix:     todayUnix,
		TomorrowUnix:  tomorrowUnix,
		ReasonKey:     reason,
		Preset:        &resp.Preset,
		HoursToday:    dtek.HoursFor(&resp.Fact, reason, todayUnix),
		HoursTomorrow: dtek.HoursFor(&resp.Fact, reason, tomorrowUnix),
	}
}

// HasAnyOutage reports whether any hour carries a status other than "yes".
// An all-clear day is omitted from messages and image layouts.
func HasAnyOutage(hours dtek.HoursData) bool {
	for _, status := range hours {
		if status != dtek.StatusYes {
			return true
		}
	}
	return false
}
