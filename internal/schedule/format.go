package schedule

import (
	"fmt"
	"strings"

	"outage-bot/internal/dates"
	"outage-bot/internal/dtek"
)

// TimeSegment is a contiguous span of one status, produced in half-hour
// granularity and merged before rendering.
type TimeSegment struct {
	From   string // "HH:MM"
	To     string // "HH:MM"
	Status dtek.HourStatus
}

var statusIcons = map[dtek.HourStatus]string{
	dtek.StatusYes:     "🟢",
	dtek.StatusNo:      "🔴",
	dtek.StatusMFirst:  "🟡",
	dtek.StatusMSecond: "🟡",
}

// buildHalfHourSlots expands the 24 hour codes into ordered segments. The
// transition codes split their hour into two opposite half-hour segments;
// every other code covers the full hour.
func buildHalfHourSlots(hours dtek.HoursData) []TimeSegment {
	slots := make([]TimeSegment, 0, 24)

	for h := 1; h <= 24; h++ {
		status, ok := hours[fmt.Sprintf("%d", h)]
		if !ok {
			continue
		}

		start := fmt.Sprintf("%02d:00", h-1)
		half := fmt.Sprintf("%02d:30", h-1)
		end := fmt.Sprintf("%02d:00", h)

		switch status {
		case dtek.StatusFirst:
			slots = append(slots,
				TimeSegment{From: start, To: half, Status: dtek.StatusNo},
				TimeSegment{From: half, To: end, Status: dtek.StatusYes})
		case dtek.StatusSecond:
			slots = append(slots,
				TimeSegment{From: start, To: half, Status: dtek.StatusYes},
				TimeSegment{From: half, To: end, Status: dtek.StatusNo})
		case dtek.StatusYes, dtek.StatusNo, dtek.StatusMFirst, dtek.StatusMSecond:
			slots = append(slots, TimeSegment{From: start, To: end, Status: status})
		}
	}
	return slots
}

// mergeAdjacent collapses consecutive segments with the same status whose
// boundaries touch. Input is already hour-ascending, so one linear pass
// suffices.
func mergeAdjacent(segments []TimeSegment) []TimeSegment {
	if len(segments) == 0 {
		return nil
	}

	merged := []TimeSegment{segments[0]}
	for _, seg := range segments[1:] {
		last := &merged[len(merged)-1]
		if last.Status == seg.Status && last.To == seg.From {
			last.To = seg.To
		} else {
			merged = append(merged, seg)
		}
	}
	return merged
}

// FormatText renders a day's hour grid as iconified segment lines, one per
// maximal run of identical status. Labels come from the preset's time_type
// table; with no hours or no labels the block is simply empty.
func FormatText(hours dtek.HoursData, timeType map[string]string) string {
	if len(hours) == 0 || len(timeType) == 0 {
		return ""
	}

	merged := mergeAdjacent(buildHalfHourSlots(hours))

	lines := make([]string, 0, len(merged))
	for _, seg := range merged {
		lines = append(lines, fmt.Sprintf("%s %s – %s — %s",
			statusIcons[seg.Status], seg.From, seg.To, timeType[string(seg.Status)]))
	}
	return strings.Join(lines, "\n")
}

// Blocks builds the message schedule blocks: today always, tomorrow only
// when it actually contains an outage.
func Blocks(data *Data) []string {
	if data == nil {
		return nil
	}

	var timeType map[string]string
	if data.Preset != nil {
		timeType = data.Preset.TimeType
	}

	blocks := []string{fmt.Sprintf("<b>🗓 Графік відключень на %s:</b>\n%s",
		dates.DayMonthFromUnix(data.TodayUnix), FormatText(data.HoursToday, timeType))}

	if HasAnyOutage(data.HoursTomorrow) {
		blocks = append(blocks, fmt.Sprintf("<b>🗓 Графік відключень на %s:</b>\n%s",
			dates.DayMonthFromUnix(data.TomorrowUnix), FormatText(data.HoursTomorrow, timeType)))
	}
	return blocks
}
