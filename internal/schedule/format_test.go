package schedule

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outage-bot/internal/dtek"
)

var testTimeType = map[string]string{
	"yes":     "Є світло",
	"no":      "Немає світла",
	"first":   "Відключення у першій половині",
	"second":  "Відключення у другій половині",
	"mfirst":  "Можливе відключення",
	"msecond": "Можливе відключення",
}

// fullDay builds a 24-hour grid with every hour set to the given status.
func fullDay(status dtek.HourStatus) dtek.HoursData {
	hours := make(dtek.HoursData, 24)
	for h := 1; h <= 24; h++ {
		hours[strconv.Itoa(h)] = status
	}
	return hours
}

func TestBuildHalfHourSlots(t *testing.T) {
	hours := dtek.HoursData{
		"1": dtek.StatusYes,
		"2": dtek.StatusFirst,
		"3": dtek.StatusSecond,
		"4": dtek.StatusMFirst,
	}

	slots := buildHalfHourSlots(hours)
	require.Len(t, slots, 6)

	assert.Equal(t, TimeSegment{From: "00:00", To: "01:00", Status: dtek.StatusYes}, slots[0])
	// "first" hour: off in the first half, on in the second.
	assert.Equal(t, TimeSegment{From: "01:00", To: "01:30", Status: dtek.StatusNo}, slots[1])
	assert.Equal(t, TimeSegment{From: "01:30", To: "02:00", Status: dtek.StatusYes}, slots[2])
	// "second" hour: on in the first half, off in the second.
	assert.Equal(t, TimeSegment{From: "02:00", To: "02:30", Status: dtek.StatusYes}, slots[3])
	assert.Equal(t, TimeSegment{From: "02:30", To: "03:00", Status: dtek.StatusNo}, slots[4])
	// "mfirst" stays a full hour of its own status.
	assert.Equal(t, TimeSegment{From: "03:00", To: "04:00", Status: dtek.StatusMFirst}, slots[5])
}

func TestBuildHalfHourSlotsSkipsMissingHours(t *testing.T) {
	hours := dtek.HoursData{"5": dtek.StatusNo}
	slots := buildHalfHourSlots(hours)
	require.Len(t, slots, 1)
	assert.Equal(t, TimeSegment{From: "04:00", To: "05:00", Status: dtek.StatusNo}, slots[0])
}

func TestMergeAdjacent(t *testing.T) {
	segments := []TimeSegment{
		{From: "00:00", To: "01:00", Status: dtek.StatusYes},
		{From: "01:00", To: "02:00", Status: dtek.StatusYes},
		{From: "02:00", To: "02:30", Status: dtek.StatusNo},
		{From: "02:30", To: "03:00", Status: dtek.StatusYes},
		{From: "03:00", To: "04:00", Status: dtek.StatusYes},
	}

	merged := mergeAdjacent(segments)
	require.Len(t, merged, 3)
	assert.Equal(t, TimeSegment{From: "00:00", To: "02:00", Status: dtek.StatusYes}, merged[0])
	assert.Equal(t, TimeSegment{From: "02:00", To: "02:30", Status: dtek.StatusNo}, merged[1])
	assert.Equal(t, TimeSegment{From: "02:30", To: "04:00", Status: dtek.StatusYes}, merged[2])
}

func TestMergeAdjacentGapBlocksMerge(t *testing.T) {
	segments := []TimeSegment{
		{From: "00:00", To: "01:00", Status: dtek.StatusYes},
		{From: "02:00", To: "03:00", Status: dtek.StatusYes},
	}
	merged := mergeAdjacent(segments)
	assert.Len(t, merged, 2)
}

func TestMergeAdjacentEmpty(t *testing.T) {
	assert.Nil(t, mergeAdjacent(nil))
}

func TestFormatTextFullDay(t *testing.T) {
	got := FormatText(fullDay(dtek.StatusYes), testTimeType)
	assert.Equal(t, "🟢 00:00 – 24:00 — Є світло", got)
}

func TestFormatTextMixedDay(t *testing.T) {
	hours := fullDay(dtek.StatusYes)
	hours["10"] = dtek.StatusFirst // 09:00-09:30 off
	hours["11"] = dtek.StatusNo
	hours["12"] = dtek.StatusNo
	hours["13"] = dtek.StatusSecond // 12:30-13:00 off

	got := FormatText(hours, testTimeType)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 7)

	assert.Equal(t, "🟢 00:00 – 09:00 — Є світло", lines[0])
	assert.Equal(t, "🔴 09:00 – 09:30 — Немає світла", lines[1])
	assert.Equal(t, "🟢 09:30 – 10:00 — Є світло", lines[2])
	assert.Equal(t, "🔴 10:00 – 12:00 — Немає світла", lines[3])
	assert.Equal(t, "🟢 12:00 – 12:30 — Є світло", lines[4])
	assert.Equal(t, "🔴 12:30 – 13:00 — Немає світла", lines[5])
	assert.Equal(t, "🟢 13:00 – 24:00 — Є світло", lines[6])
}

func TestFormatTextEmpty(t *testing.T) {
	assert.Equal(t, "", FormatText(nil, testTimeType))
	assert.Equal(t, "", FormatText(fullDay(dtek.StatusYes), nil))
}

func TestFormatTextMaybeIcon(t *testing.T) {
	// Distinct transition codes keep their own segments even when the label
	// and icon coincide.
	hours := dtek.HoursData{"1": dtek.StatusMFirst, "2": dtek.StatusMSecond}
	got := FormatText(hours, testTimeType)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "🟡 00:00 – 01:00 — Можливе відключення", lines[0])
	assert.Equal(t, "🟡 01:00 – 02:00 — Можливе відключення", lines[1])
}
