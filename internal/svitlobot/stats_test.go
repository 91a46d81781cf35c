package svitlobot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowWithLight(city string, status *LightStatus) PowerRow {
	return PowerRow{City: city, LightStatus: status}
}

func TestCalculateLightPercent(t *testing.T) {
	on := ptr(LightOn)
	off := ptr(LightOff)

	tests := []struct {
		name string
		rows []PowerRow
		want float64
	}{
		{"empty", nil, 0},
		{"all on", []PowerRow{rowWithLight("a", on), rowWithLight("b", on)}, 100},
		{"all off", []PowerRow{rowWithLight("a", off)}, 0},
		{"two thirds", []PowerRow{rowWithLight("a", on), rowWithLight("b", on), rowWithLight("c", off)}, 66.67},
		{"unknown counts as off", []PowerRow{rowWithLight("a", on), rowWithLight("b", nil)}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateLightPercent(tt.rows))
		})
	}
}

func TestRegionalStats(t *testing.T) {
	on := ptr(LightOn)
	off := ptr(LightOff)
	rows := []PowerRow{
		rowWithLight("Київ", on),
		rowWithLight(" київ ", on),
		rowWithLight("Бровари", off),
		rowWithLight("Львів", off),
	}

	stats := RegionalStats([]string{"Київ", "Бровари"}, "Київщина", rows)
	require.NotNil(t, stats)
	assert.Equal(t, "Київщина", stats.Region)
	assert.Equal(t, 66.67, stats.LightPercent)
}

func TestRegionalStatsNil(t *testing.T) {
	rows := []PowerRow{rowWithLight("Київ", ptr(LightOn))}

	// Empty city list means stats are not configured.
	assert.Nil(t, RegionalStats(nil, "Київщина", rows))
	assert.Nil(t, RegionalStats([]string{" ", ""}, "Київщина", rows))

	// Configured but nothing matched: no stats rather than fake 0%.
	assert.Nil(t, RegionalStats([]string{"Харків"}, "Харківщина", rows))
	assert.Nil(t, RegionalStats([]string{"Київ"}, "Київщина", nil))
}
