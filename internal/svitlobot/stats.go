package svitlobot

import (
	"math"
	"strings"
)

// PowerStats is the aggregate availability across a configured city set.
type PowerStats struct {
	Region       string
	LightPercent float64 // 0-100, rounded to 2 decimals
}

// CalculateLightPercent returns the share of rows reporting power on,
// rounded to two decimals. Empty input yields 0.
func CalculateLightPercent(rows []PowerRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	on := 0
	for _, row := range rows {
		if row.LightStatus != nil && *row.LightStatus == LightOn {
			on++
		}
	}
	return math.Round(float64(on)/float64(len(rows))*10000) / 100
}

// RegionalStats filters rows to the configured city names (case-insensitive,
// whitespace-trimmed) and aggregates them. nil means "no stats": the city
// list is empty or nothing matched — distinct from a real 0% reading.
func RegionalStats(cityNames []string, region string, rows []PowerRow) *PowerStats {
	if len(cityNames) == 0 {
		return nil
	}

	wanted := make(map[string]struct{}, len(cityNames))
	for _, name := range cityNames {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			wanted[name] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	var matched []PowerRow
	for _, row := range rows {
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(row.City))]; ok {
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	return &PowerStats{
		Region:       region,
		LightPercent: CalculateLightPercent(matched),
	}
}
