// Package message assembles the final HTML reply text. Two render paths:
// an active-outage report with period and durations, or an all-clear note
// with an advisory line. Every dynamic value is escaped; the static
// templates are trusted.
package message

import (
	"fmt"
	"html"
	"strings"

	"outage-bot/internal/dates"
	"outage-bot/internal/dtek"
	"outage-bot/internal/svitlobot"
)

const (
	unknownDuration = "Невідомо"

	advisoryLine = "⚠️ Якщо в даний момент у вас відсутнє світло, імовірно виникла аварійна ситуація, або діють стабілізаційні або екстрені відключення."
)

// Input carries everything one reply needs.
type Input struct {
	HouseGroup     string
	Street         string
	House          *dtek.HouseData
	CurrentDate    string // "HH:MM DD.MM.YYYY" Kyiv stamp of this request
	ScheduleBlocks []string
	PowerStats     *svitlobot.PowerStats
	UpdateStamp    string
}

// Format renders the reply. The path is chosen by whether the house record
// describes an active outage period.
func Format(in Input) string {
	if dtek.HasOutagePeriod(in.House) {
		return formatActiveOutage(in)
	}
	return formatNoOutage(in)
}

func formatNoOutage(in Input) string {
	parts := []string{
		fmt.Sprintf("⚡️ <b>%s | Відключень не зафіксовано.</b>", headerLabel(in.Street, in.HouseGroup)),
		advisoryLine,
	}
	parts = append(parts, in.ScheduleBlocks...)
	parts = append(parts, formatPowerStats(in.PowerStats), formatUpdateStamp(in.UpdateStamp))
	return joinParts(parts)
}

func formatActiveOutage(in Input) string {
	elapsed, ok := dates.TimeDiff(in.House.StartDate, in.CurrentDate)
	if !ok {
		elapsed = unknownDuration
	}
	remaining, ok := dates.TimeDiff(in.CurrentDate, in.House.EndDate)
	if !ok {
		remaining = unknownDuration
	}

	parts := []string{
		fmt.Sprintf("🚨 <b>%s | Відключення.</b>", headerLabel(in.Street, in.HouseGroup)),
		fmt.Sprintf("❗️ <b>Тип:</b> %s", html.EscapeString(in.House.SubType)),
		formatOutagePeriod(in.House.StartDate, in.House.EndDate),
		fmt.Sprintf("⛔️ <b>Без світла:</b> %s\n🔌 <b>До відновлення:</b> %s",
			html.EscapeString(elapsed), html.EscapeString(remaining)),
	}
	parts = append(parts, in.ScheduleBlocks...)
	parts = append(parts, formatPowerStats(in.PowerStats), formatUpdateStamp(in.UpdateStamp))
	return joinParts(parts)
}

// headerLabel renders the configured address and the house group as the
// header identity: "📍<street> | <group>". The pin and street are dropped
// together when no street is configured.
func headerLabel(street, group string) string {
	if street == "" {
		return html.EscapeString(group)
	}
	return fmt.Sprintf("📍%s | %s", html.EscapeString(street), html.EscapeString(group))
}

// formatOutagePeriod renders the outage window. Same-day periods show only
// clock times; cross-day ones add the date. Unparsable endpoints are shown
// verbatim (escaped) rather than failing the reply.
func formatOutagePeriod(startRaw, endRaw string) string {
	start, okStart := dates.ParseUADateTime(startRaw)
	end, okEnd := dates.ParseUADateTime(endRaw)

	if !okStart || !okEnd {
		return fmt.Sprintf("🪫 <b>Вимкнення:</b> %s\n🔋 <b>Відновлення:</b> %s",
			html.EscapeString(startRaw), html.EscapeString(endRaw))
	}

	if dates.SameKyivDay(start, end) {
		return fmt.Sprintf("🪫 <b>Вимкнення:</b> %s\n🔋 <b>Відновлення:</b> %s",
			dates.FormatTime(start), dates.FormatTime(end))
	}

	return fmt.Sprintf("🪫 <b>Вимкнення:</b> %s %s\n🔋 <b>Відновлення:</b> %s %s",
		dates.FormatTime(start), dates.FormatDayMonth(start),
		dates.FormatTime(end), dates.FormatDayMonth(end))
}

func formatPowerStats(stats *svitlobot.PowerStats) string {
	if stats == nil {
		return ""
	}
	return fmt.Sprintf("<b>📊 %s:</b> %s%% з електропостачанням",
		html.EscapeString(stats.Region), formatPercent(stats.LightPercent))
}

// formatPercent trims trailing zeros so 100 prints as "100", 66.67 as
// "66.67".
func formatPercent(p float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.2f", p), "0")
	return strings.TrimRight(s, ".")
}

func formatUpdateStamp(stamp string) string {
	if stamp == "" {
		return ""
	}
	return fmt.Sprintf("🕒 Оновлено: <i>%s</i>", html.EscapeString(stamp))
}

// joinParts joins non-empty blocks with blank lines.
func joinParts(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
