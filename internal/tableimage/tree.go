// Package tableimage renders the outage schedule as a picture: a grid of
// colored hour cells built first as a declarative node tree, then
// rasterized. Tree construction is pure — a function of the hour grids and
// day labels only — so layouts are testable without touching a canvas.
package tableimage

import (
	"fmt"

	"outage-bot/internal/dtek"
)

// Canvas dimensions for the two layouts.
const (
	DayWidth  = 1020
	DayHeight = 820

	CombinedWidth  = 1100
	CombinedHeight = 540
)

// Palette.
const (
	colorGreen    = "#22c55e"
	colorRed      = "#ef4444"
	colorYellow   = "#eab308"
	colorBg       = "#1a1a2e"
	colorDivider  = "#334155"
	colorTitle    = "#e2e8f0"
	colorSubtitle = "#94a3b8"
	colorLegend   = "#94a3b8"
	colorFallback = "#6b7280"
	colorText     = "#ffffff"
)

const gridCols = 6
const rowsPerHalf = 2
const hoursPerHalf = gridCols * rowsPerHalf

// NodeKind discriminates the node tree variants.
type NodeKind int

const (
	KindRect  NodeKind = iota // rounded rectangle, solid fill
	KindSplit                 // rounded rectangle split 50/50 vertically
	KindText                  // string centered on a point
)

// Node is one element of the declarative render tree. Coordinates are
// absolute on the canvas; children draw after (on top of) their parent.
type Node struct {
	Kind NodeKind

	// Rect / split geometry.
	X, Y, W, H float64
	Radius     float64
	Fill       string
	TopFill    string // split only
	BottomFill string // split only

	// Text.
	Text  string
	CX    float64
	CY    float64
	Size  float64
	Color string

	Children []Node
}

func rect(x, y, w, h, radius float64, fill string) Node {
	return Node{Kind: KindRect, X: x, Y: y, W: w, H: h, Radius: radius, Fill: fill}
}

func split(x, y, w, h, radius float64, topFill, bottomFill string) Node {
	return Node{Kind: KindSplit, X: x, Y: y, W: w, H: h, Radius: radius, TopFill: topFill, BottomFill: bottomFill}
}

func text(s string, cx, cy, size float64, color string) Node {
	return Node{Kind: KindText, Text: s, CX: cx, CY: cy, Size: size, Color: color}
}

// cellSpec captures the per-layout cell metrics.
type cellSpec struct {
	size      float64
	gap       float64
	radius    float64
	hourSize  float64
	labelSize float64
}

var daySpec = cellSpec{size: 150, gap: 12, radius: 16, hourSize: 40, labelSize: 22}
var combinedSpec = cellSpec{size: 75, gap: 6, radius: 10, hourSize: 20, labelSize: 12}

// timeRange renders the display range for a zero-based hour: 8 -> "08-09",
// 23 -> "23-24".
func timeRange(displayHour int) string {
	return fmt.Sprintf("%02d-%02d", displayHour, displayHour+1)
}

// statusForHour resolves the status code for a zero-based display hour.
// The grid keys are 1-based; a missing entry counts as an outage, matching
// the upstream feed's habit of omitting dead hours.
func statusForHour(hours dtek.HoursData, displayHour int) dtek.HourStatus {
	status, ok := hours[fmt.Sprintf("%d", displayHour+1)]
	if !ok {
		return dtek.StatusNo
	}
	return status
}

// buildCell emits the nodes for one hour cell at (x, y).
func buildCell(x, y float64, displayHour int, status dtek.HourStatus, spec cellSpec) []Node {
	cx := x + spec.size/2
	hourCY := y + spec.size/2 - spec.labelSize*0.7
	labelCY := y + spec.size/2 + spec.hourSize*0.55

	solid := func(fill, label, textColor string) []Node {
		return []Node{
			rect(x, y, spec.size, spec.size, spec.radius, fill),
			text(timeRange(displayHour), cx, hourCY, spec.hourSize, textColor),
			text(label, cx, labelCY, spec.labelSize, textColor),
		}
	}

	switch status {
	case dtek.StatusYes:
		return solid(colorGreen, "є", colorText)
	case dtek.StatusNo:
		return solid(colorRed, "немає", colorText)
	case dtek.StatusMFirst, dtek.StatusMSecond:
		// "Maybe" codes render as a solid ambiguous cell, never split.
		return solid(colorYellow, "можл.", colorBg)
	case dtek.StatusFirst:
		return []Node{
			split(x, y, spec.size, spec.size, spec.radius, colorRed, colorGreen),
			text(timeRange(displayHour), cx, hourCY, spec.hourSize, colorText),
			text("частково", cx, labelCY, spec.labelSize, colorText),
		}
	case dtek.StatusSecond:
		return []Node{
			split(x, y, spec.size, spec.size, spec.radius, colorGreen, colorRed),
			text(timeRange(displayHour), cx, hourCY, spec.hourSize, colorText),
			text("частково", cx, labelCY, spec.labelSize, colorText),
		}
	default:
		return solid(colorFallback, "—", colorText)
	}
}

// buildHalfSection lays out hoursPerHalf cells as a rowsPerHalf x gridCols
// grid starting at display hour startHour. Returns the nodes and the
// section height.
func buildHalfSection(hours dtek.HoursData, startHour int, x, y float64, spec cellSpec) ([]Node, float64) {
	var nodes []Node
	for row := 0; row < rowsPerHalf; row++ {
		rowY := y + float64(row)*(spec.size+spec.gap)
		for col := 0; col < gridCols; col++ {
			displayHour := startHour + row*gridCols + col
			cellX := x + float64(col)*(spec.size+spec.gap)
			nodes = append(nodes, buildCell(cellX, rowY, displayHour, statusForHour(hours, displayHour), spec)...)
		}
	}
	height := float64(rowsPerHalf)*spec.size + float64(rowsPerHalf-1)*spec.gap
	return nodes, height
}

func gridWidth(spec cellSpec) float64 {
	return float64(gridCols)*spec.size + float64(gridCols-1)*spec.gap
}

// estTextWidth approximates rendered width for layout purposes. The legend
// is the only place that needs it, and a rough proportional estimate keeps
// the builders pure.
func estTextWidth(s string, size float64) float64 {
	return 0.55 * size * float64(len([]rune(s)))
}

type legendItem struct {
	color string
	grad  bool // green/red gradient swatch for the split cell
	label string
}

var legendItems = []legendItem{
	{color: colorGreen, label: "Є світло"},
	{color: colorRed, label: "Немає світла"},
	{color: colorYellow, label: "Можливо"},
	{grad: true, label: "Частково"},
}

// buildLegend lays the legend out centered around canvas midpoint at row y.
func buildLegend(canvasWidth, y float64) []Node {
	const swatch = 20.0
	const labelSize = 20.0
	const innerGap = 12.0
	const itemGap = 30.0

	total := 0.0
	widths := make([]float64, len(legendItems))
	for i, item := range legendItems {
		widths[i] = swatch + innerGap + estTextWidth(item.label, labelSize)
		total += widths[i]
	}
	total += itemGap * float64(len(legendItems)-1)

	var nodes []Node
	x := (canvasWidth - total) / 2
	for i, item := range legendItems {
		if item.grad {
			nodes = append(nodes, split(x, y, swatch, swatch, 8, colorGreen, colorRed))
		} else {
			nodes = append(nodes, rect(x, y, swatch, swatch, 8, item.color))
		}
		labelX := x + swatch + innerGap
		labelW := estTextWidth(item.label, labelSize)
		nodes = append(nodes, text(item.label, labelX+labelW/2, y+swatch/2, labelSize, colorLegend))
		x += widths[i] + itemGap
	}
	return nodes
}

// BuildDayTable builds the single-day layout: title, date, two half-day
// grids separated by a divider, and the legend.
func BuildDayTable(hours dtek.HoursData, dateLabel string) Node {
	root := rect(0, 0, DayWidth, DayHeight, 0, colorBg)
	centerX := float64(DayWidth) / 2
	gridX := (float64(DayWidth) - gridWidth(daySpec)) / 2

	y := 24.0
	root.Children = append(root.Children, text("Графік відключень", centerX, y+24, 40, colorTitle))
	y += 52
	if dateLabel != "" {
		root.Children = append(root.Children, text(dateLabel, centerX, y+12, 24, colorSubtitle))
		y += 34
	}
	y += 10

	half1, h := buildHalfSection(hours, 0, gridX, y, daySpec)
	root.Children = append(root.Children, half1...)
	y += h + 12

	root.Children = append(root.Children, rect(DayWidth*0.05, y, DayWidth*0.9, 2, 0, colorDivider))
	y += 14

	half2, h := buildHalfSection(hours, hoursPerHalf, gridX, y, daySpec)
	root.Children = append(root.Children, half2...)
	y += h + 16

	root.Children = append(root.Children, buildLegend(DayWidth, y)...)
	return root
}

// buildDayColumn lays out one day of the combined view: subtitle, the two
// compact half-grids, a divider between them. Returns nodes and height.
func buildDayColumn(hours dtek.HoursData, subtitle string, x, y float64) ([]Node, float64) {
	colWidth := gridWidth(combinedSpec)
	var nodes []Node

	nodes = append(nodes, text(subtitle, x+colWidth/2, y+10, 20, colorSubtitle))
	cursor := y + 28

	half1, h := buildHalfSection(hours, 0, x, cursor, combinedSpec)
	nodes = append(nodes, half1...)
	cursor += h + 8

	nodes = append(nodes, rect(x+colWidth*0.05, cursor, colWidth*0.9, 2, 0, colorDivider))
	cursor += 10

	half2, h := buildHalfSection(hours, hoursPerHalf, x, cursor, combinedSpec)
	nodes = append(nodes, half2...)
	cursor += h

	return nodes, cursor - y
}

// BuildCombinedTable builds the side-by-side two-day layout used when
// tomorrow's schedule also carries outages.
func BuildCombinedTable(todayHours dtek.HoursData, todayLabel string, tomorrowHours dtek.HoursData, tomorrowLabel string) Node {
	root := rect(0, 0, CombinedWidth, CombinedHeight, 0, colorBg)
	centerX := float64(CombinedWidth) / 2

	colWidth := gridWidth(combinedSpec)
	const columnGap = 25.0
	totalWidth := colWidth*2 + columnGap*2 + 2
	leftX := (float64(CombinedWidth) - totalWidth) / 2
	rightX := leftX + colWidth + columnGap*2 + 2

	y := 18.0
	root.Children = append(root.Children, text("Графік відключень", centerX, y+18, 32, colorTitle))
	y += 46

	left, h := buildDayColumn(todayHours, "Сьогодні — "+todayLabel, leftX, y)
	root.Children = append(root.Children, left...)

	root.Children = append(root.Children, rect(leftX+colWidth+columnGap, y, 2, h, 0, colorDivider))

	right, _ := buildDayColumn(tomorrowHours, "Завтра — "+tomorrowLabel, rightX, y)
	root.Children = append(root.Children, right...)
	y += h + 14

	root.Children = append(root.Children, buildLegend(CombinedWidth, y)...)
	return root
}
