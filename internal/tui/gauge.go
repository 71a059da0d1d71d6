package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const minGaugeWidth = 20

var (
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	bandStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

// renderGauge draws the pedal position on a 0-100% track. When a target
// is active, the tolerance band around it is highlighted and the marker
// turns green while inside it.
func renderGauge(width int, position, targetValue float64, hasTarget bool, precision float64) string {
	if width < minGaugeWidth {
		width = minGaugeWidth
	}
	inner := width - 2
	lo, hi := -1, -1
	if hasTarget {
		lo = gaugeCell(targetValue-precision, inner)
		hi = gaugeCell(targetValue+precision, inner)
	}
	posCell := gaugeCell(position, inner)

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < inner; i++ {
		inBand := hasTarget && i >= lo && i <= hi
		switch {
		case i == posCell && inBand:
			b.WriteString(okStyle.Render("█"))
		case i == posCell:
			b.WriteString(markerStyle.Render("█"))
		case inBand:
			b.WriteString(bandStyle.Render("═"))
		default:
			b.WriteString(trackStyle.Render("─"))
		}
	}
	b.WriteString("]")
	return b.String()
}

func gaugeCell(v float64, inner int) int {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	idx := int(v / 100 * float64(inner))
	if idx >= inner {
		idx = inner - 1
	}
	return idx
}
