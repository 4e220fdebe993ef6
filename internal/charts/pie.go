package charts

import (
	"fmt"
	"html"
	"math"
	"strings"
)

const (
	pieCenterX     = 250.0
	pieCenterY     = 250.0
	pieRadius      = 150.0
	pieLabelRadius = 175.0

	// Slices thinner than this are drawn but not labeled, to keep thin
	// wedges from stacking labels on top of each other.
	pieLabelMinPercent = 0.5
)

// pieSlice is the computed geometry of one wedge.
type pieSlice struct {
	startAngle float64
	endAngle   float64
}

// pieSlices lays the shares out as consecutive wedges starting at angle 0.
// Angular width is percent/total, so a mix summing to less than 100 still
// fills the full circle. A zero total yields no slices.
func pieSlices(shares []FuelShare) []pieSlice {
	var total float64
	for _, s := range shares {
		total += s.Percent
	}
	if total == 0 {
		return nil
	}

	slices := make([]pieSlice, 0, len(shares))
	startAngle := 0.0
	for _, s := range shares {
		endAngle := startAngle + (s.Percent/total)*2*math.Pi
		slices = append(slices, pieSlice{startAngle: startAngle, endAngle: endAngle})
		startAngle = endAngle
	}
	return slices
}

// RenderGenerationPie renders the generation mix as pie chart SVG elements
// plus a separate HTML legend block. Both iterate the shares in order with
// the same color mapping. Degenerate input (no shares, or all percentages
// zero) yields empty fragments rather than an error.
func RenderGenerationPie(shares []FuelShare) (chart string, legend string) {
	slices := pieSlices(shares)
	if len(slices) == 0 {
		return "", ""
	}

	var b strings.Builder
	for i, s := range shares {
		sl := slices[i]
		width := sl.endAngle - sl.startAngle

		x1 := pieCenterX + pieRadius*math.Cos(sl.startAngle)
		y1 := pieCenterY + pieRadius*math.Sin(sl.startAngle)
		x2 := pieCenterX + pieRadius*math.Cos(sl.endAngle)
		y2 := pieCenterY + pieRadius*math.Sin(sl.endAngle)

		largeArc := 0
		if width > math.Pi {
			largeArc = 1
		}

		path := fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
			pieCenterX, pieCenterY, x1, y1, pieRadius, pieRadius, largeArc, x2, y2)

		fmt.Fprintf(&b, `<path d="%s" fill="%s" stroke="white" stroke-width="2" />`,
			path, colorAt(i))

		if s.Percent >= pieLabelMinPercent {
			midAngle := sl.startAngle + width/2
			labelX := pieCenterX + pieLabelRadius*math.Cos(midAngle)
			labelY := pieCenterY + pieLabelRadius*math.Sin(midAngle)

			fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="11" font-weight="bold" fill="#333333">%s</text>`,
				labelX, labelY-2, html.EscapeString(s.Label))
			fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10" fill="#666666">%.1f%%</text>`,
				labelX, labelY+10, s.Percent)
		}
	}

	return b.String(), renderLegend(shares)
}

func renderLegend(shares []FuelShare) string {
	var b strings.Builder
	for i, s := range shares {
		fmt.Fprintf(&b, `<div class="legend-item"><div class="legend-color" style="background-color: %s"></div><span class="legend-label">%s</span><span class="legend-value">%.1f%%</span>`,
			colorAt(i), html.EscapeString(s.Label), s.Percent)
		if s.Intensity != nil {
			// An intensity of exactly 0 still renders; zero-carbon fuels
			// are the interesting ones.
			fmt.Fprintf(&b, `<span class="legend-intensity">%d gCO₂/kWh</span>`, *s.Intensity)
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}
