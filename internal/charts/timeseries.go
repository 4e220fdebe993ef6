package charts

import (
	"fmt"
	"strings"
	"time"
)

// Chart frame for the intensity time series. The plot area sits inside
// fixed margins that leave room for the value labels on the left and the
// time labels plus caption underneath.
const (
	seriesWidth  = 800.0
	seriesHeight = 320.0

	plotLeft   = 55.0
	plotRight  = 780.0
	plotTop    = 20.0
	plotBottom = 270.0

	// Every 4th sample gets a time tick; at the API's 30-minute sample
	// spacing that is a 2-hour cadence.
	timeTickEvery = 4
	sampleSpacing = 30 * time.Minute

	minValueStep    = 20
	valueStepSlices = 4
)

// valueTickStep derives the value-axis tick spacing: a quarter of the
// spread rounded up, but never tighter than 20 units.
func valueTickStep(minVal, maxVal int) int {
	step := (maxVal - minVal + valueStepSlices - 1) / valueStepSlices
	if step < minValueStep {
		step = minValueStep
	}
	return step
}

// valueTicks returns the tick values: multiples of the step starting at
// the largest multiple at or below the minimum, up to the maximum.
func valueTicks(minVal, maxVal int) []int {
	step := valueTickStep(minVal, maxVal)
	first := (minVal / step) * step
	if first > minVal {
		first -= step
	}
	var ticks []int
	for v := first; v <= maxVal; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// markerIndex finds where to draw the "now" line: the first point whose
// timestamp is after now. When every point is in the past the marker falls
// back to the middle of the series so it is always drawn.
func markerIndex(points []IntensityPoint, now time.Time) int {
	for i, p := range points {
		t, err := time.Parse(TimestampLayout, p.Timestamp)
		if err != nil {
			continue
		}
		if t.After(now) {
			return i
		}
	}
	return len(points) / 2
}

// RenderIntensitySeries renders the carbon intensity series as a single
// self-contained SVG fragment: solid historical line, dashed forecast
// line, a vertical "now" marker, gridlines and axis labels. Degenerate
// input - no points, or a flat series that cannot be scaled - yields the
// empty string.
//
// Points are placed at equal horizontal spacing by index; the caller must
// supply uniformly spaced samples in ascending order.
func RenderIntensitySeries(points []IntensityPoint, now time.Time) string {
	if len(points) == 0 {
		return ""
	}

	minVal, maxVal := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}
	if maxVal-minVal == 0 {
		return ""
	}

	plotWidth := plotRight - plotLeft
	plotHeight := plotBottom - plotTop

	xAt := func(i int) float64 {
		return plotLeft + (float64(i)/float64(len(points)-1))*plotWidth
	}
	yAt := func(v int) float64 {
		return plotBottom - (float64(v-minVal)/float64(maxVal-minVal))*plotHeight
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`,
		seriesWidth, seriesHeight, seriesWidth, seriesHeight)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%.0f" height="%.0f" fill="#ffffff" />`,
		seriesWidth, seriesHeight)
	fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#cccccc" stroke-width="1" />`,
		plotLeft, plotTop, plotWidth, plotHeight)

	// Value gridlines and labels.
	for _, v := range valueTicks(minVal, maxVal) {
		y := yAt(v)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.2f" x2="%.1f" y2="%.2f" stroke="#e8e8e8" stroke-width="1" />`,
			plotLeft, y, plotRight, y)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.2f" text-anchor="end" font-family="Arial, sans-serif" font-size="10" fill="#666666">%d</text>`,
			plotLeft-8, y+3, v)
	}

	// Time ticks: labels are derived from the window start at the fixed
	// sample spacing, not read back from the points themselves.
	windowStart, startErr := time.Parse(TimestampLayout, points[0].Timestamp)
	for i := 0; i < len(points); i += timeTickEvery {
		x := xAt(i)
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.1f" x2="%.2f" y2="%.1f" stroke="#cccccc" stroke-width="1" />`,
			x, plotBottom, x, plotBottom+4)
		if startErr == nil {
			label := windowStart.Add(time.Duration(i) * sampleSpacing).Format("15:04")
			fmt.Fprintf(&b, `<text x="%.2f" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10" fill="#666666">%s</text>`,
				x, plotBottom+16, label)
		}
	}

	// Single pass over the points, accumulating the historical and the
	// forecast polylines. The forecast path is seeded from the point just
	// before the first forecast sample so the line has no gap at the
	// historical/forecast boundary.
	var hist, fore strings.Builder
	forecastStarted := false
	for i, p := range points {
		x, y := xAt(i), yAt(p.Value)
		if p.Forecast {
			if !forecastStarted {
				forecastStarted = true
				if i > 0 {
					fmt.Fprintf(&fore, "M %.2f %.2f L %.2f %.2f",
						xAt(i-1), yAt(points[i-1].Value), x, y)
				} else {
					fmt.Fprintf(&fore, "M %.2f %.2f", x, y)
				}
			} else {
				fmt.Fprintf(&fore, " L %.2f %.2f", x, y)
			}
		} else {
			if hist.Len() == 0 {
				fmt.Fprintf(&hist, "M %.2f %.2f", x, y)
			} else {
				fmt.Fprintf(&hist, " L %.2f %.2f", x, y)
			}
		}
	}

	if hist.Len() > 0 {
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="#2c3e50" stroke-width="2" />`, hist.String())
	}
	if fore.Len() > 0 {
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="#e67e22" stroke-width="2" stroke-dasharray="6 4" />`, fore.String())
	}

	markerX := xAt(markerIndex(points, now))
	fmt.Fprintf(&b, `<line x1="%.2f" y1="%.1f" x2="%.2f" y2="%.1f" stroke="#e74c3c" stroke-width="1.5" stroke-dasharray="4 3" />`,
		markerX, plotTop, markerX, plotBottom)

	// Axis captions.
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="11" fill="#333333">Time</text>`,
		plotLeft+plotWidth/2, seriesHeight-8)
	fmt.Fprintf(&b, `<text x="14" y="%.1f" text-anchor="middle" font-family="Arial, sans-serif" font-size="11" fill="#333333" transform="rotate(-90 14 %.1f)">gCO₂/kWh</text>`,
		plotTop+plotHeight/2, plotTop+plotHeight/2)

	b.WriteString(`</svg>`)
	return b.String()
}
