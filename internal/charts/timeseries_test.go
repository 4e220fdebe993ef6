package charts

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, ts string) time.Time {
	t.Helper()
	parsed, err := time.Parse(TimestampLayout, ts)
	require.NoError(t, err)
	return parsed
}

func TestRenderIntensitySeriesDegenerate(t *testing.T) {
	now := time.Now().UTC()

	assert.Empty(t, RenderIntensitySeries(nil, now))

	// A flat series cannot be scaled onto the value axis.
	flat := []IntensityPoint{
		{Timestamp: "2026-08-30T10:00Z", Value: 100},
		{Timestamp: "2026-08-30T10:30Z", Value: 100},
	}
	assert.Empty(t, RenderIntensitySeries(flat, now))
}

func TestRenderIntensitySeriesPathSplit(t *testing.T) {
	points := []IntensityPoint{
		{Timestamp: "2026-08-30T10:00Z", Value: 50},
		{Timestamp: "2026-08-30T10:30Z", Value: 150},
		{Timestamp: "2026-08-30T11:00Z", Value: 100, Forecast: true},
	}
	now := mustParse(t, "2026-08-30T10:45Z")

	svg := RenderIntensitySeries(points, now)
	require.NotEmpty(t, svg)

	// Historical path: exactly the first two points, plotted at the left
	// edge and the x midpoint.
	assert.Contains(t, svg, `d="M 55.00 270.00 L 417.50 20.00" fill="none" stroke="#2c3e50"`)
	// Forecast path is seeded from the last historical point so the line
	// stays connected across the boundary.
	assert.Contains(t, svg, `d="M 417.50 20.00 L 780.00 145.00" fill="none" stroke="#e67e22"`)
	// The now marker aligns with the first point after now (index 2).
	assert.Contains(t, svg, `<line x1="780.00" y1="20.0" x2="780.00" y2="270.0" stroke="#e74c3c"`)
}

func TestRenderIntensitySeriesForecastOnly(t *testing.T) {
	points := []IntensityPoint{
		{Timestamp: "2026-08-30T10:00Z", Value: 80, Forecast: true},
		{Timestamp: "2026-08-30T10:30Z", Value: 120, Forecast: true},
	}

	svg := RenderIntensitySeries(points, mustParse(t, "2026-08-30T09:00Z"))
	require.NotEmpty(t, svg)

	// No historical stroke, one dashed path covering both points.
	assert.NotContains(t, svg, `stroke="#2c3e50"`)
	assert.Contains(t, svg, `d="M 55.00 270.00 L 780.00 20.00" fill="none" stroke="#e67e22"`)
}

func TestValueTickStep(t *testing.T) {
	// ceil(160/4) = 40, above the floor.
	assert.Equal(t, 40, valueTickStep(20, 180))
	// Narrow spreads clamp to the 20-unit floor.
	assert.Equal(t, 20, valueTickStep(100, 130))
	assert.Equal(t, 20, valueTickStep(0, 1))
}

func TestValueTicks(t *testing.T) {
	// Step 40, first tick is the largest multiple at or below min.
	assert.Equal(t, []int{0, 40, 80, 120, 160}, valueTicks(20, 180))
	assert.Equal(t, []int{100, 120}, valueTicks(105, 130))
}

func TestMarkerIndex(t *testing.T) {
	points := []IntensityPoint{
		{Timestamp: "2026-08-30T10:00Z", Value: 50},
		{Timestamp: "2026-08-30T10:30Z", Value: 60},
		{Timestamp: "2026-08-30T11:00Z", Value: 70},
		{Timestamp: "2026-08-30T11:30Z", Value: 80},
	}

	assert.Equal(t, 1, markerIndex(points, mustParse(t, "2026-08-30T10:15Z")))
	assert.Equal(t, 0, markerIndex(points, mustParse(t, "2026-08-30T09:00Z")))
	// All points in the past: marker falls back to the midpoint so the
	// chart always shows one.
	assert.Equal(t, 2, markerIndex(points, mustParse(t, "2026-08-30T12:00Z")))
}

func TestRenderIntensitySeriesTimeLabels(t *testing.T) {
	points := make([]IntensityPoint, 9)
	base := mustParse(t, "2026-08-30T08:00Z")
	for i := range points {
		points[i] = IntensityPoint{
			Timestamp: base.Add(time.Duration(i) * 30 * time.Minute).Format(TimestampLayout),
			Value:     100 + i,
		}
	}

	svg := RenderIntensitySeries(points, base)

	// Every 4th index, labels derived from the window start at 30-minute
	// spacing: 08:00, 10:00, 12:00.
	assert.Contains(t, svg, ">08:00</text>")
	assert.Contains(t, svg, ">10:00</text>")
	assert.Contains(t, svg, ">12:00</text>")
	assert.NotContains(t, svg, ">09:00</text>")
}

func TestRenderIntensitySeriesDeterministic(t *testing.T) {
	points := []IntensityPoint{
		{Timestamp: "2026-08-30T10:00Z", Value: 50},
		{Timestamp: "2026-08-30T10:30Z", Value: 150},
		{Timestamp: "2026-08-30T11:00Z", Value: 100, Forecast: true},
	}
	now := mustParse(t, "2026-08-30T10:45Z")

	first := RenderIntensitySeries(points, now)
	second := RenderIntensitySeries(points, now)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "<svg"))
	assert.True(t, strings.HasSuffix(first, "</svg>"))
}
