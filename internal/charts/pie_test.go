package charts

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPieSlicesFillFullCircle(t *testing.T) {
	shares := []FuelShare{
		{Label: "gas", Percent: 39.1},
		{Label: "wind", Percent: 25.4},
		{Label: "nuclear", Percent: 14.8},
		{Label: "solar", Percent: 7.2},
	}

	slices := pieSlices(shares)
	require.Len(t, slices, len(shares))

	var sum float64
	for _, sl := range slices {
		sum += sl.endAngle - sl.startAngle
	}
	// The shares sum to under 100%, so the total is the normalization
	// denominator and the wedges still close the circle.
	assert.InDelta(t, 2*math.Pi, sum, 1e-9)
}

func TestPieSlicesContiguity(t *testing.T) {
	shares := []FuelShare{
		{Label: "gas", Percent: 40},
		{Label: "wind", Percent: 35},
		{Label: "coal", Percent: 0.3},
		{Label: "other", Percent: 24.7},
	}

	slices := pieSlices(shares)
	require.Len(t, slices, 4)

	assert.Equal(t, 0.0, slices[0].startAngle)
	for i := 1; i < len(slices); i++ {
		assert.Equal(t, slices[i-1].endAngle, slices[i].startAngle,
			"slice %d must start where slice %d ends", i, i-1)
	}
}

func TestPieSlicesZeroTotal(t *testing.T) {
	assert.Nil(t, pieSlices([]FuelShare{{Label: "gas"}, {Label: "wind"}}))
	assert.Nil(t, pieSlices(nil))
}

func TestRenderGenerationPieDegenerate(t *testing.T) {
	chart, legend := RenderGenerationPie(nil)
	assert.Empty(t, chart)
	assert.Empty(t, legend)

	chart, legend = RenderGenerationPie([]FuelShare{{Label: "gas", Percent: 0}})
	assert.Empty(t, chart)
	assert.Empty(t, legend)
}

func TestRenderGenerationPieLabelThreshold(t *testing.T) {
	chart, _ := RenderGenerationPie([]FuelShare{
		{Label: "gas", Percent: 99.7},
		{Label: "coal", Percent: 0.3},
	})

	// Both slices are drawn, but only the one above the threshold gets
	// its two label lines.
	assert.Equal(t, 2, strings.Count(chart, "<path"))
	assert.Equal(t, 2, strings.Count(chart, "<text"))
	assert.Contains(t, chart, ">gas</text>")
	assert.Contains(t, chart, ">99.7%</text>")
	assert.NotContains(t, chart, ">coal<")
	assert.NotContains(t, chart, ">0.3%<")
}

func TestRenderGenerationPieLargeArcFlag(t *testing.T) {
	chart, _ := RenderGenerationPie([]FuelShare{
		{Label: "wind", Percent: 75},
		{Label: "gas", Percent: 25},
	})

	// The 75% wedge spans more than a half turn.
	assert.Contains(t, chart, " 0 1 1 ")
	assert.Contains(t, chart, " 0 0 1 ")
}

func TestLegendIntensity(t *testing.T) {
	_, legend := RenderGenerationPie([]FuelShare{
		{Label: "gas", Percent: 60, Intensity: intPtr(394)},
		{Label: "hydro", Percent: 30, Intensity: intPtr(0)},
		{Label: "imports", Percent: 10},
	})

	assert.Contains(t, legend, "394 gCO₂/kWh")
	// Zero intensity renders literally, it is never dropped.
	assert.Contains(t, legend, "0 gCO₂/kWh")
	assert.Equal(t, 2, strings.Count(legend, "legend-intensity"))
	assert.Equal(t, 3, strings.Count(legend, "legend-item"))
}

func TestLegendColorOrderMatchesChart(t *testing.T) {
	shares := make([]FuelShare, 17)
	for i := range shares {
		shares[i] = FuelShare{Label: "fuel", Percent: 1}
	}

	chart, legend := RenderGenerationPie(shares)

	// Entries 15 and 16 wrap around to the first palette colors.
	assert.Equal(t, 2, strings.Count(chart, palette[0]))
	assert.Equal(t, 2, strings.Count(chart, palette[1]))
	assert.Equal(t, 2, strings.Count(legend, palette[0]))
	assert.Equal(t, 2, strings.Count(legend, palette[1]))
}

func TestRenderGenerationPieEscapesLabels(t *testing.T) {
	chart, legend := RenderGenerationPie([]FuelShare{
		{Label: `<script>"x"&</script>`, Percent: 100},
	})

	assert.NotContains(t, chart, "<script>")
	assert.NotContains(t, legend, "<script>")
	assert.Contains(t, chart, "&lt;script&gt;")
}

func TestRenderGenerationPieDeterministic(t *testing.T) {
	shares := []FuelShare{
		{Label: "gas", Percent: 39.1, Intensity: intPtr(394)},
		{Label: "wind", Percent: 33.3, Intensity: intPtr(0)},
		{Label: "imports", Percent: 27.6},
	}

	chart1, legend1 := RenderGenerationPie(shares)
	chart2, legend2 := RenderGenerationPie(shares)
	assert.Equal(t, chart1, chart2)
	assert.Equal(t, legend1, legend2)
}
