package charts

// Color assignment for the generation mix pie chart and its legend.
// Fuel sources are colored by their position in the mix, cycling through
// the palette, so the chart and the legend always agree.

var palette = [15]string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FECA57",
	"#FF9FF3", "#54A0FF", "#5F27CD", "#00D2D3", "#FF9F43",
	"#EE5A24", "#0ABDE3", "#10AC84", "#F79F1F", "#A3CB38",
}

const fallbackColor = "#999999"

// colorAt returns the palette color for an entry index.
func colorAt(i int) string {
	if i < 0 {
		return fallbackColor
	}
	return palette[i%len(palette)]
}
