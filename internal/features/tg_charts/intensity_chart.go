package tg_charts

// PNG rendering of the intensity series for Telegram. The dashboard uses
// the SVG renderer in internal/charts; Telegram needs a raster image, so
// this draws the same series with gg instead.

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"carbon-dash/internal/charts"
	"carbon-dash/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	chartWidth  = 1600
	chartHeight = 900

	chartAreaLeft   = 180.0
	chartAreaRight  = 1520.0
	chartAreaTop    = 220.0
	chartAreaBottom = 780.0

	titleX = 180.0
	titleY = 90.0

	currentValueX = 180.0
	currentValueY = 170.0

	mainFontSize  = 34.0
	titleFontSize = 44.0
	axisFontSize  = 24.0

	axisTickLength = 8.0
	timeTickEvery  = 4
)

var fontPaths = []string{
	"etc/fonts/InterVariable.ttf",
	"etc/fonts/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/inter/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
}

// GenerateIntensityChart draws the intensity series as a PNG and returns
// the saved file path. Unlike the SVG renderer this is allowed to fail:
// a Telegram post without its chart is an error worth reporting.
func GenerateIntensityChart(points []charts.IntensityPoint, now time.Time, chartsDir string) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("no intensity points available")
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
		return "", fmt.Errorf("flat intensity series cannot be charted")
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(color.Black)
	dc.Clear()

	fontPath, fontLoaded := loadFont(dc, titleFontSize)

	dc.SetColor(color.White)
	dc.DrawString("Carbon Intensity - last 12h + 24h forecast", titleX, titleY)

	if fontLoaded {
		dc.LoadFontFace(fontPath, mainFontSize)
	}
	current := points[0].Value
	for _, p := range points {
		if p.Forecast {
			break
		}
		current = p.Value
	}
	dc.DrawString(fmt.Sprintf("%d gCO2/kWh", current), currentValueX, currentValueY)

	chartAreaWidth := chartAreaRight - chartAreaLeft
	chartAreaHeight := chartAreaBottom - chartAreaTop

	xAt := func(i int) float64 {
		return chartAreaLeft + (float64(i)/float64(len(points)-1))*chartAreaWidth
	}
	yAt := func(v int) float64 {
		return chartAreaBottom - (float64(v-minVal)/float64(maxVal-minVal))*chartAreaHeight
	}

	// Axis frame.
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.SetDash()
	dc.DrawLine(chartAreaLeft, chartAreaBottom, chartAreaRight, chartAreaBottom)
	dc.Stroke()
	dc.DrawLine(chartAreaLeft, chartAreaTop, chartAreaLeft, chartAreaBottom)
	dc.Stroke()

	// Value gridlines, same tick derivation as the SVG chart.
	if fontLoaded {
		dc.LoadFontFace(fontPath, axisFontSize)
	}
	step := (maxVal - minVal + 3) / 4
	if step < 20 {
		step = 20
	}
	first := (minVal / step) * step
	if first > minVal {
		first -= step
	}
	for v := first; v <= maxVal; v += step {
		y := yAt(v)
		if y < chartAreaTop || y > chartAreaBottom {
			continue
		}
		dc.SetColor(color.Gray{Y: 90})
		dc.SetLineWidth(1)
		dc.SetDash(10, 5)
		dc.DrawLine(chartAreaLeft, y, chartAreaRight, y)
		dc.Stroke()

		dc.SetColor(color.White)
		dc.SetDash()
		dc.DrawLine(chartAreaLeft-axisTickLength, y, chartAreaLeft, y)
		dc.Stroke()

		label := fmt.Sprintf("%d", v)
		labelWidth, _ := dc.MeasureString(label)
		dc.DrawString(label, chartAreaLeft-labelWidth-16, y+axisFontSize/3)
	}
	dc.SetDash()

	// Time ticks every 4th sample, 2 hours at half-hour spacing.
	windowStart, startErr := time.Parse(charts.TimestampLayout, points[0].Timestamp)
	for i := 0; i < len(points); i += timeTickEvery {
		x := xAt(i)
		dc.SetColor(color.White)
		dc.SetLineWidth(2)
		dc.DrawLine(x, chartAreaBottom, x, chartAreaBottom+axisTickLength)
		dc.Stroke()

		if startErr == nil {
			label := windowStart.Add(time.Duration(i) * 30 * time.Minute).Format("15:04")
			labelWidth, _ := dc.MeasureString(label)
			dc.DrawString(label, x-labelWidth/2, chartAreaBottom+40)
		}
	}

	// Historical segment solid, forecast dashed, connected at the boundary.
	histColor := color.RGBA{0, 255, 0, 255}
	foreColor := color.RGBA{255, 165, 0, 255}
	dc.SetLineWidth(3)
	for i := 1; i < len(points); i++ {
		if points[i].Forecast {
			dc.SetColor(foreColor)
			dc.SetDash(12, 8)
		} else {
			dc.SetColor(histColor)
			dc.SetDash()
		}
		dc.DrawLine(xAt(i-1), yAt(points[i-1].Value), xAt(i), yAt(points[i].Value))
		dc.Stroke()
	}
	dc.SetDash()

	// Now marker.
	markerIdx := len(points) / 2
	for i, p := range points {
		t, err := time.Parse(charts.TimestampLayout, p.Timestamp)
		if err != nil {
			continue
		}
		if t.After(now) {
			markerIdx = i
			break
		}
	}
	markerX := xAt(markerIdx)
	dc.SetColor(color.RGBA{255, 70, 70, 255})
	dc.SetLineWidth(2)
	dc.SetDash(6, 6)
	dc.DrawLine(markerX, chartAreaTop, markerX, chartAreaBottom)
	dc.Stroke()
	dc.SetDash()

	if err := os.MkdirAll(chartsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}

	filename := filepath.Join(chartsDir, "intensity_chart.png")
	if err := dc.SavePNG(filename); err != nil {
		return "", fmt.Errorf("failed to save intensity chart: %w", err)
	}

	fileInfo, err := os.Stat(filename)
	if err != nil {
		return "", fmt.Errorf("failed to stat intensity chart file: %w", err)
	}
	if fileInfo.Size() == 0 {
		os.Remove(filename)
		return "", fmt.Errorf("intensity chart file is empty after rendering")
	}

	log.LogInfo("Intensity chart generated",
		zap.String("filename", filename),
		zap.Int64("fileSize", fileInfo.Size()),
		zap.Int("pointsCount", len(points)))

	return filename, nil
}

// loadFont tries the known font locations and reports which one loaded.
func loadFont(dc *gg.Context, size float64) (string, bool) {
	for _, fontPath := range fontPaths {
		if _, err := os.Stat(fontPath); err == nil {
			if err := dc.LoadFontFace(fontPath, size); err == nil {
				return fontPath, true
			}
		}
	}
	log.LogWarn("No usable font found for intensity chart, using default",
		zap.Int("paths_checked", len(fontPaths)))
	return "", false
}
