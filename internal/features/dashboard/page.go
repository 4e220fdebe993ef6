package dashboard

import "fmt"

// The page shell. Placeholders, in order: current intensity value, pie
// chart SVG elements, legend rows, intensity time-series SVG.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Carbon Intensity Dashboard</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
        .container { max-width: 1200px; margin: 0 auto; }
        h1 { text-align: center; color: #333; margin-bottom: 30px; }
        .dashboard { display: grid; grid-template-columns: 1fr 1fr; gap: 30px; }
        .intensity-display { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); text-align: center; }
        .intensity-value { font-size: 3em; font-weight: bold; color: #2c3e50; margin: 20px 0; }
        .unit { font-size: 0.4em; color: #7f8c8d; }
        .generation-mix { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .chart-container { display: flex; justify-content: center; margin: 20px 0; }
        .intensity-series { grid-column: 1 / -1; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .legend-items { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; }
        .legend-item { display: flex; align-items: center; gap: 10px; }
        .legend-color { width: 20px; height: 20px; border-radius: 3px; }
        .legend-label { flex: 1; }
        .legend-value { font-weight: bold; }
        .legend-intensity { color: #7f8c8d; font-size: 0.85em; }
        h2 { color: #2c3e50; margin-bottom: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>UK Carbon Intensity Dashboard</h1>
        <div class="dashboard">
            <div class="intensity-display">
                <h2>Current Carbon Intensity</h2>
                <div class="intensity-value">
                    %d
                    <span class="unit"> gCO₂/kWh</span>
                </div>
            </div>
            <div class="generation-mix">
                <h2>Energy Generation Mix</h2>
                <div class="chart-container">
                    <svg width="450" height="450" viewBox="0 0 500 500">
                        %s
                    </svg>
                </div>
                <div class="legend">
                    <div class="legend-items">
                        %s
                    </div>
                </div>
            </div>
            <div class="intensity-series">
                <h2>Carbon Intensity - History and Forecast</h2>
                <div class="chart-container">
                    %s
                </div>
            </div>
        </div>
    </div>
</body>
</html>`

func renderPage(intensity int, pieMarkup, legendMarkup, seriesMarkup string) string {
	return fmt.Sprintf(pageTemplate, intensity, pieMarkup, legendMarkup, seriesMarkup)
}
