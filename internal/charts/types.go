package charts

// Package charts renders the dashboard's two SVG charts: the generation
// mix pie and the carbon intensity time series. Both renderers are pure
// functions over already-fetched data - no I/O, no shared state - so they
// are safe to call from concurrent requests.

// FuelShare is one category of the generation mix.
// Percent is the share as reported by the API (0..100, not pre-normalized);
// Intensity is the emission factor for the fuel in gCO₂/kWh when known.
type FuelShare struct {
	Label     string
	Percent   float64
	Intensity *int
}

// IntensityPoint is one half-hour carbon intensity sample.
// Points handed to the renderer must be in ascending timestamp order at a
// uniform 30-minute spacing; the renderer places them by index, not by
// elapsed time, and does not sort.
type IntensityPoint struct {
	Timestamp string
	Value     int
	Forecast  bool
}

// TimestampLayout is the minute-precision timestamp format used by the
// carbon intensity API.
const TimestampLayout = "2006-01-02T15:04Z"
