package carbonapi

// Response shapes for api.carbonintensity.org.uk.

// IntensityResponse wraps the /intensity family of endpoints.
type IntensityResponse struct {
	Data []IntensityEntry `json:"data"`
}

// IntensityEntry is one half-hour settlement period.
type IntensityEntry struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Intensity Intensity `json:"intensity"`
}

// Intensity carries the measured and the forecast value; Actual is nil for
// periods that have not been measured yet.
type Intensity struct {
	Actual   *int   `json:"actual"`
	Forecast *int   `json:"forecast"`
	Index    string `json:"index"`
}

// Value returns the measured intensity, falling back to the forecast.
func (e *IntensityEntry) Value() int {
	if e.Intensity.Actual != nil {
		return *e.Intensity.Actual
	}
	if e.Intensity.Forecast != nil {
		return *e.Intensity.Forecast
	}
	return 0
}

// IsForecast reports whether the entry has no measured value yet.
func (e *IntensityEntry) IsForecast() bool {
	return e.Intensity.Actual == nil
}

// GenerationResponse wraps the /generation endpoint.
type GenerationResponse struct {
	Data GenerationEntry `json:"data"`
}

type GenerationEntry struct {
	From          string       `json:"from"`
	To            string       `json:"to"`
	GenerationMix []FuelSource `json:"generationmix"`
}

// FuelSource is one fuel's share of the current generation mix.
type FuelSource struct {
	Fuel string  `json:"fuel"`
	Perc float64 `json:"perc"`
}

// FactorsResponse wraps /intensity/factors: a single object mapping fuel
// names to their emission factors in gCO₂/kWh.
type FactorsResponse struct {
	Data []map[string]int `json:"data"`
}
