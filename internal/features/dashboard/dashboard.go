package dashboard

// Dashboard page assembly: fetches the current intensity, generation mix
// and the intensity window from the API, converts them into the chart
// renderer's input records and embeds the rendered fragments in the page.

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carbon-dash/internal/charts"
	"carbon-dash/internal/clients_api/carbonapi"
	"carbon-dash/internal/infra/log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Service renders the dashboard from live API data.
type Service struct {
	client        *carbonapi.Client
	historyHours  int
	forecastHours int
}

func New(client *carbonapi.Client, historyHours, forecastHours int) *Service {
	return &Service{
		client:        client,
		historyHours:  historyHours,
		forecastHours: forecastHours,
	}
}

// Routes returns the dashboard HTTP routes.
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// fuelFactorKeys maps generation mix fuel names to their key in the
// /intensity/factors table. Interconnector imports have no single factor
// and stay unmapped.
var fuelFactorKeys = map[string]string{
	"biomass": "Biomass",
	"coal":    "Coal",
	"gas":     "Gas (Combined Cycle)",
	"hydro":   "Hydro",
	"nuclear": "Nuclear",
	"oil":     "Oil",
	"other":   "Other",
	"solar":   "Solar",
	"wind":    "Wind",
}

// buildFuelShares converts the API generation mix into chart input,
// attaching the emission factor where the fuel has one.
func buildFuelShares(mix []carbonapi.FuelSource, factors map[string]int) []charts.FuelShare {
	shares := make([]charts.FuelShare, 0, len(mix))
	for _, f := range mix {
		share := charts.FuelShare{Label: f.Fuel, Percent: f.Perc}
		if key, ok := fuelFactorKeys[f.Fuel]; ok {
			if factor, ok := factors[key]; ok {
				v := factor
				share.Intensity = &v
			}
		}
		shares = append(shares, share)
	}
	return shares
}

// IntensityPoints converts half-hour API entries into chart points.
// An entry without a measured value counts as forecast.
func IntensityPoints(entries []carbonapi.IntensityEntry) []charts.IntensityPoint {
	points := make([]charts.IntensityPoint, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		points = append(points, charts.IntensityPoint{
			Timestamp: e.From,
			Value:     e.Value(),
			Forecast:  e.IsForecast(),
		})
	}
	return points
}

// handleIndex fetches everything and renders the page. Fetch failures
// degrade to an empty section, mirroring an empty-data render, rather
// than failing the whole page.
func (s *Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	intensity := s.fetchCurrentIntensity(ctx)
	shares := s.fetchFuelShares(ctx)
	points := s.fetchIntensityPoints(ctx, now)

	pieMarkup, legendMarkup := charts.RenderGenerationPie(shares)
	seriesMarkup := charts.RenderIntensitySeries(points, now)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, renderPage(intensity, pieMarkup, legendMarkup, seriesMarkup))
}

func (s *Service) fetchCurrentIntensity(ctx context.Context) int {
	entry, err := s.client.GetCurrentIntensity(ctx)
	if err != nil {
		log.LogError("Failed to fetch current intensity", zap.Error(err))
		return 0
	}
	return entry.Value()
}

func (s *Service) fetchFuelShares(ctx context.Context) []charts.FuelShare {
	mix, err := s.client.GetGenerationMix(ctx)
	if err != nil {
		log.LogError("Failed to fetch generation mix", zap.Error(err))
		return nil
	}

	// The factors are decoration on the legend; the mix renders without
	// them if the call fails.
	factors, err := s.client.GetIntensityFactors(ctx)
	if err != nil {
		log.LogWarn("Failed to fetch intensity factors", zap.Error(err))
		factors = nil
	}

	return buildFuelShares(mix.GenerationMix, factors)
}

func (s *Service) fetchIntensityPoints(ctx context.Context, now time.Time) []charts.IntensityPoint {
	from := now.Add(-time.Duration(s.historyHours) * time.Hour)
	to := now.Add(time.Duration(s.forecastHours) * time.Hour)

	entries, err := s.client.GetIntensityRange(ctx, from, to)
	if err != nil {
		log.LogError("Failed to fetch intensity range", zap.Error(err))
		return nil
	}

	log.LogInfo("Fetched intensity window",
		zap.Int("entries", len(entries)),
		zap.String("from", from.Format(carbonapi.TimestampLayout)),
		zap.String("to", to.Format(carbonapi.TimestampLayout)))

	return IntensityPoints(entries)
}
