package commands

import (
	"testing"

	"carbon-dash/internal/clients_api/carbonapi"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestHourlyAverages(t *testing.T) {
	entries := []carbonapi.IntensityEntry{
		{From: "2026-08-30T10:00Z", Intensity: carbonapi.Intensity{Actual: intPtr(100)}},
		{From: "2026-08-30T10:30Z", Intensity: carbonapi.Intensity{Actual: intPtr(120)}},
		{From: "2026-08-30T11:00Z", Intensity: carbonapi.Intensity{Actual: intPtr(150)}},
		// Missing actual falls back to the forecast value.
		{From: "2026-08-30T11:30Z", Intensity: carbonapi.Intensity{Forecast: intPtr(170)}},
	}

	lines := hourlyAverages(entries)

	assert.Equal(t, []string{
		"2026-08-30 10:00: 110",
		"2026-08-30 11:00: 160",
	}, lines)
}

func TestHourlyAveragesSkipsBadTimestamps(t *testing.T) {
	entries := []carbonapi.IntensityEntry{
		{From: "not-a-timestamp", Intensity: carbonapi.Intensity{Actual: intPtr(100)}},
		{From: "2026-08-30T10:00Z", Intensity: carbonapi.Intensity{Actual: intPtr(80)}},
	}

	lines := hourlyAverages(entries)
	assert.Equal(t, []string{"2026-08-30 10:00: 80"}, lines)
}

func TestHourlyAveragesEmpty(t *testing.T) {
	assert.Empty(t, hourlyAverages(nil))
}
