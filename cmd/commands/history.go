package commands

// Command to print hourly averages of recent carbon intensity
// Groups the API's half-hour entries by hour

import (
	"context"
	"fmt"
	"sort"
	"time"

	"carbon-dash/internal/clients_api/carbonapi"
	"carbon-dash/internal/config"
	"carbon-dash/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print hourly average carbon intensity for the recent past",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	now := time.Now().UTC()
	from := now.Add(-time.Duration(cfg.App.HistoryHours) * time.Hour)

	client := carbonapi.NewClient(cfg.Carbon.BaseURL)
	entries, err := client.GetIntensityRange(ctx, from, now)
	if err != nil {
		return fmt.Errorf("failed to fetch intensity history: %w", err)
	}

	log.LogInfo("Fetched intensity history",
		zap.Int("entries", len(entries)),
		zap.Int("hours", cfg.App.HistoryHours))

	for _, line := range hourlyAverages(entries) {
		fmt.Println(line)
	}
	return nil
}

// hourlyAverages groups half-hour entries by hour and averages them,
// returning "YYYY-MM-DD HH:00: value" lines in ascending order.
func hourlyAverages(entries []carbonapi.IntensityEntry) []string {
	buckets := make(map[string][]int)
	for i := range entries {
		e := &entries[i]
		t, err := time.Parse(carbonapi.TimestampLayout, e.From)
		if err != nil {
			continue
		}
		key := t.Format("2006-01-02 15:00")
		buckets[key] = append(buckets[key], e.Value())
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		values := buckets[k]
		sum := 0
		for _, v := range values {
			sum += v
		}
		lines = append(lines, fmt.Sprintf("%s: %d", k, sum/len(values)))
	}
	return lines
}
