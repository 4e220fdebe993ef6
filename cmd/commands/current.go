package commands

// Command to print the current carbon intensity
// Prints the measured value, falling back to the forecast

import (
	"context"
	"fmt"
	"time"

	"carbon-dash/internal/clients_api/carbonapi"
	"carbon-dash/internal/config"
	"carbon-dash/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current carbon intensity",
	RunE:  runCurrent,
}

func runCurrent(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	client := carbonapi.NewClient(cfg.Carbon.BaseURL)
	entry, err := client.GetCurrentIntensity(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current intensity: %w", err)
	}

	log.LogDebug("Current intensity entry",
		zap.String("from", entry.From),
		zap.String("index", entry.Intensity.Index))

	fmt.Println(entry.Value())
	return nil
}
