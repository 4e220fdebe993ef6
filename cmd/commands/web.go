package commands

// Command to run the dashboard web server
// Implements graceful shutdown on SIGINT/SIGTERM

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carbon-dash/internal/clients_api/carbonapi"
	"carbon-dash/internal/config"
	"carbon-dash/internal/features/dashboard"
	"carbon-dash/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Run the carbon intensity dashboard server",
	Long:  `Serve the dashboard page with the generation mix pie chart and the intensity history/forecast chart.`,
	RunE:  runWeb,
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := carbonapi.NewClient(cfg.Carbon.BaseURL)
	svc := dashboard.New(client, cfg.App.HistoryHours, cfg.App.ForecastHours)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           svc.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.LogSuccess("Dashboard server is running", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.LogInfo("Shutdown signal received, gracefully stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.LogSuccess("Server stopped")
	return nil
}
