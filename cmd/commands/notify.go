package commands

// Command to post the intensity chart to a Telegram chat
// Renders the PNG chart and sends it with a summary caption

import (
	"context"
	"fmt"
	"time"

	"carbon-dash/internal/clients_api/carbonapi"
	"carbon-dash/internal/config"
	"carbon-dash/internal/features/dashboard"
	"carbon-dash/internal/features/tg_charts"
	"carbon-dash/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Post the current intensity chart to Telegram",
	Long:  `Render the intensity history/forecast chart as PNG and post it to the configured Telegram chat with a summary caption.`,
	RunE:  runNotify,
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required for notify")
	}
	if cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required for notify")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
	defer cancel()

	now := time.Now().UTC()
	from := now.Add(-time.Duration(cfg.App.HistoryHours) * time.Hour)
	to := now.Add(time.Duration(cfg.App.ForecastHours) * time.Hour)

	client := carbonapi.NewClient(cfg.Carbon.BaseURL)

	current, err := client.GetCurrentIntensity(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch current intensity: %w", err)
	}

	entries, err := client.GetIntensityRange(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to fetch intensity range: %w", err)
	}

	points := dashboard.IntensityPoints(entries)
	chartPath, err := tg_charts.GenerateIntensityChart(points, now, cfg.App.ChartsDir)
	if err != nil {
		return fmt.Errorf("failed to generate intensity chart: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}

	caption := fmt.Sprintf("UK carbon intensity: %d gCO₂/kWh (%s)",
		current.Value(), current.Intensity.Index)

	photo := tgbotapi.NewPhoto(cfg.Telegram.ChatID, tgbotapi.FilePath(chartPath))
	photo.Caption = caption
	if _, err := bot.Send(photo); err != nil {
		return fmt.Errorf("failed to send telegram photo: %w", err)
	}

	log.LogSuccess("Intensity chart posted to Telegram",
		zap.Int64("chat_id", cfg.Telegram.ChatID),
		zap.String("chart", chartPath))
	return nil
}
