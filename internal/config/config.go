package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the commands need.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Carbon   CarbonConfig   `mapstructure:"carbon"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

// ServerConfig configures the dashboard web server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// CarbonConfig configures the carbon intensity API client.
type CarbonConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	RequestTimeout int    `mapstructure:"request_timeout"`
	MaxRetries     int    `mapstructure:"max_retries"`
}

// TelegramConfig configures the notify command.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// AppConfig holds the data window and output settings.
type AppConfig struct {
	HistoryHours  int    `mapstructure:"history_hours"`
	ForecastHours int    `mapstructure:"forecast_hours"`
	ChartsDir     string `mapstructure:"charts_dir"`
}

// LoadConfig layers settings from defaults, config.yaml, .env and process
// environment, then flags on top.
func LoadConfig() (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // config.yaml is optional

	v.AutomaticEnv()
	setupEnvAliases(v)
	setupFlags(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("server.addr", "CARBON_SERVER_ADDR")
	v.BindEnv("carbon.base_url", "CARBON_API_BASE_URL")
	v.BindEnv("carbon.request_timeout", "CARBON_REQUEST_TIMEOUT")
	v.BindEnv("carbon.max_retries", "CARBON_MAX_RETRIES")
	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("app.history_hours", "CARBON_HISTORY_HOURS")
	v.BindEnv("app.forecast_hours", "CARBON_FORECAST_HOURS")
	v.BindEnv("app.charts_dir", "CARBON_CHARTS_DIR")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:3000")
	v.SetDefault("carbon.base_url", "")
	v.SetDefault("carbon.request_timeout", 30)
	v.SetDefault("carbon.max_retries", 3)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("app.history_hours", 12)
	v.SetDefault("app.forecast_hours", 24)
	v.SetDefault("app.charts_dir", "etc/charts")
}

var flagsOnce sync.Once

func setupFlags(v *viper.Viper) {
	flagsOnce.Do(func() {
		pflag.String("server.addr", "127.0.0.1:3000", "Dashboard listen address (env: CARBON_SERVER_ADDR)")
		pflag.String("carbon.base_url", "", "Carbon intensity API base URL override (env: CARBON_API_BASE_URL)")
		pflag.Int("carbon.request_timeout", 30, "Request timeout in seconds (env: CARBON_REQUEST_TIMEOUT)")
		pflag.Int("carbon.max_retries", 3, "Max retries for failed requests (env: CARBON_MAX_RETRIES)")
		pflag.Int("app.history_hours", 12, "Hours of intensity history to chart (env: CARBON_HISTORY_HOURS)")
		pflag.Int("app.forecast_hours", 24, "Hours of intensity forecast to chart (env: CARBON_FORECAST_HOURS)")
		pflag.String("app.charts_dir", "etc/charts", "Directory for generated PNG charts (env: CARBON_CHARTS_DIR)")
		pflag.Parse()
	})
	v.BindPFlags(pflag.CommandLine)
}

func validateConfig(cfg *Config) error {
	if cfg.App.HistoryHours <= 0 {
		return fmt.Errorf("app.history_hours must be positive, got %d", cfg.App.HistoryHours)
	}
	if cfg.App.ForecastHours < 0 {
		return fmt.Errorf("app.forecast_hours must not be negative, got %d", cfg.App.ForecastHours)
	}
	return nil
}
