package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data providers understood by the collector.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "financego"
	ProviderMock      = "mock"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider"`
		Proxy    string `yaml:"proxy"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"data_source"`
	Analysis struct {
		Tickers      []string `yaml:"tickers"`
		Mode         string   `yaml:"mode"`
		MAWindows    []int    `yaml:"ma_windows"`
		RSIWindow    int      `yaml:"rsi_window"`
		LookbackDays int      `yaml:"lookback_days"`
	} `yaml:"analysis"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads .env and the YAML file at path, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKTOOLKIT_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SCHEDULE_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RSI_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.RSIWindow = n
		}
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	cfg.DataSource.Provider = strings.ToLower(cfg.DataSource.Provider)
	if cfg.Analysis.Mode == "" {
		cfg.Analysis.Mode = "full"
	}
	if len(cfg.Analysis.MAWindows) == 0 {
		cfg.Analysis.MAWindows = []int{50, 200}
	}
	if cfg.Analysis.RSIWindow == 0 {
		cfg.Analysis.RSIWindow = 14
	}
	if cfg.Analysis.LookbackDays == 0 {
		cfg.Analysis.LookbackDays = 365
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 30 22 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderFinanceGo, ProviderMock:
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, financego, mock", c.DataSource.Provider)
	}
	switch c.Analysis.Mode {
	case "full", "compare", "corr":
	default:
		return fmt.Errorf("analysis.mode %q is not one of full, compare, corr", c.Analysis.Mode)
	}
	for _, w := range c.Analysis.MAWindows {
		if w <= 0 {
			return fmt.Errorf("analysis.ma_windows must be positive, got %d", w)
		}
	}
	if c.Analysis.RSIWindow <= 0 {
		return fmt.Errorf("analysis.rsi_window must be positive")
	}
	if c.Analysis.LookbackDays <= 0 {
		return fmt.Errorf("analysis.lookback_days must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
