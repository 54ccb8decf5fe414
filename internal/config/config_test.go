package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STOCKTOOLKIT_PROVIDER", "HTTPS_PROXY", "SQLITE_PATH", "TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID", "SCHEDULE_CRON", "LOG_LEVEL", "RSI_WINDOW",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, ProviderYahoo, cfg.DataSource.Provider)
	require.Equal(t, "full", cfg.Analysis.Mode)
	require.Equal(t, []int{50, 200}, cfg.Analysis.MAWindows)
	require.Equal(t, 14, cfg.Analysis.RSIWindow)
	require.Equal(t, 365, cfg.Analysis.LookbackDays)
	require.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.TelegramEnabled())
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
data_source:
  provider: Mock
analysis:
  tickers: [AAPL, MSFT]
  mode: corr
  ma_windows: [20, 50]
cache:
  sqlite_path: data/bars.db
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("RSI_WINDOW", "9")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ProviderMock, cfg.DataSource.Provider)
	require.Equal(t, []string{"AAPL", "MSFT"}, cfg.Analysis.Tickers)
	require.Equal(t, "corr", cfg.Analysis.Mode)
	require.Equal(t, []int{20, 50}, cfg.Analysis.MAWindows)
	require.Equal(t, 9, cfg.Analysis.RSIWindow)
	require.Equal(t, "data/bars.db", cfg.Cache.SQLitePath)
	require.True(t, cfg.TelegramEnabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.DataSource.Provider = "bloomberg"
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Analysis.Mode = "plot"
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Analysis.MAWindows = []int{20, 0}
	require.Error(t, cfg.Validate())

	cfg = base()
	cfg.Telegram.BotToken = "only-token"
	require.Error(t, cfg.Validate())
}
