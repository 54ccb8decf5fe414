package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StockToolkit/internal/analysis"
	"StockToolkit/internal/collector"
	"StockToolkit/internal/config"
	"StockToolkit/internal/logger"
	"StockToolkit/internal/model"
	"StockToolkit/internal/notifier"
	"StockToolkit/internal/scheduler"
	"StockToolkit/internal/store"
)

const defaultConfigPath = "configs/config.yaml"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stocktoolkit [TICKERS]",
		Short: "StockToolkit - daily price analytics",
		Long: `StockToolkit fetches daily bars for a set of tickers and computes moving averages,
RSI, normalized performance or a close-price correlation matrix.
Example: stocktoolkit AAPL,MSFT,NVDA --analysis corr -s 2024-01-01`,
		SilenceUsage: true,
		RunE:         runAnalyze,
	}

	rootCmd.AddCommand(newScheduleCmd())

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Configuration file path (default $CONFIG_PATH or "+defaultConfigPath+")")

	rootCmd.Flags().StringP("start", "s", "", "Start date in YYYY-MM-DD format (default: one lookback before end)")
	rootCmd.Flags().StringP("end", "e", "", "End date in YYYY-MM-DD format (default: today)")
	rootCmd.Flags().String("analysis", "", "Analysis mode: full, compare or corr (default from config)")
	rootCmd.Flags().String("ma", "", "Moving average windows, e.g. 50,200 (default from config)")
	rootCmd.Flags().Int("rsi", 0, "RSI window (default from config)")
	rootCmd.Flags().String("out", "", "Also write the report as JSON to this file")
	rootCmd.Flags().Bool("notify", false, "Send the report to Telegram when configured")

	return rootCmd
}

// newScheduleCmd creates the schedule command
func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the configured analysis on the cron schedule",
		Args:  cobra.NoArgs,
		RunE:  runSchedule,
	}
}

// app bundles everything a command needs after config is loaded.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	analyzer *analysis.Analyzer
	cache    store.BarCache
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		a.log.Warn("close cache", zap.Error(err))
	}
	_ = a.log.Sync()
}

func setup(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log, err := logger.New(level, debug)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	fetcher := newFetcher(cfg)
	log.Debug("data source", zap.String("fetcher", fetcher.Name()))

	var cache store.BarCache = store.NewNoopCache()
	if cfg.Cache.SQLitePath != "" {
		sc, err := store.NewSQLiteCache(cfg.Cache.SQLitePath, log)
		if err != nil {
			log.Warn("init sqlite cache failed, caching disabled", zap.Error(err))
		} else {
			cache = sc
		}
	}

	col := collector.NewCollector(fetcher, cache, log)
	return &app{
		cfg:      cfg,
		log:      log,
		analyzer: analysis.NewAnalyzer(col, log),
		cache:    cache,
	}, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case config.ProviderFinanceGo:
		return collector.NewFinanceGoFetcher()
	case config.ProviderMock:
		return &collector.MockFetcher{BasePrice: 100}
	default:
		return collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Proxy)
	}
}

// requestFromConfig builds the configured run; flags override it in runAnalyze.
func requestFromConfig(cfg *config.Config) (analysis.Request, error) {
	mode, err := analysis.ParseMode(cfg.Analysis.Mode)
	if err != nil {
		return analysis.Request{}, err
	}
	return analysis.Request{
		Tickers:   collector.NormalizeTickers(cfg.Analysis.Tickers),
		Mode:      mode,
		MAWindows: cfg.Analysis.MAWindows,
		RSIWindow: cfg.Analysis.RSIWindow,
	}, nil
}

func lookback(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Analysis.LookbackDays) * 24 * time.Hour
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	req, err := requestFromConfig(a.cfg)
	if err != nil {
		return err
	}
	if tickers := ParseTickers(args); len(tickers) > 0 {
		req.Tickers = tickers
	}
	if len(req.Tickers) == 0 {
		return errors.New("no tickers given on the command line or in config")
	}
	if err := applyFlags(cmd, &req); err != nil {
		return err
	}
	if req.Start.IsZero() {
		end := req.End
		if end.IsZero() {
			end = time.Now()
		}
		req.Start = end.Add(-lookback(a.cfg))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := a.analyzer.Run(ctx, req)
	if errors.Is(err, model.ErrInsufficientTickers) {
		return fmt.Errorf("correlation needs at least two tickers with data: %w", err)
	}
	if err != nil {
		return err
	}

	title, body := notifier.Title(rep), notifier.FormatReport(rep)
	if err := notifier.NewConsoleNotifier(cmd.OutOrStdout()).Notify(ctx, title, body); err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := writeReport(rep, out); err != nil {
			return err
		}
		a.log.Info("report written", zap.String("path", out))
	}

	if notify, _ := cmd.Flags().GetBool("notify"); notify {
		if !a.cfg.TelegramEnabled() {
			return errors.New("--notify requires telegram.bot_token and telegram.chat_id")
		}
		tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.DataSource.Proxy, a.log)
		if err := tn.Notify(ctx, title, body); err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
	}
	return nil
}

// applyFlags overlays explicitly set command line flags on req.
func applyFlags(cmd *cobra.Command, req *analysis.Request) error {
	flags := cmd.Flags()
	var err error
	if s, _ := flags.GetString("start"); s != "" {
		if req.Start, err = ParseDate(s); err != nil {
			return err
		}
	}
	if s, _ := flags.GetString("end"); s != "" {
		if req.End, err = ParseDate(s); err != nil {
			return err
		}
	}
	if s, _ := flags.GetString("analysis"); s != "" {
		if req.Mode, err = analysis.ParseMode(s); err != nil {
			return err
		}
	}
	if s, _ := flags.GetString("ma"); s != "" {
		if req.MAWindows, err = ParseWindows(s); err != nil {
			return err
		}
	}
	if flags.Changed("rsi") {
		w, _ := flags.GetInt("rsi")
		if w <= 0 {
			return fmt.Errorf("rsi window must be positive, got %d", w)
		}
		req.RSIWindow = w
	}
	return nil
}

func writeReport(rep *analysis.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := rep.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	req, err := requestFromConfig(a.cfg)
	if err != nil {
		return err
	}
	if len(req.Tickers) == 0 {
		return errors.New("analysis.tickers must be set for scheduled runs")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	n := notifier.Multi{notifier.NewConsoleNotifier(cmd.OutOrStdout())}
	if a.cfg.TelegramEnabled() {
		n = append(n, notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.DataSource.Proxy, a.log))
	}

	sched := scheduler.NewScheduler(ctx, a.analyzer, n, req, lookback(a.cfg), a.log)
	if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		a.log.Info("RUN_ON_START enabled, executing analysis now")
		sched.RunAsync()
	}

	a.log.Info("StockToolkit is running. Press Ctrl+C to stop.", zap.String("cron", a.cfg.Schedule.Cron))
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received, stopping")
	cancel()
	return nil
}
