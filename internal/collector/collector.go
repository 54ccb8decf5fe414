package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"StockToolkit/internal/model"
	"StockToolkit/internal/store"
)

// ErrNoData means no ticker produced usable bars.
var ErrNoData = errors.New("no data")

// Collector fetches bars for a ticker list and aligns them into a PricePanel.
type Collector struct {
	Fetcher Fetcher
	Cache   store.BarCache
	Logger  *zap.Logger
}

// NewCollector creates a new Collector. A nil cache disables caching.
func NewCollector(fetcher Fetcher, cache store.BarCache, logger *zap.Logger) *Collector {
	if cache == nil {
		cache = store.NewNoopCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{Fetcher: fetcher, Cache: cache, Logger: logger}
}

// NormalizeTickers trims, upper-cases and de-duplicates symbols, keeping order.
func NormalizeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		n := model.NormalizeTicker(t)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// BuildPanel fetches daily bars in [start, end) for every ticker, drops tickers
// that fail or return nothing, and aligns the rest on their common dates.
func (c *Collector) BuildPanel(ctx context.Context, tickers []string, start, end time.Time) (*model.PricePanel, error) {
	symbols := NormalizeTickers(tickers)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no tickers given: %w", ErrNoData)
	}
	c.Logger.Info("fetching data",
		zap.Strings("tickers", symbols),
		zap.String("start", start.Format("2006-01-02")),
		zap.String("end", end.Format("2006-01-02")),
		zap.String("source", c.Fetcher.Name()))

	fetched := make(map[string][]model.OHLCV, len(symbols))
	for _, sym := range symbols {
		bars, err := c.fetch(ctx, sym, start, end)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.Logger.Warn("dropping ticker", zap.String("ticker", sym), zap.Error(err))
			continue
		}
		if len(bars) == 0 {
			c.Logger.Warn("dropping ticker with no data", zap.String("ticker", sym))
			continue
		}
		fetched[sym] = bars
	}
	if len(fetched) == 0 {
		return nil, fmt.Errorf("all tickers were invalid or had no data for the period: %w", ErrNoData)
	}

	aligned := Align(fetched, c.Logger)
	if len(aligned) == 0 {
		return nil, fmt.Errorf("no common trading dates: %w", ErrNoData)
	}
	panel, err := model.NewPricePanel(aligned)
	if err != nil {
		return nil, fmt.Errorf("build panel: %w", err)
	}
	c.Logger.Info("data fetched",
		zap.Strings("tickers", panel.Tickers()),
		zap.Int("dates", panel.Len()))
	return panel, nil
}

func (c *Collector) fetch(ctx context.Context, sym string, start, end time.Time) ([]model.OHLCV, error) {
	if bars, ok, err := c.Cache.Load(sym, start, end); err != nil {
		c.Logger.Warn("bar cache load failed", zap.String("ticker", sym), zap.Error(err))
	} else if ok {
		c.Logger.Debug("bar cache hit", zap.String("ticker", sym), zap.Int("bars", len(bars)))
		return bars, nil
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, sym, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) > 0 {
		if err := c.Cache.Save(sym, start, end, bars); err != nil {
			c.Logger.Warn("bar cache save failed", zap.String("ticker", sym), zap.Error(err))
		}
	}
	return bars, nil
}

// Align restricts every series to the trading days present in all of them.
// Tickers are folded in symbol order; a ticker that would leave no common day
// is dropped. Duplicate bars for one day keep the last.
func Align(bars map[string][]model.OHLCV, logger *zap.Logger) map[string][]model.OHLCV {
	if logger == nil {
		logger = zap.NewNop()
	}
	symbols := make([]string, 0, len(bars))
	for s := range bars {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	byDay := make(map[string]map[time.Time]model.OHLCV, len(bars))
	var common map[time.Time]bool
	var kept []string
	for _, s := range symbols {
		days := make(map[time.Time]model.OHLCV, len(bars[s]))
		for _, b := range bars[s] {
			days[model.TradingDay(b.Time)] = b
		}
		if len(days) == 0 {
			continue
		}
		if common == nil {
			common = make(map[time.Time]bool, len(days))
			for d := range days {
				common[d] = true
			}
		} else {
			next := make(map[time.Time]bool, len(common))
			for d := range common {
				if _, ok := days[d]; ok {
					next[d] = true
				}
			}
			if len(next) == 0 {
				logger.Warn("dropping ticker with no overlapping dates", zap.String("ticker", s))
				continue
			}
			common = next
		}
		byDay[s] = days
		kept = append(kept, s)
	}

	dates := make([]time.Time, 0, len(common))
	for d := range common {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make(map[string][]model.OHLCV, len(kept))
	for _, s := range kept {
		series := make([]model.OHLCV, len(dates))
		for i, d := range dates {
			b := byDay[s][d]
			b.Time = d
			series[i] = b
		}
		out[s] = series
	}
	return out
}
