package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"StockToolkit/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Bars are generated for every weekday in the requested range.
type MockFetcher struct {
	BasePrice float64
	// Data, when set, is returned per symbol instead of generated bars.
	Data map[string][]model.OHLCV
	// Fail lists symbols that return an error.
	Fail map[string]bool
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	if m.Fail[symbol] {
		return nil, fmt.Errorf("mock fetch %s: forced failure", symbol)
	}
	if bars, ok := m.Data[symbol]; ok {
		return bars, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	return generateMockBars(symbol, base, start, end), nil
}

// generateMockBars produces a deterministic per-symbol wave around basePrice.
func generateMockBars(symbol string, basePrice float64, start, end time.Time) []model.OHLCV {
	phase := 0.0
	for _, r := range symbol {
		phase += float64(r)
	}
	var bars []model.OHLCV
	i := 0
	for d := model.TradingDay(start); d.Before(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/10+phase) + float64(i)*0.0005)
		bars = append(bars, model.OHLCV{
			Time:     d,
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p * 0.99,
			Volume:   1000000 + int64(i)*100,
		})
		i++
	}
	return bars
}
