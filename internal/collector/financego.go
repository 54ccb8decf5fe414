package collector

import (
	"context"
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"StockToolkit/internal/model"
)

// FinanceGoFetcher implements Fetcher with the piquette/finance-go chart client.
type FinanceGoFetcher struct{}

func NewFinanceGoFetcher() *FinanceGoFetcher { return &FinanceGoFetcher{} }

func (f *FinanceGoFetcher) Name() string { return "financego" }

func toFloat(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

// convertChartBar turns a finance-go bar into an OHLCV dated in loc. Bars
// without a close (holidays, halts) are reported as not ok.
func convertChartBar(b *finance.ChartBar, loc *time.Location) (model.OHLCV, bool) {
	if b == nil {
		return model.OHLCV{}, false
	}
	bar := model.OHLCV{
		Time:     sessionDay(int64(b.Timestamp), loc),
		Open:     toFloat(b.Open),
		High:     toFloat(b.High),
		Low:      toFloat(b.Low),
		Close:    toFloat(b.Close),
		AdjClose: toFloat(b.AdjClose),
		Volume:   int64(b.Volume),
	}
	if bar.Close == 0 {
		return model.OHLCV{}, false
	}
	if bar.AdjClose == 0 {
		bar.AdjClose = bar.Close
	}
	return bar, true
}

// FetchDailyBars fetches daily bars in [start, end). The underlying client has
// no context support, so cancellation is checked between bars.
func (f *FinanceGoFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	var bars []model.OHLCV
	var loc *time.Location
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if loc == nil {
			loc = exchangeLocation(iter.Meta().ExchangeTimezoneName, 0)
		}
		if bar, ok := convertChartBar(iter.Bar(), loc); ok {
			bars = append(bars, bar)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("finance-go chart %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("finance-go %s: %w", symbol, ErrNoData)
	}
	return bars, nil
}
