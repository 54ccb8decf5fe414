package collector

import (
	"context"
	"time"

	"StockToolkit/internal/model"
)

// Fetcher defines the interface for fetching daily bars for one symbol.
// Returned bars are in chronological order.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
