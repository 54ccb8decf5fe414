package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"StockToolkit/internal/model"
)

var baseDay = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds daily bars with the given closes; adjusted close equals close.
func barsFromCloses(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:     baseDay.AddDate(0, 0, i),
			Open:     c,
			High:     c * 1.01,
			Low:      c * 0.99,
			Close:    c,
			AdjClose: c,
			Volume:   1000,
		}
	}
	return bars
}

func newPanel(t *testing.T, closes map[string][]float64) *model.PricePanel {
	t.Helper()
	bars := make(map[string][]model.OHLCV, len(closes))
	for ticker, c := range closes {
		bars[ticker] = barsFromCloses(c)
	}
	p, err := model.NewPricePanel(bars)
	require.NoError(t, err)
	return p
}

var scenarioCloses = []float64{10, 11, 12, 11, 10, 11, 12, 13, 14, 15}
