package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"StockToolkit/internal/model"
)

// DefaultRSIWindow is the conventional RSI lookback.
const DefaultRSIWindow = 14

// RSI computes the relative strength index using simple rolling means of gains
// and losses over the trailing window deltas. The first defined value is at
// index window. A window with no losses yields 100; a flat window yields 50.
func RSI(closes []float64, window int) ([]null.Float, error) {
	if err := checkWindow(len(closes), window); err != nil {
		return nil, err
	}
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	out := make([]null.Float, n)
	for i := window; i < n; i++ {
		var sumGain, sumLoss float64
		for j := i - window + 1; j <= i; j++ {
			sumGain += gains[j]
			sumLoss += losses[j]
		}
		out[i] = null.FloatFrom(rsiValue(sumGain/float64(window), sumLoss/float64(window)))
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgLoss > 0:
		rs := avgGain / avgLoss
		return 100.0 - 100.0/(1.0+rs)
	case avgGain > 0:
		return 100.0
	default:
		return 50.0
	}
}

// ComputeRSI computes RSI_<window> over a ticker's closes.
func ComputeRSI(p *model.PricePanel, ticker string, window int) (*model.IndicatorSeries, error) {
	closes, err := panelCloses(p, ticker, window)
	if err != nil {
		return nil, err
	}
	values, err := RSI(closes, window)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", model.NormalizeTicker(ticker), model.RSIName(window), err)
	}
	return &model.IndicatorSeries{
		Name:   model.RSIName(window),
		Ticker: model.NormalizeTicker(ticker),
		Window: window,
		Dates:  p.Dates(),
		Values: values,
	}, nil
}
