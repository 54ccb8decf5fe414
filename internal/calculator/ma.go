package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"StockToolkit/internal/model"
)

// SMA computes the simple moving average of closes over window.
// Positions before window-1 are undefined. Each window is summed directly so
// window 1 reproduces the input exactly.
func SMA(closes []float64, window int) ([]null.Float, error) {
	if err := checkWindow(len(closes), window); err != nil {
		return nil, err
	}
	out := make([]null.Float, len(closes))
	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		out[i] = null.FloatFrom(sum / float64(window))
	}
	return out, nil
}

// ComputeSMA computes SMA_<window> over a ticker's closes.
func ComputeSMA(p *model.PricePanel, ticker string, window int) (*model.IndicatorSeries, error) {
	closes, err := panelCloses(p, ticker, window)
	if err != nil {
		return nil, err
	}
	values, err := SMA(closes, window)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", model.NormalizeTicker(ticker), model.SMAName(window), err)
	}
	return &model.IndicatorSeries{
		Name:   model.SMAName(window),
		Ticker: model.NormalizeTicker(ticker),
		Window: window,
		Dates:  p.Dates(),
		Values: values,
	}, nil
}

// ComputeMovingAverages computes one SMA series per distinct window, in the order given.
func ComputeMovingAverages(p *model.PricePanel, ticker string, windows []int) ([]*model.IndicatorSeries, error) {
	seen := make(map[int]bool, len(windows))
	out := make([]*model.IndicatorSeries, 0, len(windows))
	for _, w := range windows {
		if seen[w] {
			continue
		}
		seen[w] = true
		s, err := ComputeSMA(p, ticker, w)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func checkWindow(n, window int) error {
	if window <= 0 {
		return fmt.Errorf("window %d must be positive: %w", window, model.ErrInvalidWindow)
	}
	if window > n {
		return fmt.Errorf("window %d exceeds series length %d: %w", window, n, model.ErrInvalidWindow)
	}
	return nil
}

// panelCloses validates the window against the panel before extracting closes.
func panelCloses(p *model.PricePanel, ticker string, window int) ([]float64, error) {
	if p == nil {
		return nil, model.ErrEmptyPanel
	}
	if window <= 0 {
		return nil, fmt.Errorf("window %d must be positive: %w", window, model.ErrInvalidWindow)
	}
	if err := p.RequireHistory(window); err != nil {
		return nil, fmt.Errorf("%s window %d: %w", model.NormalizeTicker(ticker), window, err)
	}
	return p.Closes(ticker)
}
