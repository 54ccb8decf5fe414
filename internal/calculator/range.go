package calculator

import (
	"errors"
	"fmt"
	"math"

	"StockToolkit/internal/model"
)

// Common trailing range lengths in trading days.
const (
	Days52Week = 252
	Days30Day  = 22
)

// PriceRange scans the most recent days sessions of a ticker and returns the
// high, the low and where the last close sits within them. Shorter panels use
// every available session.
func PriceRange(p *model.PricePanel, ticker string, days int) (model.PriceRange, error) {
	if days <= 0 {
		return model.PriceRange{}, fmt.Errorf("range days %d must be positive: %w", days, model.ErrInvalidWindow)
	}
	if p == nil || p.Len() == 0 {
		return model.PriceRange{}, model.ErrEmptyPanel
	}
	bars, err := p.Records(ticker)
	if err != nil {
		return model.PriceRange{}, err
	}

	n := len(bars)
	start := n - days
	if start < 0 {
		start = 0
	}
	high := math.Inf(-1)
	low := math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}

	pos, err := RangePosition(bars[n-1].Close, high, low)
	if err != nil {
		return model.PriceRange{}, fmt.Errorf("%s: %w", model.NormalizeTicker(ticker), err)
	}
	return model.PriceRange{Days: n - start, High: high, Low: low, Position: pos}, nil
}

// RangePosition returns where current sits within [low, high], clamped to 0.0~1.0.
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
