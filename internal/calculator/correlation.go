package calculator

import (
	"math"

	"github.com/guregu/null/v6"

	"StockToolkit/internal/model"
)

// ComputeCorrelation builds the Pearson correlation matrix of close prices over
// the full aligned window. It needs at least two tickers.
func ComputeCorrelation(p *model.PricePanel) (*model.CorrelationMatrix, error) {
	if p == nil || p.Len() == 0 {
		return nil, model.ErrEmptyPanel
	}
	tickers := p.Tickers()
	if len(tickers) < 2 {
		return nil, model.ErrInsufficientTickers
	}

	cols := make([][]float64, len(tickers))
	for i, t := range tickers {
		c, err := p.Closes(t)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}

	values := make([][]null.Float, len(tickers))
	for i := range values {
		values[i] = make([]null.Float, len(tickers))
		values[i][i] = null.FloatFrom(1.0)
	}
	for i := 0; i < len(tickers); i++ {
		for j := i + 1; j < len(tickers); j++ {
			r := Pearson(cols[i], cols[j])
			values[i][j] = r
			values[j][i] = r
		}
	}
	return &model.CorrelationMatrix{Tickers: tickers, Values: values}, nil
}

// Pearson returns the correlation coefficient of two equal-length series.
// It is undefined for mismatched or empty input and for zero-variance series.
func Pearson(x, y []float64) null.Float {
	n := len(x)
	if n == 0 || n != len(y) {
		return null.Float{}
	}
	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return null.Float{}
	}
	r := sxy / math.Sqrt(sxx*syy)
	return null.FloatFrom(math.Max(-1, math.Min(1, r)))
}
