package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PricePanel is an immutable set of ticker series aligned to one date sequence.
type PricePanel struct {
	tickers []string
	dates   []time.Time
	series  map[string][]OHLCV
}

// NormalizeTicker trims and upper-cases a ticker symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NewPricePanel validates that every series shares the same strictly increasing
// trading dates and copies the input.
func NewPricePanel(bars map[string][]OHLCV) (*PricePanel, error) {
	if len(bars) == 0 {
		return nil, ErrEmptyPanel
	}

	p := &PricePanel{series: make(map[string][]OHLCV, len(bars))}
	for raw, recs := range bars {
		ticker := NormalizeTicker(raw)
		if ticker == "" {
			return nil, fmt.Errorf("blank ticker symbol %q: %w", raw, ErrInvalidTicker)
		}
		if _, dup := p.series[ticker]; dup {
			return nil, fmt.Errorf("duplicate ticker %s after normalization: %w", ticker, ErrInvalidTicker)
		}
		cp := make([]OHLCV, len(recs))
		copy(cp, recs)
		p.series[ticker] = cp
		p.tickers = append(p.tickers, ticker)
	}
	sort.Strings(p.tickers)

	ref := p.series[p.tickers[0]]
	p.dates = make([]time.Time, len(ref))
	for i, b := range ref {
		p.dates[i] = TradingDay(b.Time)
		if i > 0 && !p.dates[i].After(p.dates[i-1]) {
			return nil, fmt.Errorf("%s: dates not strictly increasing at %s: %w",
				p.tickers[0], p.dates[i].Format("2006-01-02"), ErrMisaligned)
		}
	}

	for _, t := range p.tickers[1:] {
		recs := p.series[t]
		if len(recs) != len(p.dates) {
			return nil, fmt.Errorf("%s has %d dates, %s has %d: %w",
				t, len(recs), p.tickers[0], len(p.dates), ErrMisaligned)
		}
		for i, b := range recs {
			if !TradingDay(b.Time).Equal(p.dates[i]) {
				return nil, fmt.Errorf("%s: date %s differs from %s at index %d: %w",
					t, TradingDay(b.Time).Format("2006-01-02"), p.dates[i].Format("2006-01-02"), i, ErrMisaligned)
			}
		}
	}
	return p, nil
}

// Tickers returns the panel's symbols in sorted order.
func (p *PricePanel) Tickers() []string {
	out := make([]string, len(p.tickers))
	copy(out, p.tickers)
	return out
}

// Dates returns the shared trading date sequence.
func (p *PricePanel) Dates() []time.Time {
	out := make([]time.Time, len(p.dates))
	copy(out, p.dates)
	return out
}

// Len is the number of aligned trading dates.
func (p *PricePanel) Len() int { return len(p.dates) }

// Has reports whether ticker is in the panel.
func (p *PricePanel) Has(ticker string) bool {
	_, ok := p.series[NormalizeTicker(ticker)]
	return ok
}

// RequireHistory fails with ErrInsufficientHistory when the panel holds fewer than n dates.
func (p *PricePanel) RequireHistory(n int) error {
	if len(p.dates) < n {
		return fmt.Errorf("need %d dates, panel has %d: %w", n, len(p.dates), ErrInsufficientHistory)
	}
	return nil
}

// Records returns a copy of the ticker's bars.
func (p *PricePanel) Records(ticker string) ([]OHLCV, error) {
	recs, ok := p.series[NormalizeTicker(ticker)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticker, ErrUnknownTicker)
	}
	out := make([]OHLCV, len(recs))
	copy(out, recs)
	return out, nil
}

// Column extracts one field of a ticker as a slice aligned to Dates.
func (p *PricePanel) Column(ticker string, f Field) ([]float64, error) {
	if _, ok := (OHLCV{}).Value(f); !ok {
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownField)
	}
	recs, ok := p.series[NormalizeTicker(ticker)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticker, ErrUnknownTicker)
	}
	out := make([]float64, len(recs))
	for i, b := range recs {
		out[i], _ = b.Value(f)
	}
	return out, nil
}

// Closes is shorthand for Column(ticker, FieldClose).
func (p *PricePanel) Closes(ticker string) ([]float64, error) {
	return p.Column(ticker, FieldClose)
}
