package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/guregu/null/v6"
)

// CorrelationMatrix is a symmetric ticker-by-ticker table of Pearson coefficients.
// Diagonal entries are 1. A cell is undefined when either series has zero variance.
type CorrelationMatrix struct {
	Tickers []string       `json:"tickers"`
	Values  [][]null.Float `json:"values"`
}

// PairCorrelation is one off-diagonal entry.
type PairCorrelation struct {
	A, B  string
	Value null.Float
}

func (m *CorrelationMatrix) index(ticker string) (int, error) {
	t := NormalizeTicker(ticker)
	for i, s := range m.Tickers {
		if s == t {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s: %w", ticker, ErrUnknownTicker)
}

// At returns the coefficient for a ticker pair.
func (m *CorrelationMatrix) At(a, b string) (null.Float, error) {
	i, err := m.index(a)
	if err != nil {
		return null.Float{}, err
	}
	j, err := m.index(b)
	if err != nil {
		return null.Float{}, err
	}
	return m.Values[i][j], nil
}

// Pairs lists the upper triangle, strongest absolute correlation first.
// Undefined pairs sort last.
func (m *CorrelationMatrix) Pairs() []PairCorrelation {
	var out []PairCorrelation
	for i := 0; i < len(m.Tickers); i++ {
		for j := i + 1; j < len(m.Tickers); j++ {
			out = append(out, PairCorrelation{A: m.Tickers[i], B: m.Tickers[j], Value: m.Values[i][j]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := out[i].Value, out[j].Value
		if vi.Valid != vj.Valid {
			return vi.Valid
		}
		return math.Abs(vi.Float64) > math.Abs(vj.Float64)
	})
	return out
}
