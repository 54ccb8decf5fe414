package model

import (
	"fmt"
	"time"

	"github.com/guregu/null/v6"
)

// Names of the series produced by the calculators.
const (
	PerformanceName = "PERF"
)

// SMAName returns the tag of a simple moving average series, e.g. "SMA_50".
func SMAName(window int) string { return fmt.Sprintf("SMA_%d", window) }

// RSIName returns the tag of an RSI series, e.g. "RSI_14".
func RSIName(window int) string { return fmt.Sprintf("RSI_%d", window) }

// IndicatorSeries is a derived series aligned to a panel's dates.
// Positions without enough history hold an invalid null.Float.
type IndicatorSeries struct {
	Name   string       `json:"name"`
	Ticker string       `json:"ticker"`
	Window int          `json:"window,omitempty"`
	Dates  []time.Time  `json:"dates"`
	Values []null.Float `json:"values"`
}

// Len returns the number of positions in the series.
func (s *IndicatorSeries) Len() int { return len(s.Values) }

// Last returns the most recent value, which may be undefined.
func (s *IndicatorSeries) Last() null.Float {
	if len(s.Values) == 0 {
		return null.Float{}
	}
	return s.Values[len(s.Values)-1]
}

// FirstDefined returns the index of the first defined value, or -1.
func (s *IndicatorSeries) FirstDefined() int {
	for i, v := range s.Values {
		if v.Valid {
			return i
		}
	}
	return -1
}
