package analysis

import (
	"encoding/json"
	"io"
	"time"

	"StockToolkit/internal/model"
)

// TickerAnalysis is the full per-ticker result: price and volume columns,
// moving averages, RSI, trailing ranges and the derived signal.
type TickerAnalysis struct {
	Ticker         string                   `json:"ticker"`
	Close          []float64                `json:"close"`
	Volume         []float64                `json:"volume"`
	MovingAverages []*model.IndicatorSeries `json:"moving_averages"`
	RSI            *model.IndicatorSeries   `json:"rsi,omitempty"`
	Range52w       model.PriceRange         `json:"range_52w"`
	Range30d       model.PriceRange         `json:"range_30d"`
	Signal         model.TickerSignal       `json:"signal"`
	Warnings       []string                 `json:"warnings,omitempty"`
}

// Report is the output of one run. Only the section matching Mode is set.
type Report struct {
	Mode      Mode        `json:"mode"`
	Start     time.Time   `json:"start"`
	End       time.Time   `json:"end"`
	Tickers   []string    `json:"tickers"`
	Dates     []time.Time `json:"dates"`
	MAWindows []int       `json:"ma_windows,omitempty"`
	RSIWindow int         `json:"rsi_window,omitempty"`

	Analyses    []TickerAnalysis         `json:"analyses,omitempty"`
	Performance []*model.IndicatorSeries `json:"performance,omitempty"`
	Correlation *model.CorrelationMatrix `json:"correlation,omitempty"`
}

// WriteJSON writes the report as indented JSON; undefined values encode as null.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
