package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// Field selects one column of a ticker series.
type Field string

const (
	FieldOpen     Field = "open"
	FieldHigh     Field = "high"
	FieldLow      Field = "low"
	FieldClose    Field = "close"
	FieldAdjClose Field = "adj_close"
	FieldVolume   Field = "volume"
)

// Value returns the bar's value for the given field.
func (b OHLCV) Value(f Field) (float64, bool) {
	switch f {
	case FieldOpen:
		return b.Open, true
	case FieldHigh:
		return b.High, true
	case FieldLow:
		return b.Low, true
	case FieldClose:
		return b.Close, true
	case FieldAdjClose:
		return b.AdjClose, true
	case FieldVolume:
		return float64(b.Volume), true
	default:
		return 0, false
	}
}

// TradingDay truncates t to its calendar day in UTC.
func TradingDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
