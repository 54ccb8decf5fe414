package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func dailyBars(start time.Time, closes ...float64) []OHLCV {
	bars := make([]OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = OHLCV{
			Time:     start.AddDate(0, 0, i),
			Open:     c,
			High:     c,
			Low:      c,
			Close:    c,
			AdjClose: c * 0.98,
			Volume:   int64(100 * (i + 1)),
		}
	}
	return bars
}

var day0 = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func TestNewPricePanel(t *testing.T) {
	p, err := NewPricePanel(map[string][]OHLCV{
		" msft": dailyBars(day0, 1, 2, 3),
		"AAPL":  dailyBars(day0.Add(15*time.Hour), 4, 5, 6),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"AAPL", "MSFT"}, p.Tickers())
	require.Equal(t, 3, p.Len())
	require.True(t, p.Has("msft"))
	require.False(t, p.Has("GOOG"))
	require.Equal(t, day0, p.Dates()[0])

	closes, err := p.Closes("aapl")
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, closes)

	vol, err := p.Column("MSFT", FieldVolume)
	require.NoError(t, err)
	require.Equal(t, []float64{100, 200, 300}, vol)

	adj, err := p.Column("MSFT", FieldAdjClose)
	require.NoError(t, err)
	require.InDelta(t, 2.94, adj[2], 1e-12)
}

func TestNewPricePanel_Immutable(t *testing.T) {
	bars := dailyBars(day0, 1, 2, 3)
	p, err := NewPricePanel(map[string][]OHLCV{"AAPL": bars})
	require.NoError(t, err)

	bars[0].Close = 999
	closes, err := p.Closes("AAPL")
	require.NoError(t, err)
	require.Equal(t, 1.0, closes[0])

	closes[1] = 999
	again, _ := p.Closes("AAPL")
	require.Equal(t, 2.0, again[1])

	dates := p.Dates()
	dates[0] = time.Time{}
	require.Equal(t, day0, p.Dates()[0])
}

func TestNewPricePanel_Errors(t *testing.T) {
	_, err := NewPricePanel(nil)
	require.ErrorIs(t, err, ErrEmptyPanel)

	_, err = NewPricePanel(map[string][]OHLCV{
		"AAPL": dailyBars(day0, 1, 2, 3),
		"MSFT": dailyBars(day0, 1, 2),
	})
	require.ErrorIs(t, err, ErrMisaligned)

	_, err = NewPricePanel(map[string][]OHLCV{
		"AAPL": dailyBars(day0, 1, 2, 3),
		"MSFT": dailyBars(day0.AddDate(0, 0, 1), 1, 2, 3),
	})
	require.ErrorIs(t, err, ErrMisaligned)

	unordered := dailyBars(day0, 1, 2, 3)
	unordered[2].Time = day0
	_, err = NewPricePanel(map[string][]OHLCV{"AAPL": unordered})
	require.ErrorIs(t, err, ErrMisaligned)

	_, err = NewPricePanel(map[string][]OHLCV{
		"aapl": dailyBars(day0, 1),
		"AAPL": dailyBars(day0, 1),
	})
	require.ErrorIs(t, err, ErrInvalidTicker)
	require.NotErrorIs(t, err, ErrMisaligned)

	_, err = NewPricePanel(map[string][]OHLCV{"  ": dailyBars(day0, 1)})
	require.ErrorIs(t, err, ErrInvalidTicker)
	require.NotErrorIs(t, err, ErrMisaligned)
}

func TestPricePanel_Lookups(t *testing.T) {
	p, err := NewPricePanel(map[string][]OHLCV{"AAPL": dailyBars(day0, 1, 2, 3)})
	require.NoError(t, err)

	_, err = p.Column("GOOG", FieldClose)
	require.ErrorIs(t, err, ErrUnknownTicker)

	_, err = p.Column("AAPL", Field("vwap"))
	require.ErrorIs(t, err, ErrUnknownField)

	require.NoError(t, p.RequireHistory(3))
	err = p.RequireHistory(4)
	require.ErrorIs(t, err, ErrInsufficientHistory)
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestIndicatorSeries_Accessors(t *testing.T) {
	s := &IndicatorSeries{Name: SMAName(50)}
	require.Equal(t, "SMA_50", s.Name)
	require.False(t, s.Last().Valid)
	require.Equal(t, -1, s.FirstDefined())
	require.Equal(t, "RSI_14", RSIName(14))
}
