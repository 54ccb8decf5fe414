package strategy

import (
	"github.com/guregu/null/v6"

	"StockToolkit/internal/model"
)

// Conventional RSI thresholds.
const (
	Overbought = 70.0
	Oversold   = 30.0
)

// classifyRSI maps an RSI reading to its zone.
func classifyRSI(rsi null.Float) model.RSIZone {
	switch {
	case !rsi.Valid:
		return model.ZoneUnknown
	case rsi.Float64 > Overbought:
		return model.ZoneOverbought
	case rsi.Float64 < Oversold:
		return model.ZoneOversold
	default:
		return model.ZoneNeutral
	}
}

// classifyTrend compares the last close with the last value of every moving average.
func classifyTrend(lastClose float64, smas []*model.IndicatorSeries) model.Trend {
	above, below := 0, 0
	for _, s := range smas {
		v := s.Last()
		if !v.Valid {
			continue
		}
		if lastClose > v.Float64 {
			above++
		} else if lastClose < v.Float64 {
			below++
		}
	}
	switch {
	case above+below == 0:
		return model.TrendUnknown
	case below == 0:
		return model.TrendBullish
	case above == 0:
		return model.TrendBearish
	default:
		return model.TrendMixed
	}
}

// detectCrossover checks whether the shortest and longest moving averages crossed
// between the previous bar and the last one.
func detectCrossover(smas []*model.IndicatorSeries) model.Crossover {
	if len(smas) < 2 {
		return model.CrossNone
	}
	short, long := smas[0], smas[0]
	for _, s := range smas[1:] {
		if s.Window < short.Window {
			short = s
		}
		if s.Window > long.Window {
			long = s
		}
	}
	n := short.Len()
	if short == long || n < 2 || long.Len() != n {
		return model.CrossNone
	}
	ps, pl := short.Values[n-2], long.Values[n-2]
	cs, cl := short.Values[n-1], long.Values[n-1]
	if !ps.Valid || !pl.Valid || !cs.Valid || !cl.Valid {
		return model.CrossNone
	}
	switch {
	case ps.Float64 <= pl.Float64 && cs.Float64 > cl.Float64:
		return model.CrossGolden
	case ps.Float64 >= pl.Float64 && cs.Float64 < cl.Float64:
		return model.CrossDeath
	default:
		return model.CrossNone
	}
}

// Evaluate classifies a ticker's latest close, RSI and moving averages.
func Evaluate(ticker string, lastClose float64, rsi *model.IndicatorSeries, smas []*model.IndicatorSeries) model.TickerSignal {
	sig := model.TickerSignal{
		Ticker:    ticker,
		LastClose: lastClose,
		Zone:      model.ZoneUnknown,
		Trend:     classifyTrend(lastClose, smas),
		Crossover: detectCrossover(smas),
	}
	if rsi != nil {
		sig.RSI = rsi.Last()
		sig.Zone = classifyRSI(sig.RSI)
	}
	return sig
}
