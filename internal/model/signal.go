package model

import "github.com/guregu/null/v6"

// RSIZone classifies the latest RSI reading.
type RSIZone string

const (
	ZoneOverbought RSIZone = "OVERBOUGHT"
	ZoneOversold   RSIZone = "OVERSOLD"
	ZoneNeutral    RSIZone = "NEUTRAL"
	ZoneUnknown    RSIZone = "UNKNOWN"
)

// Trend describes where the last close sits relative to its moving averages.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	TrendMixed   Trend = "MIXED"
	TrendUnknown Trend = "UNKNOWN"
)

// Crossover reports a short/long moving average cross on the last bar.
type Crossover string

const (
	CrossNone   Crossover = ""
	CrossGolden Crossover = "GOLDEN_CROSS"
	CrossDeath  Crossover = "DEATH_CROSS"
)

// TickerSignal is the classification of one ticker's latest indicators.
type TickerSignal struct {
	Ticker    string     `json:"ticker"`
	LastClose float64    `json:"last_close"`
	RSI       null.Float `json:"rsi"`
	Zone      RSIZone    `json:"zone"`
	Trend     Trend      `json:"trend"`
	Crossover Crossover  `json:"crossover,omitempty"`
}

// PriceRange holds the trailing high/low and where the last close sits in it (0.0 ~ 1.0).
type PriceRange struct {
	Days     int     `json:"days"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Position float64 `json:"position"`
}
