// Package store caches fetched daily bars so repeated runs over the same
// period do not hit the upstream provider. Computed results are never stored.
package store

import (
	"time"

	"StockToolkit/internal/model"
)

// BarCache persists raw daily bars per symbol.
type BarCache interface {
	// Load returns cached bars in [start, end) and whether a fresh fetch covering
	// that range was recorded.
	Load(symbol string, start, end time.Time) ([]model.OHLCV, bool, error)
	// Save stores bars fetched for [start, end).
	Save(symbol string, start, end time.Time, bars []model.OHLCV) error
	Close() error
}

// NoopCache is used when no cache path is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Load(_ string, _, _ time.Time) ([]model.OHLCV, bool, error) {
	return nil, false, nil
}
func (n *NoopCache) Save(_ string, _, _ time.Time, _ []model.OHLCV) error { return nil }
func (n *NoopCache) Close() error                                        { return nil }
