package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"

	"StockToolkit/internal/model"
)

// NormalizePerformance rebases every ticker's adjusted close to 100 at the first
// aligned date. Series are returned in panel ticker order.
func NormalizePerformance(p *model.PricePanel) ([]*model.IndicatorSeries, error) {
	if p == nil || p.Len() == 0 {
		return nil, model.ErrEmptyPanel
	}
	dates := p.Dates()
	out := make([]*model.IndicatorSeries, 0, len(p.Tickers()))
	for _, t := range p.Tickers() {
		adj, err := p.Column(t, model.FieldAdjClose)
		if err != nil {
			return nil, err
		}
		base := adj[0]
		if base == 0 {
			return nil, fmt.Errorf("%s on %s: %w", t, dates[0].Format("2006-01-02"), model.ErrZeroBaseline)
		}
		values := make([]null.Float, len(adj))
		values[0] = null.FloatFrom(100)
		for i := 1; i < len(adj); i++ {
			values[i] = null.FloatFrom(adj[i] / base * 100)
		}
		out = append(out, &model.IndicatorSeries{
			Name:   model.PerformanceName,
			Ticker: t,
			Dates:  dates,
			Values: values,
		})
	}
	return out, nil
}
