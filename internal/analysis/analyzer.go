// Package analysis runs one analysis over a freshly built price panel and
// collects the derived series into a Report for rendering or export.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"StockToolkit/internal/calculator"
	"StockToolkit/internal/model"
	"StockToolkit/internal/strategy"
)

// PanelBuilder produces an aligned panel for a ticker list.
type PanelBuilder interface {
	BuildPanel(ctx context.Context, tickers []string, start, end time.Time) (*model.PricePanel, error)
}

// Analyzer orchestrates data retrieval and the calculators.
type Analyzer struct {
	Source PanelBuilder
	Logger *zap.Logger
	Now    func() time.Time
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(source PanelBuilder, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{Source: source, Logger: logger, Now: time.Now}
}

// Run fetches the panel once and performs the requested analysis.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Report, error) {
	req, err := req.withDefaults(a.Now())
	if err != nil {
		return nil, err
	}

	panel, err := a.Source.BuildPanel(ctx, req.Tickers, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("build panel: %w", err)
	}

	rep := &Report{
		Mode:      req.Mode,
		Start:     req.Start,
		End:       req.End,
		Tickers:   panel.Tickers(),
		Dates:     panel.Dates(),
		MAWindows: req.MAWindows,
		RSIWindow: req.RSIWindow,
	}

	switch req.Mode {
	case ModeFull:
		for _, t := range panel.Tickers() {
			ta, err := a.analyzeTicker(panel, t, req)
			if err != nil {
				return nil, err
			}
			rep.Analyses = append(rep.Analyses, ta)
		}
	case ModeCompare:
		perf, err := calculator.NormalizePerformance(panel)
		if err != nil {
			return nil, fmt.Errorf("performance: %w", err)
		}
		rep.Performance = perf
	case ModeCorr:
		m, err := calculator.ComputeCorrelation(panel)
		if err != nil {
			return nil, fmt.Errorf("correlation: %w", err)
		}
		rep.Correlation = m
	}

	a.Logger.Info("analysis complete",
		zap.String("mode", string(req.Mode)),
		zap.Strings("tickers", rep.Tickers),
		zap.Int("dates", len(rep.Dates)))
	return rep, nil
}

// analyzeTicker computes moving averages, RSI, ranges and the signal for one ticker.
// Windows longer than the panel are skipped with a warning instead of failing the run.
func (a *Analyzer) analyzeTicker(p *model.PricePanel, ticker string, req Request) (TickerAnalysis, error) {
	ta := TickerAnalysis{Ticker: ticker}

	closes, err := p.Closes(ticker)
	if err != nil {
		return ta, err
	}
	volume, err := p.Column(ticker, model.FieldVolume)
	if err != nil {
		return ta, err
	}
	ta.Close = closes
	ta.Volume = volume

	seen := make(map[int]bool, len(req.MAWindows))
	for _, w := range req.MAWindows {
		if seen[w] {
			continue
		}
		seen[w] = true
		s, err := calculator.ComputeSMA(p, ticker, w)
		if errors.Is(err, model.ErrInsufficientHistory) {
			ta.Warnings = append(ta.Warnings, a.skip(ticker, model.SMAName(w), err))
			continue
		}
		if err != nil {
			return ta, err
		}
		ta.MovingAverages = append(ta.MovingAverages, s)
	}

	rsi, err := calculator.ComputeRSI(p, ticker, req.RSIWindow)
	switch {
	case errors.Is(err, model.ErrInsufficientHistory):
		ta.Warnings = append(ta.Warnings, a.skip(ticker, model.RSIName(req.RSIWindow), err))
	case err != nil:
		return ta, err
	default:
		ta.RSI = rsi
	}

	if p.Len() > 0 {
		if ta.Range52w, err = calculator.PriceRange(p, ticker, calculator.Days52Week); err != nil {
			return ta, err
		}
		if ta.Range30d, err = calculator.PriceRange(p, ticker, calculator.Days30Day); err != nil {
			return ta, err
		}
		ta.Signal = strategy.Evaluate(ticker, closes[len(closes)-1], ta.RSI, ta.MovingAverages)
	}
	return ta, nil
}

func (a *Analyzer) skip(ticker, name string, err error) string {
	a.Logger.Warn("skipping indicator", zap.String("ticker", ticker), zap.String("indicator", name), zap.Error(err))
	return fmt.Sprintf("%s skipped: %v", name, err)
}
