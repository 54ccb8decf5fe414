package notifier

import (
	"fmt"
	"sort"
	"strings"

	"StockToolkit/internal/analysis"
)

// Title returns a one-line heading for a report.
func Title(rep *analysis.Report) string {
	var kind string
	switch rep.Mode {
	case analysis.ModeCompare:
		kind = "Performance Comparison (normalized to 100)"
	case analysis.ModeCorr:
		kind = "Correlation Matrix"
	default:
		kind = "Full Analysis"
	}
	return fmt.Sprintf("%s | %s to %s", kind, rep.Start.Format("2006-01-02"), rep.End.Format("2006-01-02"))
}

// FormatReport renders the section of the report matching its mode.
func FormatReport(rep *analysis.Report) string {
	switch rep.Mode {
	case analysis.ModeCompare:
		return FormatPerformance(rep)
	case analysis.ModeCorr:
		return FormatCorrelation(rep)
	default:
		return FormatFull(rep)
	}
}

// FormatFull summarizes the latest indicator values of every ticker.
func FormatFull(rep *analysis.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tickers: %s | %d sessions\n", strings.Join(rep.Tickers, ", "), len(rep.Dates)))
	for _, ta := range rep.Analyses {
		b.WriteString(fmt.Sprintf("\n%s\n", ta.Ticker))
		if n := len(ta.Close); n > 0 {
			b.WriteString(fmt.Sprintf("  Close: %.2f | Volume: %.0f\n", ta.Close[n-1], ta.Volume[n-1]))
		}
		for _, ma := range ta.MovingAverages {
			if v := ma.Last(); v.Valid {
				b.WriteString(fmt.Sprintf("  %s: %.2f\n", ma.Name, v.Float64))
			} else {
				b.WriteString(fmt.Sprintf("  %s: n/a\n", ma.Name))
			}
		}
		if ta.RSI != nil {
			if v := ta.RSI.Last(); v.Valid {
				b.WriteString(fmt.Sprintf("  %s: %.1f (%s)\n", ta.RSI.Name, v.Float64, ta.Signal.Zone))
			}
		}
		b.WriteString(fmt.Sprintf("  52w range: %.2f - %.2f (position %.0f%%)\n",
			ta.Range52w.Low, ta.Range52w.High, ta.Range52w.Position*100))
		b.WriteString(fmt.Sprintf("  Trend: %s", ta.Signal.Trend))
		if ta.Signal.Crossover != "" {
			b.WriteString(fmt.Sprintf(" | %s", ta.Signal.Crossover))
		}
		b.WriteString("\n")
		for _, w := range ta.Warnings {
			b.WriteString(fmt.Sprintf("  Warning: %s\n", w))
		}
	}
	return b.String()
}

// FormatPerformance lists each ticker's final normalized value, best first.
func FormatPerformance(rep *analysis.Report) string {
	type row struct {
		ticker string
		value  float64
	}
	rows := make([]row, 0, len(rep.Performance))
	for _, s := range rep.Performance {
		if v := s.Last(); v.Valid {
			rows = append(rows, row{s.Ticker, v.Float64})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].value > rows[j].value })

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-8s %8.2f  (%+.1f%%)\n", r.ticker, r.value, r.value-100))
	}
	return b.String()
}

// FormatCorrelation prints the matrix followed by the strongest pairs.
func FormatCorrelation(rep *analysis.Report) string {
	m := rep.Correlation
	if m == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-8s", ""))
	for _, t := range m.Tickers {
		b.WriteString(fmt.Sprintf("%8s", t))
	}
	b.WriteString("\n")
	for i, t := range m.Tickers {
		b.WriteString(fmt.Sprintf("%-8s", t))
		for j := range m.Tickers {
			if v := m.Values[i][j]; v.Valid {
				b.WriteString(fmt.Sprintf("%8.2f", v.Float64))
			} else {
				b.WriteString(fmt.Sprintf("%8s", "n/a"))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\nStrongest pairs:\n")
	for _, p := range m.Pairs() {
		if !p.Value.Valid {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s / %s: %+.2f\n", p.A, p.B, p.Value.Float64))
	}
	return b.String()
}
