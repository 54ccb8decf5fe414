package analysis

import (
	"fmt"
	"time"

	"StockToolkit/internal/calculator"
	"StockToolkit/internal/model"
)

// Mode selects which analysis a run performs.
type Mode string

const (
	ModeFull    Mode = "full"
	ModeCompare Mode = "compare"
	ModeCorr    Mode = "corr"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeFull, ModeCompare, ModeCorr:
		return m, nil
	default:
		return "", fmt.Errorf("unknown analysis %q (want full, compare or corr)", s)
	}
}

// Default parameters of a run.
var (
	DefaultMAWindows = []int{50, 200}
	DefaultLookback  = 365 * 24 * time.Hour
)

// Request holds the already-parsed parameters of one analysis run.
type Request struct {
	Tickers   []string
	Start     time.Time
	End       time.Time
	Mode      Mode
	MAWindows []int
	RSIWindow int
}

// withDefaults fills zero fields and checks the rest.
func (r Request) withDefaults(now time.Time) (Request, error) {
	if r.Mode == "" {
		r.Mode = ModeFull
	}
	if _, err := ParseMode(string(r.Mode)); err != nil {
		return r, err
	}
	if r.End.IsZero() {
		r.End = now
	}
	if r.Start.IsZero() {
		r.Start = r.End.Add(-DefaultLookback)
	}
	if !r.Start.Before(r.End) {
		return r, fmt.Errorf("start %s is not before end %s",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	if len(r.MAWindows) == 0 {
		r.MAWindows = append([]int(nil), DefaultMAWindows...)
	}
	for _, w := range r.MAWindows {
		if w <= 0 {
			return r, fmt.Errorf("moving average window %d: %w", w, model.ErrInvalidWindow)
		}
	}
	if r.RSIWindow == 0 {
		r.RSIWindow = calculator.DefaultRSIWindow
	}
	if r.RSIWindow < 0 {
		return r, fmt.Errorf("rsi window %d: %w", r.RSIWindow, model.ErrInvalidWindow)
	}
	return r, nil
}
