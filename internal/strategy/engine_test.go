package strategy

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/guregu/null/v6"

	"StockToolkit/internal/model"
)

func series(name string, window int, vals ...float64) *model.IndicatorSeries {
	s := &model.IndicatorSeries{Name: name, Window: window}
	for _, v := range vals {
		if v < 0 {
			s.Values = append(s.Values, null.Float{})
			continue
		}
		s.Values = append(s.Values, null.FloatFrom(v))
	}
	return s
}

func TestClassifyRSI_AllBoundaries(t *testing.T) {
	tests := []struct {
		rsi  null.Float
		zone model.RSIZone
	}{
		{null.FloatFrom(100), model.ZoneOverbought},
		{null.FloatFrom(70.01), model.ZoneOverbought},
		{null.FloatFrom(70), model.ZoneNeutral},
		{null.FloatFrom(50), model.ZoneNeutral},
		{null.FloatFrom(30), model.ZoneNeutral},
		{null.FloatFrom(29.99), model.ZoneOversold},
		{null.FloatFrom(0), model.ZoneOversold},
		{null.Float{}, model.ZoneUnknown},
	}
	for _, tt := range tests {
		if got := classifyRSI(tt.rsi); got != tt.zone {
			t.Errorf("rsi %v: expected %q, got %q", tt.rsi, tt.zone, got)
		}
	}
}

func TestEvaluate_BullishTrend(t *testing.T) {
	smas := []*model.IndicatorSeries{
		series("SMA_50", 50, 95, 96),
		series("SMA_200", 200, 90, 91),
	}
	sig := Evaluate("AAPL", 100, series("RSI_14", 14, 60, 75), smas)
	if sig.Trend != model.TrendBullish {
		t.Errorf("expected bullish trend, got %s", sig.Trend)
	}
	if sig.Zone != model.ZoneOverbought {
		t.Errorf("expected overbought, got %s", sig.Zone)
	}
	if !sig.RSI.Valid || sig.RSI.Float64 != 75 {
		t.Errorf("expected rsi 75, got %v", sig.RSI)
	}
	if sig.Crossover != model.CrossNone {
		t.Errorf("unexpected crossover %s", sig.Crossover)
	}
}

func TestEvaluate_BearishAndMixed(t *testing.T) {
	smas := []*model.IndicatorSeries{
		series("SMA_50", 50, 105),
		series("SMA_200", 200, 110),
	}
	if sig := Evaluate("X", 100, nil, smas); sig.Trend != model.TrendBearish || sig.Zone != model.ZoneUnknown {
		t.Errorf("expected bearish/unknown, got %s/%s", sig.Trend, sig.Zone)
	}

	smas[1] = series("SMA_200", 200, 90)
	if sig := Evaluate("X", 100, nil, smas); sig.Trend != model.TrendMixed {
		t.Errorf("expected mixed, got %s", sig.Trend)
	}

	undefined := []*model.IndicatorSeries{series("SMA_200", 200, -1)}
	if sig := Evaluate("X", 100, nil, undefined); sig.Trend != model.TrendUnknown {
		t.Errorf("expected unknown trend, got %s", sig.Trend)
	}
}

func TestDetectCrossover(t *testing.T) {
	golden := []*model.IndicatorSeries{
		series("SMA_200", 200, 100, 100),
		series("SMA_50", 50, 99, 101),
	}
	if got := detectCrossover(golden); got != model.CrossGolden {
		t.Errorf("expected golden cross, got %q", got)
	}

	death := []*model.IndicatorSeries{
		series("SMA_50", 50, 101, 99),
		series("SMA_200", 200, 100, 100),
	}
	if got := detectCrossover(death); got != model.CrossDeath {
		t.Errorf("expected death cross, got %q", got)
	}

	warmup := []*model.IndicatorSeries{
		series("SMA_50", 50, 101, 99),
		series("SMA_200", 200, -1, 100),
	}
	if got := detectCrossover(warmup); got != model.CrossNone {
		t.Errorf("expected no cross during warmup, got %q", got)
	}

	if got := detectCrossover(death[:1]); got != model.CrossNone {
		t.Errorf("expected no cross with one average, got %q", got)
	}
}

func TestEvaluate_ZeroRSIKept(t *testing.T) {
	sig := Evaluate("X", 90, series("RSI_3", 3, -1, 0), nil)
	if sig.Zone != model.ZoneOversold {
		t.Errorf("expected oversold, got %s", sig.Zone)
	}
	b, err := json.Marshal(sig)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"rsi":0`) {
		t.Errorf("zero rsi missing from %s", b)
	}

	b, err = json.Marshal(Evaluate("X", 90, nil, nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"rsi":null`) {
		t.Errorf("undefined rsi should encode as null: %s", b)
	}
}
