package analyzer

import (
	"math"
	"testing"

	"stockscope/internal/model"
)

func TestExtremesEarliestOccurrenceWins(t *testing.T) {
	series := seriesFromCloses([]float64{5, 9, 3, 9, 3, 7})
	high, highDate, low, lowDate := extremes(series)

	if high != 9 || low != 3 {
		t.Fatalf("extremes (%v, %v), want (9, 3)", high, low)
	}
	if !highDate.Equal(series[1].Date) {
		t.Errorf("highest date %v, want first 9 at %v", highDate, series[1].Date)
	}
	if !lowDate.Equal(series[2].Date) {
		t.Errorf("lowest date %v, want first 3 at %v", lowDate, series[2].Date)
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	if v := annualizedVolatility([]float64{100}); v != 0 {
		t.Errorf("volatility of one point = %v, want 0", v)
	}
	if v := annualizedVolatility([]float64{100, 100, 100}); v != 0 {
		t.Errorf("volatility of flat closes = %v, want 0", v)
	}

	// Returns +10%, -10%: population stddev 0.1, annualized 0.1*sqrt(252)*100.
	closes := []float64{100, 110, 99}
	got := annualizedVolatility(closes)
	want := 0.1 * math.Sqrt(252) * 100
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("volatility = %v, want %v", got, want)
	}
}

func TestPriceChangePct(t *testing.T) {
	if got := priceChangePct(42, 42, 1); got != 0 {
		t.Errorf("single point change = %v, want 0", got)
	}
	if got := priceChangePct(120, 100, 30); got != 20 {
		t.Errorf("change = %v, want 20", got)
	}
}

func TestClassifyTrend(t *testing.T) {
	sma := 100.0
	tests := []struct {
		price float64
		sma   *float64
		want  model.Trend
	}{
		{101, &sma, model.TrendBullish},
		{99, &sma, model.TrendBearish},
		{100, &sma, model.TrendNeutral},
		{1000, nil, model.TrendNeutral},
	}
	for _, tt := range tests {
		if got := classifyTrend(tt.price, tt.sma); got != tt.want {
			t.Errorf("classifyTrend(%v) = %s, want %s", tt.price, got, tt.want)
		}
	}
}

func TestClassifyMomentum(t *testing.T) {
	tests := []struct {
		rsi  *float64
		want model.Momentum
	}{
		{ptr(71), model.MomentumOverbought},
		{ptr(70), model.MomentumNeutral},
		{ptr(30), model.MomentumNeutral},
		{ptr(29), model.MomentumOversold},
		{nil, model.MomentumNeutral},
	}
	for _, tt := range tests {
		if got := classifyMomentum(tt.rsi); got != tt.want {
			t.Errorf("classifyMomentum(%v) = %s, want %s", tt.rsi, got, tt.want)
		}
	}
}
