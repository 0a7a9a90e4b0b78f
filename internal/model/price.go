package model

import "time"

// PricePoint is a single daily price observation.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is an ordered price history, chronological ascending with
// no duplicate dates. It is owned by a single analysis request.
type PriceSeries []PricePoint

// Closes extracts the closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// IndicatorRow is a PricePoint augmented with indicator values.
// A nil pointer means the indicator is undefined at that row because
// too little history precedes it; that is an expected state, not an
// error.
type IndicatorRow struct {
	PricePoint
	SMA20 *float64 `json:"sma20,omitempty"`
	RSI14 *float64 `json:"rsi14,omitempty"`
}
