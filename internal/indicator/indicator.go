// Package indicator computes windowed technical indicators over a price
// series. Every function is pure: output slices are aligned one-to-one
// with the input and a nil entry marks a row with too little preceding
// history. Short input never produces an error, only nil entries.
package indicator

import "stockscope/internal/model"

const (
	// SMAWindow is the simple-moving-average window used system-wide.
	SMAWindow = 20
	// RSIWindow is the relative-strength-index window used system-wide.
	RSIWindow = 14
)

// SMA returns the simple moving average of closes over the given
// window. The value at index i is defined only when i >= window-1 and
// equals the arithmetic mean of closes[i-window+1 .. i].
func SMA(closes []float64, window int) []*float64 {
	out := make([]*float64, len(closes))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += closes[j]
		}
		v := sum / float64(window)
		out[i] = &v
	}
	return out
}

// RSI returns the relative strength index of closes over the given
// window. The value at index i is defined only when i >= window, since
// window deltas need window+1 closes. Gains and losses are simple means
// over the window, not Wilder-smoothed.
//
// When the window holds no losses the RSI is 100. That includes the
// degenerate flat-price window where gains are also zero; the all-gains
// branch covers it rather than a division guard, so flat prices read as
// maximal strength. Kept as-is because downstream text depends on it.
func RSI(closes []float64, window int) []*float64 {
	out := make([]*float64, len(closes))
	if window <= 0 {
		return out
	}
	for i := window; i < len(closes); i++ {
		var gainSum, lossSum float64
		for j := i - window + 1; j <= i; j++ {
			delta := closes[j] - closes[j-1]
			if delta > 0 {
				gainSum += delta
			} else {
				lossSum -= delta
			}
		}
		avgGain := gainSum / float64(window)
		avgLoss := lossSum / float64(window)

		var rsi float64
		if avgLoss == 0 {
			rsi = 100
		} else {
			rs := avgGain / avgLoss
			rsi = 100 - 100/(1+rs)
		}
		out[i] = &rsi
	}
	return out
}

// Enrich pairs every price point with its SMA20 and RSI14 values.
func Enrich(series model.PriceSeries) []model.IndicatorRow {
	closes := series.Closes()
	sma := SMA(closes, SMAWindow)
	rsi := RSI(closes, RSIWindow)

	rows := make([]model.IndicatorRow, len(series))
	for i, p := range series {
		rows[i] = model.IndicatorRow{PricePoint: p, SMA20: sma[i], RSI14: rsi[i]}
	}
	return rows
}
