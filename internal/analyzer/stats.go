package analyzer

import (
	"math"
	"time"

	"stockscope/internal/model"
)

// tradingDaysPerYear scales daily return deviation to an annual figure.
const tradingDaysPerYear = 252

// extremes returns the highest and lowest close over the series with
// the date of the earliest occurrence of each.
func extremes(series model.PriceSeries) (high float64, highDate time.Time, low float64, lowDate time.Time) {
	high, low = series[0].Close, series[0].Close
	highDate, lowDate = series[0].Date, series[0].Date
	for _, p := range series[1:] {
		if p.Close > high {
			high, highDate = p.Close, p.Date
		}
		if p.Close < low {
			low, lowDate = p.Close, p.Date
		}
	}
	return high, highDate, low, lowDate
}

// annualizedVolatility computes the population standard deviation of
// simple daily returns, scaled by sqrt(252) and expressed as a
// percentage. Fewer than two points yields 0.
func annualizedVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100
}

// priceChangePct measures the climb from the series trough to the
// current price, as a percentage. A single point yields 0.
func priceChangePct(current, lowest float64, points int) float64 {
	if points <= 1 {
		return 0
	}
	return (current - lowest) / lowest * 100
}

// classifyTrend compares the current price against the latest SMA.
// Undefined SMA or an exact match reads as neutral.
func classifyTrend(current float64, sma *float64) model.Trend {
	switch {
	case sma == nil:
		return model.TrendNeutral
	case current > *sma:
		return model.TrendBullish
	case current < *sma:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}

// classifyMomentum buckets the latest RSI reading.
func classifyMomentum(rsi *float64) model.Momentum {
	switch {
	case rsi == nil:
		return model.MomentumNeutral
	case *rsi > 70:
		return model.MomentumOverbought
	case *rsi < 30:
		return model.MomentumOversold
	default:
		return model.MomentumNeutral
	}
}
