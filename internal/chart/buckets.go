package chart

import "stockscope/internal/model"

// Buckets counts how many rows fall into each price-movement category
// over a series. Rows with an undefined indicator do not count toward
// that indicator's buckets.
type Buckets struct {
	AboveSMA   int // close above its SMA20
	BelowSMA   int // close at or below its SMA20
	Overbought int // RSI14 above 70
	Oversold   int // RSI14 below 30
	NeutralRSI int // RSI14 within [30, 70]
}

// CountBuckets tallies the movement categories for a row series.
func CountBuckets(rows []model.IndicatorRow) Buckets {
	var b Buckets
	for _, row := range rows {
		if row.SMA20 != nil {
			if row.Close > *row.SMA20 {
				b.AboveSMA++
			} else {
				b.BelowSMA++
			}
		}
		if row.RSI14 != nil {
			switch {
			case *row.RSI14 > 70:
				b.Overbought++
			case *row.RSI14 < 30:
				b.Oversold++
			default:
				b.NeutralRSI++
			}
		}
	}
	return b
}

// Total is the sum over all buckets. Zero means no row had any
// indicator defined and no pie chart can be drawn.
func (b Buckets) Total() int {
	return b.AboveSMA + b.BelowSMA + b.Overbought + b.Oversold + b.NeutralRSI
}

// bucketSlices returns the display labels and counts, aligned.
func (b Buckets) bucketSlices() ([]string, []int) {
	labels := []string{
		"Above SMA",
		"Below SMA",
		"Overbought (RSI > 70)",
		"Oversold (RSI < 30)",
		"Neutral RSI",
	}
	counts := []int{b.AboveSMA, b.BelowSMA, b.Overbought, b.Oversold, b.NeutralRSI}
	return labels, counts
}
