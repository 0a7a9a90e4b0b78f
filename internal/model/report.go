package model

import (
	"fmt"
	"strings"
	"time"
)

// Trend classifies the current price against the latest 20-day SMA.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Momentum classifies the latest 14-day RSI reading.
type Momentum string

const (
	MomentumOverbought Momentum = "overbought"
	MomentumOversold   Momentum = "oversold"
	MomentumNeutral    Momentum = "neutral"
)

// NarrativeSections holds the templated prose blocks of a report.
type NarrativeSections struct {
	SMAStatus         string
	RSIStatus         string
	LongTermStrategy  string
	ShortTermStrategy string
	LongTermRisk      string
	ShortTermRisk     string
	Recommendation    string
}

// AnalysisReport is the read-only result of one analysis request.
type AnalysisReport struct {
	Ticker    string
	Timeframe Timeframe

	CurrentPrice float64
	HighestClose float64
	HighestDate  time.Time
	LowestClose  float64
	LowestDate   time.Time

	Trend          Trend
	Momentum       Momentum
	LatestSMA20    *float64
	LatestRSI14    *float64
	Volatility     float64 // annualized, percent
	PriceChangePct float64 // trough to current, percent

	Sections NarrativeSections
}

// Summary renders the full report text in the order the front ends
// display it.
func (r *AnalysisReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock Analysis for %s (%s)\n", r.Ticker, r.Timeframe)
	fmt.Fprintf(&b, "Current Price: $%.2f\n", r.CurrentPrice)
	fmt.Fprintf(&b, "Highest Peak: $%.2f on %s\n", r.HighestClose, r.HighestDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Lowest Peak: $%.2f on %s\n", r.LowestClose, r.LowestDate.Format("2006-01-02"))
	b.WriteString(r.Sections.SMAStatus + "\n")
	b.WriteString(r.Sections.RSIStatus + "\n")
	b.WriteString("Long-term Strategy:\n" + r.Sections.LongTermStrategy + "\n")
	b.WriteString("Short-term Strategy:\n" + r.Sections.ShortTermStrategy + "\n")
	b.WriteString("Long-term Risk Analysis:\n" + r.Sections.LongTermRisk + "\n")
	b.WriteString("Short-term Risk Analysis:\n" + r.Sections.ShortTermRisk + "\n")
	b.WriteString("Recommendation:\n" + r.Sections.Recommendation + "\n")
	return b.String()
}
