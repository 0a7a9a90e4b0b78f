package analyzer

import (
	"fmt"
	"math"
	"strings"

	"stockscope/internal/model"
)

// The narrative is a pure templating function of the computed report
// values. Wording thresholds live in small tables so they can be tuned
// and tested without touching the prose assembly.

// band labels a value below its upper bound.
type band struct {
	upTo  float64
	label string
}

func classifyBand(v float64, bands []band) string {
	for _, b := range bands {
		if v < b.upTo {
			return b.label
		}
	}
	return bands[len(bands)-1].label
}

var volatilityBands = []band{
	{20, "stable"},
	{40, "moderate"},
	{math.MaxFloat64, "high"},
}

// surgeThresholdPct is the trough-to-current climb beyond which the
// narrative treats the stock as extended.
const surgeThresholdPct = 20

// momentumRemark maps the RSI bucket to the short-term strategy remark.
var momentumRemark = map[model.Momentum]string{
	model.MomentumOverbought: "Overbought (caution).",
	model.MomentumOversold:   "Oversold (opportunity).",
	model.MomentumNeutral:    "Neutral momentum.",
}

// momentumRiskRemark maps the RSI bucket to the short-term risk remark.
// Neutral adds nothing.
var momentumRiskRemark = map[model.Momentum]string{
	model.MomentumOverbought: "Overbought RSI risks pullback.",
	model.MomentumOversold:   "Oversold RSI may reverse.",
	model.MomentumNeutral:    "",
}

// longTermRiskLevel depends only on how far back the analysis looks.
func longTermRiskLevel(tf model.Timeframe) string {
	if tf == model.Timeframe5Y || tf == model.TimeframeMax {
		return "low to moderate"
	}
	return "moderate"
}

// renderSections produces every narrative block of the report from its
// computed numeric fields. points is the series length; the 1-day
// timeframe degrades to fixed not-applicable text because one day of
// lookback cannot support SMA or RSI.
func renderSections(r *model.AnalysisReport, points int) model.NarrativeSections {
	var s model.NarrativeSections

	if r.Timeframe == model.Timeframe1D && points < 14 {
		s.SMAStatus = "SMA not available (insufficient data)."
		s.RSIStatus = "RSI not available (insufficient data)."
	} else {
		s.SMAStatus = fmt.Sprintf("20-day SMA: %s, indicating a %s trend.",
			formatOptionalPrice(r.LatestSMA20), r.Trend)
		s.RSIStatus = fmt.Sprintf("RSI (14-Day): %s", formatOptionalValue(r.LatestRSI14))
	}

	if r.Timeframe == model.Timeframe1D {
		s.LongTermStrategy = "Long-term analysis not applicable for 1-day timeframe."
		s.ShortTermStrategy = fmt.Sprintf(
			"Short-term (%s): Limited data for strategy; monitor intraday price at $%.2f.",
			r.Timeframe, r.CurrentPrice)
		s.LongTermRisk = "Risk analysis not applicable for 1-day timeframe."
		s.ShortTermRisk = fmt.Sprintf(
			"Short-term risk: High due to limited data; use tight stop-loss at $%.2f.",
			r.CurrentPrice*0.95)
		s.Recommendation = fmt.Sprintf(
			"Monitor %s closely; insufficient data for robust recommendation.", r.Ticker)
		return s
	}

	s.LongTermStrategy = strings.Join([]string{
		fmt.Sprintf("For a %s horizon, %s's outlook depends on fundamentals.", r.Timeframe, r.Ticker),
		fmt.Sprintf("Current price: $%.2f, high: $%.2f on %s, low: $%.2f on %s.",
			r.CurrentPrice,
			r.HighestClose, r.HighestDate.Format("2006-01-02"),
			r.LowestClose, r.LowestDate.Format("2006-01-02")),
		s.SMAStatus,
		fmt.Sprintf("Accumulate on pullbacks to $%.2f if above long-term averages.", r.CurrentPrice*0.9),
		"Monitor macro factors like interest rates.",
	}, "\n")

	s.ShortTermStrategy = strings.Join([]string{
		fmt.Sprintf("Short-term (%s), %s shows a %s trend with %s.",
			r.Timeframe, r.Ticker, r.Trend, strings.ToLower(s.RSIStatus)),
		momentumRemark[r.Momentum],
		fmt.Sprintf("Target entries near $%.2f, stop-loss at $%.2f.", r.CurrentPrice*0.95, r.LowestClose),
		fmt.Sprintf("Breakout above $%.2f may signal a rally to $%.2f.", r.HighestClose, r.CurrentPrice*1.1),
	}, "\n")

	s.LongTermRisk = strings.Join([]string{
		fmt.Sprintf("Long-term risk for %s is %s.", r.Ticker, longTermRiskLevel(r.Timeframe)),
		fmt.Sprintf("Volatility: %.2f%% (%s).", r.Volatility, classifyBand(r.Volatility, volatilityBands)),
		"Risks: macro shifts, earnings misses. Diversify to mitigate.",
	}, "\n")

	extended := r.PriceChangePct > surgeThresholdPct
	shortRiskLevel := "moderate"
	if extended || r.Volatility > 40 {
		shortRiskLevel = "high"
	}
	riskLines := []string{
		fmt.Sprintf("Short-term risk is %s (volatility: %.2f%%).", shortRiskLevel, r.Volatility),
	}
	if remark := momentumRiskRemark[r.Momentum]; remark != "" {
		riskLines = append(riskLines, remark)
	}
	riskLines = append(riskLines, "Monitor news, use stop-loss.")
	s.ShortTermRisk = strings.Join(riskLines, "\n")

	action := "Buy or accumulate"
	if extended && (r.LatestRSI14 == nil || *r.LatestRSI14 > 70) {
		action = "Sell or take profits"
	}
	positioning := "Bullish near supports."
	if extended {
		positioning = "Caution near highs."
	}
	s.Recommendation = strings.Join([]string{
		fmt.Sprintf("%s %s.", action, r.Ticker),
		positioning,
		"Align with portfolio goals.",
	}, "\n")

	return s
}

func formatOptionalPrice(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func formatOptionalValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
