package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"stockscope/internal/dataflows"
	"stockscope/internal/model"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func seriesFromCloses(closes []float64) model.PriceSeries {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.PriceSeries, len(closes))
	for i, c := range closes {
		s[i] = model.PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 5000,
		}
	}
	return s
}

func increasingSeries(n int) model.PriceSeries {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	return seriesFromCloses(closes)
}

func newTestAnalyzer(mock *dataflows.MockFetcher) *Analyzer {
	return New(mock, testLogger())
}

func TestAnalyzeRejectsEmptyTicker(t *testing.T) {
	mock := &dataflows.MockFetcher{Series: increasingSeries(30)}
	a := newTestAnalyzer(mock)

	report, rows, err := a.Analyze(context.Background(), "   ", model.Timeframe1M)
	if report != nil || rows != nil {
		t.Error("expected nil report and rows on validation failure")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if mock.Calls != 0 {
		t.Errorf("fetcher called %d times, want 0", mock.Calls)
	}
}

func TestAnalyzeRejectsUnknownTimeframe(t *testing.T) {
	mock := &dataflows.MockFetcher{Series: increasingSeries(30)}
	a := newTestAnalyzer(mock)

	_, _, err := a.Analyze(context.Background(), "AAPL", model.Timeframe("2W"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	for _, tf := range model.Timeframes {
		if !strings.Contains(verr.Message, string(tf)) {
			t.Errorf("validation message %q does not name %s", verr.Message, tf)
		}
	}
	if mock.Calls != 0 {
		t.Errorf("fetcher called %d times, want 0", mock.Calls)
	}
}

func TestAnalyzeWrapsFetchFailure(t *testing.T) {
	cause := errors.New("connection refused")
	a := newTestAnalyzer(&dataflows.MockFetcher{Err: cause})

	report, rows, err := a.Analyze(context.Background(), "AAPL", model.Timeframe1M)
	if report != nil || rows != nil {
		t.Error("expected nil report and rows on data failure")
	}
	var derr *DataError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DataError, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Error("DataError does not wrap the underlying cause")
	}
}

func TestAnalyzeEmptySeriesIsDataError(t *testing.T) {
	a := newTestAnalyzer(&dataflows.MockFetcher{Series: model.PriceSeries{}})

	report, rows, err := a.Analyze(context.Background(), "AAPL", model.Timeframe1M)
	if report != nil || rows != nil {
		t.Error("expected nil report and rows for empty series")
	}
	var derr *DataError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DataError, got %T: %v", err, err)
	}
	if derr.Message != "No data available." {
		t.Errorf("message %q, want %q", derr.Message, "No data available.")
	}
}

func TestAnalyzeIncreasingSeries(t *testing.T) {
	a := newTestAnalyzer(&dataflows.MockFetcher{Series: increasingSeries(20)})

	report, rows, err := a.Analyze(context.Background(), " aapl ", model.Timeframe1M)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Ticker != "AAPL" {
		t.Errorf("ticker %q, want AAPL", report.Ticker)
	}
	if len(rows) != 20 {
		t.Fatalf("rows length %d, want 20", len(rows))
	}

	if report.CurrentPrice != 20 {
		t.Errorf("current price %v, want 20", report.CurrentPrice)
	}
	if report.LatestSMA20 == nil || *report.LatestSMA20 != 10.5 {
		t.Errorf("latest sma %v, want 10.5", report.LatestSMA20)
	}
	if report.LatestRSI14 == nil || *report.LatestRSI14 != 100 {
		t.Errorf("latest rsi %v, want 100", report.LatestRSI14)
	}
	if report.Trend != model.TrendBullish {
		t.Errorf("trend %s, want bullish", report.Trend)
	}
	if report.Momentum != model.MomentumOverbought {
		t.Errorf("momentum %s, want overbought", report.Momentum)
	}
	if report.HighestClose != 20 || report.LowestClose != 1 {
		t.Errorf("extremes (%v, %v), want (20, 1)", report.HighestClose, report.LowestClose)
	}
	if !report.LowestDate.Equal(rows[0].Date) {
		t.Errorf("lowest date %v, want first row date", report.LowestDate)
	}
	if report.PriceChangePct != 1900 {
		t.Errorf("price change %v%%, want 1900", report.PriceChangePct)
	}

	// Up 1900% from the trough and overbought: the narrative takes profits.
	if !strings.Contains(report.Sections.Recommendation, "Sell or take profits AAPL.") {
		t.Errorf("recommendation %q, want take-profits wording", report.Sections.Recommendation)
	}
}

func TestAnalyzeSinglePoint(t *testing.T) {
	a := newTestAnalyzer(&dataflows.MockFetcher{Series: seriesFromCloses([]float64{42})})

	report, rows, err := a.Analyze(context.Background(), "AAPL", model.Timeframe1M)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows length %d, want 1", len(rows))
	}
	if report.PriceChangePct != 0 {
		t.Errorf("price change %v%%, want 0 for a single point", report.PriceChangePct)
	}
	if report.Volatility != 0 {
		t.Errorf("volatility %v%%, want 0 for a single point", report.Volatility)
	}
	if report.Trend != model.TrendNeutral {
		t.Errorf("trend %s, want neutral when SMA undefined", report.Trend)
	}
}

func TestAnalyzeNeutralTrendWithoutSMA(t *testing.T) {
	// 10 points: no SMA regardless of how strong the move is.
	a := newTestAnalyzer(&dataflows.MockFetcher{Series: increasingSeries(10)})

	report, _, err := a.Analyze(context.Background(), "AAPL", model.Timeframe1M)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.LatestSMA20 != nil {
		t.Fatalf("sma defined for 10 points")
	}
	if report.Trend != model.TrendNeutral {
		t.Errorf("trend %s, want neutral when SMA undefined", report.Trend)
	}
}

func TestAnalyzeFlatSeriesQuirk(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 5
	}
	a := newTestAnalyzer(&dataflows.MockFetcher{Series: seriesFromCloses(closes)})

	report, _, err := a.Analyze(context.Background(), "AAPL", model.Timeframe1M)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.LatestSMA20 == nil || *report.LatestSMA20 != 5 {
		t.Errorf("sma %v, want 5", report.LatestSMA20)
	}
	if report.LatestRSI14 == nil || *report.LatestRSI14 != 100 {
		t.Errorf("rsi %v, want 100 for flat closes", report.LatestRSI14)
	}
	// Equal price and SMA read as neutral, not bullish.
	if report.Trend != model.TrendNeutral {
		t.Errorf("trend %s, want neutral when price equals SMA", report.Trend)
	}
	if report.Volatility != 0 {
		t.Errorf("volatility %v%%, want 0 for flat closes", report.Volatility)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(&dataflows.MockFetcher{Series: increasingSeries(30)})

	first, _, err := a.Analyze(context.Background(), "AAPL", model.Timeframe1M)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, _, err := a.Analyze(context.Background(), "AAPL", model.Timeframe1M)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if first.Summary() != second.Summary() {
		t.Error("same input produced different summaries")
	}
}

func TestAnalyzeSummaryLayout(t *testing.T) {
	a := newTestAnalyzer(&dataflows.MockFetcher{Series: increasingSeries(30)})

	report, _, err := a.Analyze(context.Background(), "AAPL", model.Timeframe3M)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	summary := report.Summary()
	for _, want := range []string{
		"Stock Analysis for AAPL (3M)",
		"Current Price: $",
		"Highest Peak: $",
		"Lowest Peak: $",
		"Long-term Strategy:",
		"Short-term Strategy:",
		"Long-term Risk Analysis:",
		"Short-term Risk Analysis:",
		"Recommendation:",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}
