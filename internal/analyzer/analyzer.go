// Package analyzer orchestrates one analysis request: it validates the
// input, asks the data collaborator for a price series, runs the
// indicator engine, derives summary statistics and renders the
// narrative report.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"stockscope/internal/dataflows"
	"stockscope/internal/indicator"
	"stockscope/internal/model"
)

// Analyzer turns (ticker, timeframe) into an AnalysisReport. It holds
// no per-request state; every call builds and discards its own series.
type Analyzer struct {
	fetcher dataflows.Fetcher
	log     logrus.FieldLogger
	now     func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the clock used to resolve timeframes.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// New creates an Analyzer on top of the given data fetcher.
func New(fetcher dataflows.Fetcher, log logrus.FieldLogger, options ...Option) *Analyzer {
	a := &Analyzer{
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Analyze runs one full analysis. On failure the report and rows are
// nil and the error is a *ValidationError or *DataError; the engine
// itself never fails, it only leaves indicator values undefined.
func (a *Analyzer) Analyze(ctx context.Context, ticker string, timeframe model.Timeframe) (*model.AnalysisReport, []model.IndicatorRow, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" || !timeframe.Valid() {
		return nil, nil, &ValidationError{
			Message: fmt.Sprintf(
				"Invalid input: Please provide a valid ticker and timeframe (%s).",
				model.TimeframeList()),
		}
	}

	log := a.log.WithFields(logrus.Fields{"ticker": ticker, "timeframe": timeframe})

	start, end, maxHistory := timeframe.Resolve(a.now())
	series, err := a.fetcher.FetchSeries(ctx, ticker, start, end, maxHistory)
	if err != nil {
		log.WithError(err).Warn("price fetch failed")
		return nil, nil, &DataError{Message: fmt.Sprintf("Error fetching data: %v", err), Cause: err}
	}
	if len(series) == 0 {
		log.Warn("provider returned an empty series")
		return nil, nil, &DataError{Message: "No data available."}
	}
	log.WithField("points", len(series)).Debug("price series fetched")

	rows := indicator.Enrich(series)
	last := rows[len(rows)-1]

	high, highDate, low, lowDate := extremes(series)
	closes := series.Closes()

	report := &model.AnalysisReport{
		Ticker:       ticker,
		Timeframe:    timeframe,
		CurrentPrice: last.Close,
		HighestClose: high,
		HighestDate:  highDate,
		LowestClose:  low,
		LowestDate:   lowDate,
		LatestSMA20:  last.SMA20,
		LatestRSI14:  last.RSI14,
		Trend:        classifyTrend(last.Close, last.SMA20),
		Momentum:     classifyMomentum(last.RSI14),
		Volatility:   annualizedVolatility(closes),
	}
	report.PriceChangePct = priceChangePct(report.CurrentPrice, report.LowestClose, len(series))
	report.Sections = renderSections(report, len(series))

	log.WithFields(logrus.Fields{
		"trend":    report.Trend,
		"momentum": report.Momentum,
	}).Info("analysis complete")

	return report, rows, nil
}
