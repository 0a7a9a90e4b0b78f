package dataflows

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/sirupsen/logrus"

	"stockscope/internal/model"
)

// earliestStart is the start date used for full-history requests. The
// chart endpoint clamps it to the first listed trading day.
var earliestStart = time.Date(1962, time.January, 2, 0, 0, 0, 0, time.UTC)

// YahooClient fetches daily price history through the Yahoo Finance
// chart iterator.
type YahooClient struct {
	retry *RetryConfig
	log   logrus.FieldLogger
}

// NewYahooClient creates a new Yahoo Finance client.
func NewYahooClient(log logrus.FieldLogger) *YahooClient {
	return &YahooClient{
		retry: DefaultRetryConfig(),
		log:   log,
	}
}

func (c *YahooClient) Name() string { return "yahoo" }

// FetchSeries gets daily bars for the requested range, sorted
// chronologically. Null bars (holidays, halts) are skipped.
func (c *YahooClient) FetchSeries(ctx context.Context, ticker string, start, end time.Time, maxHistory bool) (model.PriceSeries, error) {
	if err := ValidateTicker(ticker); err != nil {
		return nil, err
	}
	ticker = NormalizeTicker(ticker)

	if maxHistory {
		start = earliestStart
	}

	c.log.WithFields(logrus.Fields{
		"ticker": ticker,
		"range":  FormatDateRange(start, end),
		"source": c.Name(),
	}).Debug("fetching price history")

	var series model.PriceSeries
	err := WithRetry(c.retry, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		params := &chart.Params{
			Symbol:   ticker,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		series = series[:0]
		for iter.Next() {
			bar := iter.Bar()

			point := model.PricePoint{
				Date:   time.Unix(int64(bar.Timestamp), 0),
				Open:   bar.Open.InexactFloat64(),
				High:   bar.High.InexactFloat64(),
				Low:    bar.Low.InexactFloat64(),
				Close:  bar.Close.InexactFloat64(),
				Volume: float64(bar.Volume),
			}
			if point.Open == 0 && point.High == 0 && point.Low == 0 && point.Close == 0 {
				continue
			}

			series = append(series, point)
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get historical data for %s: %w", ticker, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no data found for ticker %s", ticker)
	}

	sortSeries(series)
	c.log.WithField("points", len(series)).Debug("fetched price history")
	return series, nil
}
