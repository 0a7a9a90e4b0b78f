// Package dataflows fetches historical price data from external
// providers. The analyzer only sees the Fetcher interface; everything
// here is replaceable transport glue.
package dataflows

import (
	"context"
	"time"

	"stockscope/internal/model"
)

// Fetcher retrieves a daily price series for a ticker. An empty result
// is reported as an error, never as a valid empty series. When
// maxHistory is set the start date is ignored and the provider's full
// available history is requested.
type Fetcher interface {
	FetchSeries(ctx context.Context, ticker string, start, end time.Time, maxHistory bool) (model.PriceSeries, error)
	Name() string
}
