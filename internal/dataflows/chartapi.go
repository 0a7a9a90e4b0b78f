package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"stockscope/internal/model"
)

// ChartAPIClient fetches daily price history straight from the Yahoo
// v8 chart endpoint. It serves as a fallback where the iterator-based
// client is unavailable (some regions require a browser user agent).
type ChartAPIClient struct {
	client *resty.Client
	retry  *RetryConfig
	log    logrus.FieldLogger
}

// NewChartAPIClient creates a new chart-endpoint client.
func NewChartAPIClient(log logrus.FieldLogger) *ChartAPIClient {
	client := resty.New()
	client.SetBaseURL("https://query1.finance.yahoo.com")
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0")

	return &ChartAPIClient{
		client: client,
		retry:  DefaultRetryConfig(),
		log:    log,
	}
}

func (c *ChartAPIClient) Name() string { return "yahoo-chart-api" }

// chartResponse is the response structure of the chart endpoint.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchSeries gets daily bars for the requested range, sorted
// chronologically. Null bars are skipped.
func (c *ChartAPIClient) FetchSeries(ctx context.Context, ticker string, start, end time.Time, maxHistory bool) (model.PriceSeries, error) {
	if err := ValidateTicker(ticker); err != nil {
		return nil, err
	}
	ticker = NormalizeTicker(ticker)

	query := map[string]string{"interval": "1d"}
	if maxHistory {
		query["range"] = "max"
	} else {
		query["period1"] = strconv.FormatInt(start.Unix(), 10)
		query["period2"] = strconv.FormatInt(end.Unix(), 10)
	}

	var series model.PriceSeries
	err := WithRetry(c.retry, func() error {
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(ticker)))
		if err != nil {
			return fmt.Errorf("failed to fetch chart for %s: %w", ticker, err)
		}
		if resp.IsError() {
			return fmt.Errorf("chart endpoint for %s: status %d", ticker, resp.StatusCode())
		}

		var chart chartResponse
		if err := json.Unmarshal(resp.Body(), &chart); err != nil {
			return fmt.Errorf("decode chart response for %s: %w", ticker, err)
		}
		if chart.Chart.Error != nil {
			return fmt.Errorf("chart endpoint for %s: %s", ticker, chart.Chart.Error.Description)
		}
		if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
			return fmt.Errorf("no data found for ticker %s", ticker)
		}

		result := chart.Chart.Result[0]
		quote := result.Indicators.Quote[0]

		series = series[:0]
		for i, ts := range result.Timestamp {
			point := model.PricePoint{
				Date:   time.Unix(ts, 0),
				Open:   toFloat(quote.Open[i]),
				High:   toFloat(quote.High[i]),
				Low:    toFloat(quote.Low[i]),
				Close:  toFloat(quote.Close[i]),
				Volume: toFloat(quote.Volume[i]),
			}
			if point.Open == 0 && point.High == 0 && point.Low == 0 && point.Close == 0 {
				continue
			}
			series = append(series, point)
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
	return series, nil
}
