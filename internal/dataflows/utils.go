package dataflows

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"stockscope/internal/model"
)

// RetryConfig configures retry behavior for provider calls.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
}

// DefaultRetryConfig returns sensible retry defaults.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
	}
}

// WithRetry executes a function with exponential backoff retry.
func WithRetry(config *RetryConfig, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(config.BaseDelay) *
				math.Pow(config.Multiplier, float64(attempt-1)))
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
			time.Sleep(delay)
		}

		if err := fn(); err != nil {
			lastErr = err
			continue
		}

		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// ValidateTicker checks that a ticker symbol has a plausible format.
func ValidateTicker(ticker string) error {
	ticker = NormalizeTicker(ticker)
	if len(ticker) == 0 {
		return fmt.Errorf("ticker cannot be empty")
	}
	if len(ticker) > 10 {
		return fmt.Errorf("ticker too long: %s", ticker)
	}
	return nil
}

// NormalizeTicker converts a ticker to the provider's canonical format.
func NormalizeTicker(ticker string) string {
	return strings.TrimSpace(strings.ToUpper(ticker))
}

// FormatDateRange creates a human-readable date range string.
func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s to %s",
		start.Format("2006-01-02"),
		end.Format("2006-01-02"))
}

// sortSeries orders a series chronologically ascending in place.
func sortSeries(series model.PriceSeries) {
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
}
