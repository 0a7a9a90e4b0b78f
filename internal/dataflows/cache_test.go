package dataflows

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func openTestCache(t *testing.T, ttl time.Duration) *SeriesCache {
	t.Helper()
	cache, err := OpenSeriesCache(filepath.Join(t.TempDir(), "cache.db"), ttl, true, testLogger())
	if err != nil {
		t.Fatalf("OpenSeriesCache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSeriesCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t, time.Hour)
	series := GenerateMockSeries(100, 30)
	params := fetchParams{Ticker: "AAPL", Start: "2024-01-01", End: "2024-02-01"}

	if _, ok := cache.Get("yahoo", params); ok {
		t.Fatal("unexpected cache hit before Set")
	}
	if err := cache.Set("yahoo", params, series); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := cache.Get("yahoo", params)
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if len(got) != len(series) {
		t.Fatalf("cached series length %d, want %d", len(got), len(series))
	}
	if got[0].Close != series[0].Close {
		t.Errorf("cached close %v, want %v", got[0].Close, series[0].Close)
	}

	// Different parameters must not collide.
	other := fetchParams{Ticker: "MSFT", Start: "2024-01-01", End: "2024-02-01"}
	if _, ok := cache.Get("yahoo", other); ok {
		t.Error("unexpected cache hit for different ticker")
	}
}

func TestSeriesCacheExpiry(t *testing.T) {
	cache := openTestCache(t, time.Nanosecond)
	params := fetchParams{Ticker: "AAPL", Start: "2024-01-01", End: "2024-02-01"}

	if err := cache.Set("yahoo", params, GenerateMockSeries(100, 5)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok := cache.Get("yahoo", params); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestSeriesCacheDisabled(t *testing.T) {
	cache, err := OpenSeriesCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour, false, testLogger())
	if err != nil {
		t.Fatalf("OpenSeriesCache: %v", err)
	}
	defer cache.Close()

	params := fetchParams{Ticker: "AAPL"}
	if err := cache.Set("yahoo", params, GenerateMockSeries(100, 5)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := cache.Get("yahoo", params); ok {
		t.Error("disabled cache must always miss")
	}
}

func TestCachedFetcherAvoidsSecondFetch(t *testing.T) {
	cache := openTestCache(t, time.Hour)
	mock := &MockFetcher{Series: GenerateMockSeries(50, 40)}
	fetcher := NewCachedFetcher(mock, cache)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	for i := 0; i < 2; i++ {
		series, err := fetcher.FetchSeries(context.Background(), "aapl", start, end, false)
		if err != nil {
			t.Fatalf("FetchSeries #%d: %v", i+1, err)
		}
		if len(series) != 40 {
			t.Fatalf("series length %d, want 40", len(series))
		}
	}

	if mock.Calls != 1 {
		t.Errorf("inner fetcher called %d times, want 1", mock.Calls)
	}
}
