package dataflows

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"stockscope/internal/model"
)

// SeriesCache stores fetched price series in a local SQLite database so
// repeated analyses of the same ticker and range do not hammer the
// provider. Entries expire by TTL; this is a provider courtesy cache,
// not a store of analysis results.
type SeriesCache struct {
	db      *sql.DB
	ttl     time.Duration
	enabled bool
	log     logrus.FieldLogger
}

// OpenSeriesCache opens (or creates) the cache database and runs its
// migration. A disabled cache is valid and simply misses every lookup.
func OpenSeriesCache(dbPath string, ttl time.Duration, enabled bool, log logrus.FieldLogger) (*SeriesCache, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_loc=Local")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}

	const migration = `CREATE TABLE IF NOT EXISTS series_cache (
		cache_key  TEXT PRIMARY KEY,
		fetched_at INTEGER NOT NULL,
		payload    BLOB NOT NULL
	)`
	if _, err := db.Exec(migration); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SeriesCache{db: db, ttl: ttl, enabled: enabled, log: log}, nil
}

// Close releases the underlying database handle.
func (c *SeriesCache) Close() error { return c.db.Close() }

// cacheKey derives a stable key from the request parameters.
func cacheKey(source string, params interface{}) string {
	data, _ := json.Marshal(params)
	return fmt.Sprintf("%s_%x", source, md5.Sum(data))
}

// Get retrieves a cached series if present and not expired.
func (c *SeriesCache) Get(source string, params interface{}) (model.PriceSeries, bool) {
	if !c.enabled {
		return nil, false
	}

	key := cacheKey(source, params)
	var fetchedAt int64
	var payload []byte
	err := c.db.QueryRow(
		"SELECT fetched_at, payload FROM series_cache WHERE cache_key = ?", key,
	).Scan(&fetchedAt, &payload)
	if err != nil {
		return nil, false
	}

	if time.Since(time.Unix(fetchedAt, 0)) > c.ttl {
		_, _ = c.db.Exec("DELETE FROM series_cache WHERE cache_key = ?", key)
		return nil, false
	}

	var series model.PriceSeries
	if err := json.Unmarshal(payload, &series); err != nil || len(series) == 0 {
		return nil, false
	}
	return series, true
}

// Set stores a fetched series under the request parameters.
func (c *SeriesCache) Set(source string, params interface{}, series model.PriceSeries) error {
	if !c.enabled {
		return nil
	}

	payload, err := json.Marshal(series)
	if err != nil {
		return err
	}

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO series_cache (cache_key, fetched_at, payload) VALUES (?, ?, ?)",
		cacheKey(source, params), time.Now().Unix(), payload,
	)
	return err
}

// fetchParams is the cache identity of one fetch request. Date-only
// resolution keeps same-day repeats warm.
type fetchParams struct {
	Ticker string `json:"ticker"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Max    bool   `json:"max"`
}

// CachedFetcher wraps a Fetcher with the series cache.
type CachedFetcher struct {
	inner Fetcher
	cache *SeriesCache
}

// NewCachedFetcher wraps inner with cache.
func NewCachedFetcher(inner Fetcher, cache *SeriesCache) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: cache}
}

func (f *CachedFetcher) Name() string { return f.inner.Name() }

func (f *CachedFetcher) FetchSeries(ctx context.Context, ticker string, start, end time.Time, maxHistory bool) (model.PriceSeries, error) {
	params := fetchParams{
		Ticker: NormalizeTicker(ticker),
		Start:  start.Format("2006-01-02"),
		End:    end.Format("2006-01-02"),
		Max:    maxHistory,
	}

	if series, ok := f.cache.Get(f.inner.Name(), params); ok {
		f.cache.log.WithField("ticker", params.Ticker).Debug("series cache hit")
		return series, nil
	}

	series, err := f.inner.FetchSeries(ctx, ticker, start, end, maxHistory)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(f.inner.Name(), params, series); err != nil {
		f.cache.log.WithError(err).Warn("failed to cache series")
	}
	return series, nil
}
