package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataSource != SourceYahoo {
		t.Errorf("default data source %q, want %q", cfg.DataSource, SourceYahoo)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("default listen addr %q, want :8080", cfg.ListenAddr)
	}
	if !cfg.CacheEnabled {
		t.Error("cache should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockscope.yaml")
	body := "listen_addr: \":9999\"\ndata_source: chartapi\ncache_ttl: 1h\ncache_enabled: false\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("listen addr %q, want :9999", cfg.ListenAddr)
	}
	if cfg.DataSource != SourceChartAPI {
		t.Errorf("data source %q, want chartapi", cfg.DataSource)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("cache ttl %v, want 1h", cfg.CacheTTL)
	}
	if cfg.CacheEnabled {
		t.Error("cache should be disabled by file")
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockscope.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9999\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STOCKSCOPE_LISTEN_ADDR", ":7777")
	t.Setenv("STOCKSCOPE_CACHE_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":7777" {
		t.Errorf("listen addr %q, want env value :7777", cfg.ListenAddr)
	}
	if cfg.CacheEnabled {
		t.Error("cache should be disabled via env")
	}
}

func TestValidateRejectsUnknownSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataSource = "bloomberg"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown data source")
	}
}
