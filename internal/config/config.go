// Package config holds runtime settings. Defaults work out of the
// box; a YAML file and environment variables override them, with the
// environment winning.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Data source names accepted by Config.DataSource.
const (
	SourceYahoo    = "yahoo"
	SourceChartAPI = "chartapi"
)

type Config struct {
	ProjectDir string `yaml:"project_dir"`
	ResultsDir string `yaml:"results_dir"`

	ListenAddr string `yaml:"listen_addr"`

	DataSource string `yaml:"data_source"`

	CachePath    string        `yaml:"cache_path"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	CacheEnabled bool          `yaml:"cache_enabled"`

	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	return &Config{
		ProjectDir: currentDir,
		ResultsDir: filepath.Join(currentDir, "results"),

		ListenAddr: ":8080",

		DataSource: SourceYahoo,

		CachePath:    filepath.Join(currentDir, "data", "cache", "series.db"),
		CacheTTL:     15 * time.Minute,
		CacheEnabled: true,

		LogLevel: "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML
// file (explicit path, or STOCKSCOPE_CONFIG, or stockscope.yaml in the
// working directory when present), then environment variables. A .env
// file in the working directory is read into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("STOCKSCOPE_CONFIG")
	}
	if path == "" {
		if _, err := os.Stat("stockscope.yaml"); err == nil {
			path = "stockscope.yaml"
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("STOCKSCOPE_RESULTS_DIR"); v != "" {
		c.ResultsDir = v
	}
	if v := os.Getenv("STOCKSCOPE_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("STOCKSCOPE_DATA_SOURCE"); v != "" {
		c.DataSource = v
	}
	if v := os.Getenv("STOCKSCOPE_CACHE_PATH"); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv("STOCKSCOPE_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = d
		}
	}
	if v := os.Getenv("STOCKSCOPE_CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.CacheEnabled = b
		}
	}
	if v := os.Getenv("STOCKSCOPE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceYahoo, SourceChartAPI:
	default:
		return fmt.Errorf("unknown data source %q (use %s or %s)", c.DataSource, SourceYahoo, SourceChartAPI)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ResultsDir, filepath.Dir(c.CachePath)}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
