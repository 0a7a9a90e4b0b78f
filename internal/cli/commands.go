package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stockscope/internal/analyzer"
	"stockscope/internal/chart"
	"stockscope/internal/config"
	"stockscope/internal/dataflows"
	"stockscope/internal/model"
	"stockscope/internal/web"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "stockscope",
		Short: "StockScope - historical stock analysis",
		Long: `StockScope fetches historical price data for a stock ticker, computes
technical indicators (20-day SMA, 14-day RSI) and produces a strategy
report with interactive charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file path")

	rootCmd.AddCommand(newAnalyzeCmd(&configPath))
	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newConfigCmd(&configPath))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newAnalyzeCmd creates the one-shot analyze command
func newAnalyzeCmd(configPath *string) *cobra.Command {
	var timeframe string

	cmd := &cobra.Command{
		Use:   "analyze TICKER",
		Short: "Run a one-shot analysis for a stock ticker",
		Long: `Run a single analysis for the given ticker and timeframe, print the
report and write the chart page to the results directory.
Example: stockscope analyze AAPL --timeframe 1Y`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runAnalyzeCommand(cfg, args[0], timeframe)
		},
	}

	cmd.Flags().StringVar(&timeframe, "timeframe", string(model.Timeframe1Y),
		fmt.Sprintf("Analysis timeframe (%s)", model.TimeframeList()))

	return cmd
}

// newServeCmd creates the web server command
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the analysis web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			log := newLogger(cfg)
			a, closer, err := buildAnalyzer(cfg, log)
			if err != nil {
				return err
			}
			defer closer()

			srv := web.NewServer(a, log)
			log.WithField("addr", cfg.ListenAddr).Info("starting web server")
			return http.ListenAndServe(cfg.ListenAddr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides configuration)")
	return cmd
}

// newConfigCmd creates the config command
func newConfigCmd(configPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			showConfig(cfg)
			return nil
		},
	})

	return configCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("StockScope v%s\n", version)
			fmt.Println("Historical stock analysis and strategy reports")
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return log
}

// buildAnalyzer wires the configured data source, retry policy and
// fetch cache into an Analyzer. The returned closer releases the cache
// database.
func buildAnalyzer(cfg *config.Config, log *logrus.Logger) (*analyzer.Analyzer, func() error, error) {
	var fetcher dataflows.Fetcher
	switch cfg.DataSource {
	case config.SourceChartAPI:
		fetcher = dataflows.NewChartAPIClient(log)
	default:
		fetcher = dataflows.NewYahooClient(log)
	}

	closer := func() error { return nil }
	if cfg.CacheEnabled {
		cache, err := dataflows.OpenSeriesCache(cfg.CachePath, cfg.CacheTTL, true, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open series cache: %w", err)
		}
		fetcher = dataflows.NewCachedFetcher(fetcher, cache)
		closer = cache.Close
	}

	return analyzer.New(fetcher, log), closer, nil
}

// writeCharts renders the chart page for one analysis into the results
// directory and returns the file path.
func writeCharts(cfg *config.Config, rows []model.IndicatorRow, ticker string, tf model.Timeframe) (string, error) {
	name := fmt.Sprintf("%s_%s_%s.html", ticker, tf, time.Now().Format("20060102_150405"))
	path := filepath.Join(cfg.ResultsDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := chart.Render(f, rows, ticker, tf); err != nil {
		return "", fmt.Errorf("failed to render charts: %w", err)
	}
	return path, nil
}

// runAnalyzeCommand executes one analysis and prints the plain report.
func runAnalyzeCommand(cfg *config.Config, ticker, timeframe string) error {
	tf, err := model.ParseTimeframe(timeframe)
	if err != nil {
		return &analyzer.ValidationError{
			Message: fmt.Sprintf("Invalid input: Please provide a valid ticker and timeframe (%s).", model.TimeframeList()),
		}
	}

	log := newLogger(cfg)
	a, closer, err := buildAnalyzer(cfg, log)
	if err != nil {
		return err
	}
	defer closer()

	report, rows, err := a.Analyze(context.Background(), ticker, tf)
	if err != nil {
		return err
	}

	fmt.Print(report.Summary())

	path, err := writeCharts(cfg, rows, report.Ticker, tf)
	if err != nil {
		return err
	}
	fmt.Printf("Charts saved to: %s\n", path)
	return nil
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("Current StockScope Configuration:")
	fmt.Println("=================================")
	fmt.Printf("Project Directory:  %s\n", cfg.ProjectDir)
	fmt.Printf("Results Directory:  %s\n", cfg.ResultsDir)
	fmt.Printf("Listen Address:     %s\n", cfg.ListenAddr)
	fmt.Printf("Data Source:        %s\n", cfg.DataSource)
	fmt.Printf("Cache Path:         %s\n", cfg.CachePath)
	fmt.Printf("Cache TTL:          %s\n", cfg.CacheTTL)
	fmt.Printf("Cache Enabled:      %t\n", cfg.CacheEnabled)
	fmt.Printf("Log Level:          %s\n", cfg.LogLevel)
}

// runInteractiveMode starts the interactive analysis loop
func runInteractiveMode(cfg *config.Config) error {
	DisplayWelcomeBanner()

	log := newLogger(cfg)
	a, closer, err := buildAnalyzer(cfg, log)
	if err != nil {
		return err
	}
	defer closer()

	for {
		runOneInteractiveAnalysis(cfg, a)

		again, err := PromptForRestartOrExit()
		if err != nil || !again {
			DisplayInfo("Thank you for using StockScope!")
			return nil
		}
		fmt.Println()
	}
}

// runOneInteractiveAnalysis handles a single prompt-analyze-display
// round. Failures, including panics from collaborators, surface as
// displayed errors so the loop keeps running.
func runOneInteractiveAnalysis(cfg *config.Config, a *analyzer.Analyzer) {
	defer func() {
		if r := recover(); r != nil {
			DisplayError(fmt.Errorf("%v", r))
		}
	}()

	ticker, err := PromptForTicker()
	if err != nil {
		DisplayError(err)
		return
	}

	tf, err := PromptForTimeframe()
	if err != nil {
		DisplayError(err)
		return
	}

	report, rows, err := a.Analyze(context.Background(), ticker, tf)
	if err != nil {
		DisplayError(err)
		return
	}

	DisplayReport(report)

	path, err := writeCharts(cfg, rows, report.Ticker, tf)
	if err != nil {
		DisplayError(err)
		return
	}
	DisplaySuccess(fmt.Sprintf("Charts saved to: %s", path))
}
