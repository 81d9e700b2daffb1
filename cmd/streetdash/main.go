package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"StreetDash/internal/collector"
	"StreetDash/internal/config"
	"StreetDash/internal/engine"
	"StreetDash/internal/ledger"
	"StreetDash/internal/logger"
	"StreetDash/internal/metrics"
)

const usage = `usage: streetdash <command> [flags]

commands:
  dashboard   show RSI, MACD, VWAP and the SMA crossover for one symbol
  screen      scan the watchlist for RSI zones (once or on the cron schedule)
  export      save daily bars as parquet files for offline use
  ledger      manage the investment ledger (list, add, remove, summary)
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init("streetdash", logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		slog.Error("config validation", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := "dashboard", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "dashboard":
		err = runDashboard(ctx, cfg, args)
	case "screen":
		err = runScreen(ctx, cfg, args)
	case "export":
		err = runExport(ctx, cfg, args)
	case "ledger":
		err = runLedger(cfg, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

// newFetcher builds the configured market-data provider.
func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case "alpaca":
		return collector.NewAlpacaFetcher(ds.AlpacaAPIKey, ds.AlpacaSecretKey, ds.AlpacaBaseURL, ds.Feed), nil
	case "yahoo":
		return collector.NewYahooFetcher(ds.YahooBaseURL, cfg.Proxy), nil
	case "parquet":
		return collector.NewParquetFetcher(ds.ParquetDir), nil
	case "mock":
		return &collector.MockFetcher{Price: ds.MockPrice}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", ds.Provider)
	}
}

// newCollector wires fetcher, an engine built from ec, pacer and metrics.
func newCollector(cfg *config.Config, ec engine.Config, m *metrics.Metrics) (*collector.Collector, *engine.Engine, error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, nil, err
	}
	eng, err := engine.New(ec)
	if err != nil {
		return nil, nil, fmt.Errorf("init engine: %w", err)
	}
	pacer := collector.NewPacer(cfg.Screener.RequestDelay, cfg.Screener.MaxRetries, cfg.Screener.RetryBackoff)
	col := collector.NewCollector(fetcher, eng, pacer, m)
	col.Concurrency = cfg.Screener.Concurrency
	slog.Info("data source ready", "provider", fetcher.Name(), "bars_needed", eng.BarsNeeded(), "rsi_zero_loss", ec.ZeroLoss)
	return col, eng, nil
}

// openStore opens the configured ledger backend.
func openStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.Ledger.Backend {
	case "sqlite":
		return ledger.NewSQLiteStore(cfg.Ledger.Path)
	case "memory":
		return ledger.NewMemoryStore(), nil
	default:
		return ledger.NewCSVStore(cfg.Ledger.Path), nil
	}
}
