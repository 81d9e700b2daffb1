package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"StreetDash/internal/calculator"
	"StreetDash/internal/collector"
	"StreetDash/internal/config"
	"StreetDash/internal/display"
	"StreetDash/internal/ledger"
	"StreetDash/internal/metrics"
	"StreetDash/internal/scheduler"
	"StreetDash/internal/screener"
)

func runDashboard(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	symbol := fs.String("symbol", "AAPL", "ticker symbol")
	refresh := fs.Duration("refresh", 0, "redraw interval, 0 renders once")
	if err := fs.Parse(args); err != nil {
		return err
	}

	col, eng, err := newCollector(cfg, cfg.Engine(), nil)
	if err != nil {
		return err
	}
	ec := eng.Config()

	render := func() error {
		series, err := col.FetchSeries(ctx, *symbol)
		if err != nil {
			return err
		}
		set := eng.Evaluate(series.Symbol, series)
		short, _ := calculator.SMA(series, ec.SMAShort)
		long, _ := calculator.SMA(series, ec.SMALong)
		fmt.Println(display.FormatDashboard(set, &display.Averages{
			ShortWindow: ec.SMAShort,
			LongWindow:  ec.SMALong,
			Short:       short,
			Long:        long,
		}))
		return nil
	}

	if err := render(); err != nil || *refresh <= 0 {
		return err
	}
	ticker := time.NewTicker(*refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := render(); err != nil {
				slog.Warn("dashboard refresh failed", "symbol", *symbol, "error", err)
			}
		}
	}
}

func runScreen(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("screen", flag.ContinueOnError)
	once := fs.Bool("once", false, "scan once and exit instead of following the cron schedule")
	zoneName := fs.String("zone", string(screener.ZoneOversold), "zone to list: oversold, overbought, neutral, unknown")
	symbols := fs.String("symbols", "", "comma-separated watchlist (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	zone, err := screener.ParseZone(*zoneName)
	if err != nil {
		return err
	}
	watchlist := cfg.Screener.Watchlist
	if *symbols != "" {
		watchlist = config.SplitSymbols(*symbols)
	}

	m := metrics.New()
	col, _, err := newCollector(cfg, cfg.ScreenEngine(), m)
	if err != nil {
		return err
	}

	th := cfg.Thresholds()
	onReport := func(r *collector.Report) {
		fmt.Println(display.FormatScanReport(r, th, zone))
		if err := r.WriteJSON(cfg.Screener.ReportDir); err != nil {
			slog.Warn("write scan report", "dir", cfg.Screener.ReportDir, "error", err)
		}
	}
	sched := scheduler.NewScheduler(ctx, col, watchlist, onReport)

	if *once {
		sched.RunScanNow()
		return nil
	}

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr); err != nil {
				slog.Error("metrics server", "error", err)
			}
		}()
	}
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	slog.Info("screener running, press Ctrl+C to stop")
	<-ctx.Done()
	slog.Info("shutdown signal received, stopping")
	return nil
}

func runExport(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	symbols := fs.String("symbols", "", "comma-separated symbols (default: watchlist)")
	dir := fs.String("dir", cfg.DataSource.ParquetDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.DataSource.Provider == "parquet" {
		return fmt.Errorf("export needs a remote provider, got parquet")
	}
	list := cfg.Screener.Watchlist
	if *symbols != "" {
		list = config.SplitSymbols(*symbols)
	}

	col, _, err := newCollector(cfg, cfg.Engine(), nil)
	if err != nil {
		return err
	}
	failed := 0
	for _, sym := range list {
		series, err := col.FetchSeries(ctx, sym)
		if err == nil {
			err = collector.WriteParquetBars(*dir, series)
		}
		if err != nil {
			failed++
			slog.Warn("export failed", "symbol", sym, "error", err)
			continue
		}
		slog.Info("exported bars", "symbol", series.Symbol, "bars", series.Len(), "path", filepath.Join(*dir, series.Symbol+".parquet"))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d symbols failed", failed, len(list))
	}
	return nil
}

func runLedger(cfg *config.Config, args []string) error {
	action := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	book, err := ledger.Open(store)
	if err != nil {
		store.Close()
		return err
	}
	defer book.Close()

	switch action {
	case "list":
		fmt.Print(display.FormatLedger(book.Entries(), book.Summary()))
	case "summary":
		fmt.Print(display.FormatSummary(book.Summary()))
	case "add":
		fs := flag.NewFlagSet("ledger add", flag.ContinueOnError)
		date := fs.String("date", time.Now().Format(ledger.DateLayout), "investment date (YYYY-MM-DD)")
		asset := fs.String("asset", "", "asset symbol")
		amount := fs.String("amount", "", "amount invested")
		typ := fs.String("type", "Crypto", "Crypto or Stock")
		if err := fs.Parse(args); err != nil {
			return err
		}
		e, err := ledger.NewEntry(*date, *asset, *amount, *typ)
		if err != nil {
			return err
		}
		if err := book.Append(e); err != nil {
			return err
		}
		fmt.Printf("added %s %s %s on %s\n", e.Type, e.Asset, e.Amount.StringFixed(2), e.Date.Format(ledger.DateLayout))
	case "remove":
		fs := flag.NewFlagSet("ledger remove", flag.ContinueOnError)
		index := fs.Int("index", -1, "row number shown by ledger list")
		if err := fs.Parse(args); err != nil {
			return err
		}
		e, err := book.Remove(*index)
		if err != nil {
			return err
		}
		fmt.Printf("removed %s %s %s\n", e.Asset, e.Amount.StringFixed(2), e.Date.Format(ledger.DateLayout))
	default:
		return fmt.Errorf("unknown ledger action %q (list, add, remove, summary)", action)
	}
	return nil
}
