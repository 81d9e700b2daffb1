// Package collector fetches daily bars from a provider and turns them into
// indicator sets, one symbol at a time or as a paced batch scan.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"StreetDash/internal/engine"
	"StreetDash/internal/metrics"
	"StreetDash/internal/model"
)

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Engine  *engine.Engine
	Pacer   *Pacer
	Metrics *metrics.Metrics

	// Concurrency bounds the symbols fetched at once during Scan.
	Concurrency int
}

// NewCollector creates a new Collector. A nil pacer disables pacing and
// retries; m may be nil.
func NewCollector(fetcher Fetcher, eng *engine.Engine, pacer *Pacer, m *metrics.Metrics) *Collector {
	if pacer == nil {
		pacer = NewPacer(0, 0, 0)
	}
	if pacer.OnRetry == nil {
		name := fetcher.Name()
		pacer.OnRetry = func(int, error) { m.IncRetry(name) }
	}
	return &Collector{Fetcher: fetcher, Engine: eng, Pacer: pacer, Metrics: m, Concurrency: 1}
}

// FetchSeries loads enough daily bars for every indicator through the
// pacer. Short or empty data is not an error.
func (c *Collector) FetchSeries(ctx context.Context, symbol string) (model.BarSeries, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return model.BarSeries{}, fmt.Errorf("empty symbol")
	}

	var series model.BarSeries
	err := c.Pacer.Do(ctx, func(ctx context.Context) error {
		start := time.Now()
		s, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Engine.BarsNeeded())
		c.Metrics.ObserveFetch(c.Fetcher.Name(), time.Since(start))
		if err != nil {
			return err
		}
		series = s
		return nil
	})
	if err != nil {
		return model.BarSeries{}, fmt.Errorf("fetch daily bars: %w", err)
	}
	series.Symbol = symbol
	return series, nil
}

// Evaluate fetches a symbol's bars and evaluates every indicator.
func (c *Collector) Evaluate(ctx context.Context, symbol string) (model.IndicatorSet, error) {
	series, err := c.FetchSeries(ctx, symbol)
	if err != nil {
		return model.IndicatorSet{}, err
	}
	set := c.Engine.Evaluate(series.Symbol, series)
	slog.Debug("evaluated symbol", "symbol", series.Symbol, "bars", set.Bars, "rsi", set.RSI.String())
	return set, nil
}

// Scan evaluates every symbol and reports one result per symbol in input
// order. A failing symbol never aborts the others.
func (c *Collector) Scan(ctx context.Context, symbols []string) *Report {
	report := &Report{
		Provider: c.Fetcher.Name(),
		Started:  time.Now(),
		Results:  make([]SymbolResult, len(symbols)),
	}

	limit := c.Concurrency
	if limit < 1 {
		limit = 1
	}
	var g errgroup.Group
	g.SetLimit(limit)

	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			res := SymbolResult{Symbol: normalizeSymbol(sym)}
			set, err := c.Evaluate(ctx, sym)
			if err != nil {
				res.Err = err.Error()
				c.Metrics.IncFailed()
				slog.Warn("skipping symbol", "symbol", res.Symbol, "provider", report.Provider, "error", err)
			} else {
				res.Set = &set
				c.Metrics.ObserveSet(set)
			}
			report.Results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	report.Finished = time.Now()
	c.Metrics.ObserveScan(report.Finished.Sub(report.Started), report.Finished)
	slog.Info("scan finished",
		"provider", report.Provider,
		"symbols", len(symbols),
		"failed", len(report.Failed()),
		"elapsed", report.Finished.Sub(report.Started).Round(time.Millisecond))
	return report
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
