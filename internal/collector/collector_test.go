package collector

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"StreetDash/internal/engine"
	"StreetDash/internal/metrics"
	"StreetDash/internal/model"
)

var testEnd = time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func TestMockFetcher_GeneratesRequestedBars(t *testing.T) {
	m := &MockFetcher{Price: 5800, End: testEnd}
	series, err := m.FetchDailyBars(context.Background(), "AAPL", 201)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Len() != 201 {
		t.Fatalf("expected 201 bars, got %d", series.Len())
	}
	last, _ := series.Last()
	if !last.Time.Equal(testEnd) {
		t.Errorf("expected last bar at %s, got %s", testEnd, last.Time)
	}
	if series.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %q", series.Symbol)
	}
}

func TestCollector_Evaluate(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 100, End: testEnd}, newTestEngine(t), nil, nil)
	set, err := c.Evaluate(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Symbol != "AAPL" {
		t.Errorf("expected normalized symbol AAPL, got %q", set.Symbol)
	}
	if !set.RSI.Available || !set.MACD.Available || !set.VWAP.Available {
		t.Errorf("expected all scalar indicators available, got %+v", set)
	}
	if set.Crossover == model.CrossoverUnavailable {
		t.Error("expected a crossover state with 201 bars")
	}
}

func TestCollector_EvaluateShortHistory(t *testing.T) {
	bars := generateMockBars(50, 10, testEnd)
	c := NewCollector(&MockFetcher{Bars: bars}, newTestEngine(t), nil, nil)
	set, err := c.Evaluate(context.Background(), "SNOW")
	if err != nil {
		t.Fatalf("short history must not be an error: %v", err)
	}
	if set.RSI.Available {
		t.Errorf("expected N/A RSI with 10 bars, got %s", set.RSI)
	}
	if set.Crossover != model.CrossoverUnavailable {
		t.Errorf("expected UNAVAILABLE crossover, got %s", set.Crossover)
	}
}

func TestCollector_ScanIsolatesFailures(t *testing.T) {
	fetcher := &MockFetcher{
		Price:  120,
		End:    testEnd,
		Errors: map[string]error{"PINS": errors.New("boom")},
	}
	c := NewCollector(fetcher, newTestEngine(t), NewPacer(0, 0, 0), metrics.New())
	c.Concurrency = 3

	symbols := []string{"AAPL", "PINS", "TSLA", "AMD"}
	report := c.Scan(context.Background(), symbols)

	if len(report.Results) != len(symbols) {
		t.Fatalf("expected %d results, got %d", len(symbols), len(report.Results))
	}
	for i, sym := range symbols {
		if report.Results[i].Symbol != sym {
			t.Errorf("result %d: expected %s, got %s", i, sym, report.Results[i].Symbol)
		}
	}
	if len(report.Succeeded()) != 3 {
		t.Errorf("expected 3 successes, got %d", len(report.Succeeded()))
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Symbol != "PINS" {
		t.Fatalf("expected PINS to fail, got %+v", failed)
	}
	if failed[0].Err == "" {
		t.Error("expected a failure reason")
	}
	if got := len(report.Sets()); got != 3 {
		t.Errorf("expected 3 indicator sets, got %d", got)
	}
}

func TestCollector_ScanRetriesFlakyProvider(t *testing.T) {
	f := &flakyFetcher{inner: &MockFetcher{Price: 80, End: testEnd}, failures: 2}
	c := NewCollector(f, newTestEngine(t), NewPacer(0, 2, time.Millisecond), nil)

	report := c.Scan(context.Background(), []string{"UBER"})
	if len(report.Failed()) != 0 {
		t.Fatalf("expected retry to recover, got %+v", report.Failed())
	}
	if got := f.calls.Load(); got != 3 {
		t.Errorf("expected 3 calls, got %d", got)
	}
}

func TestCollector_ScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewCollector(&MockFetcher{Price: 10, End: testEnd}, newTestEngine(t), nil, nil)

	report := c.Scan(ctx, []string{"CRM", "INTC"})
	if len(report.Failed()) != 2 {
		t.Errorf("expected both symbols to fail on a cancelled context, got %d", len(report.Failed()))
	}
}

type flakyFetcher struct {
	inner    Fetcher
	failures int32
	calls    atomic.Int32
}

func (f *flakyFetcher) Name() string { return "flaky" }

func (f *flakyFetcher) FetchDailyBars(ctx context.Context, symbol string, limit int) (model.BarSeries, error) {
	if f.calls.Add(1) <= f.failures {
		return model.BarSeries{}, errors.New("429 too many requests")
	}
	return f.inner.FetchDailyBars(ctx, symbol, limit)
}
