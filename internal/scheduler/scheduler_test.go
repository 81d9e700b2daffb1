package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"StreetDash/internal/collector"
)

type fakeScanner struct {
	mu    sync.Mutex
	calls [][]string
}

func (f *fakeScanner) Scan(_ context.Context, symbols []string) *collector.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, symbols)
	results := make([]collector.SymbolResult, len(symbols))
	for i, s := range symbols {
		results[i] = collector.SymbolResult{Symbol: s, Err: "not evaluated"}
	}
	return &collector.Report{Provider: "fake", Results: results}
}

func TestRunScanNow(t *testing.T) {
	fs := &fakeScanner{}
	var got *collector.Report
	s := NewScheduler(context.Background(), fs, []string{"AAPL", "TSLA"}, func(r *collector.Report) { got = r })

	report := s.RunScanNow()
	if report == nil || got != report {
		t.Fatal("expected report to be handed to OnReport")
	}
	if len(report.Results) != 2 || report.Results[1].Symbol != "TSLA" {
		t.Errorf("unexpected report: %+v", report.Results)
	}
}

func TestRunScanNow_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := &fakeScanner{}
	s := NewScheduler(ctx, fs, []string{"AAPL"}, nil)
	if r := s.RunScanNow(); r != nil {
		t.Errorf("expected no scan after shutdown, got %+v", r)
	}
	if len(fs.calls) != 0 {
		t.Errorf("scanner should not run, got %d calls", len(fs.calls))
	}
}

func TestRegister_InvalidCronExpr(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeScanner{}, nil, nil)
	if err := s.Register("every tuesday"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.Register("0 30 16 * * 1-5"); err != nil {
		t.Errorf("expected six-field expression to register: %v", err)
	}
}

func TestScheduler_FiresScan(t *testing.T) {
	done := make(chan *collector.Report, 1)
	s := NewScheduler(context.Background(), &fakeScanner{}, []string{"NFLX"}, func(r *collector.Report) {
		select {
		case done <- r:
		default:
		}
	})
	if err := s.Register("* * * * * *"); err != nil {
		t.Fatalf("register: %v", err)
	}
	s.Start()
	defer s.Stop()

	select {
	case r := <-done:
		if r.Results[0].Symbol != "NFLX" {
			t.Errorf("expected NFLX, got %+v", r.Results)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("scan did not fire within 3s")
	}
}
