// Package scheduler runs the periodic watchlist scan.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"StreetDash/internal/collector"
)

// Scanner evaluates a watchlist. *collector.Collector implements it.
type Scanner interface {
	Scan(ctx context.Context, symbols []string) *collector.Report
}

// Scheduler manages the cron scan task.
type Scheduler struct {
	Cron      *cron.Cron
	Scanner   Scanner
	Watchlist []string
	Ctx       context.Context

	// OnReport receives every finished scan.
	OnReport func(*collector.Report)
}

// NewScheduler creates a new Scheduler. Overlapping runs are skipped.
func NewScheduler(ctx context.Context, scanner Scanner, watchlist []string, onReport func(*collector.Report)) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Scanner:   scanner,
		Watchlist: watchlist,
		OnReport:  onReport,
		Ctx:       ctx,
	}
}

// Register adds the scan task on expr (six-field cron with seconds).
func (s *Scheduler) Register(expr string) error {
	if _, err := s.Cron.AddFunc(expr, func() { s.scanTask() }); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	slog.Info("scan task registered", "cron", expr, "symbols", len(s.Watchlist))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	slog.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// RunScanNow executes the scan task immediately.
func (s *Scheduler) RunScanNow() *collector.Report {
	return s.scanTask()
}

func (s *Scheduler) scanTask() *collector.Report {
	if err := s.Ctx.Err(); err != nil {
		slog.Warn("scan skipped, shutting down", "error", err)
		return nil
	}
	slog.Info("scan task started", "symbols", len(s.Watchlist))
	report := s.Scanner.Scan(s.Ctx, s.Watchlist)
	if s.OnReport != nil {
		s.OnReport(report)
	}
	return report
}
