// Package metrics exposes Prometheus instrumentation for scans and providers.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"StreetDash/internal/model"
)

// Metrics holds every collector registered by the application. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	ScanSymbols          *prometheus.CounterVec   // labels: outcome
	ProviderFetchDur     *prometheus.HistogramVec // labels: provider
	ProviderRetries      *prometheus.CounterVec   // labels: provider
	IndicatorUnavailable *prometheus.CounterVec   // labels: indicator
	ScanDuration         prometheus.Histogram
	LastScan             prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		ScanSymbols: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streetdash_scan_symbols_total",
			Help: "Symbols evaluated by scans, by outcome",
		}, []string{"outcome"}),
		ProviderFetchDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streetdash_provider_fetch_duration_seconds",
			Help:    "Latency of daily-bar fetches",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ProviderRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streetdash_provider_retries_total",
			Help: "Fetch attempts retried after a provider error",
		}, []string{"provider"}),
		IndicatorUnavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "streetdash_indicator_unavailable_total",
			Help: "Indicator readings that could not be computed",
		}, []string{"indicator"}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "streetdash_scan_duration_seconds",
			Help:    "Wall time of a full watchlist scan",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		LastScan: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "streetdash_last_scan_timestamp_seconds",
			Help: "Unix time of the last completed scan",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ScanSymbols,
		m.ProviderFetchDur,
		m.ProviderRetries,
		m.IndicatorUnavailable,
		m.ScanDuration,
		m.LastScan,
	)
	return m
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveFetch records one provider call.
func (m *Metrics) ObserveFetch(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderFetchDur.WithLabelValues(provider).Observe(d.Seconds())
}

// IncRetry counts a retried provider call.
func (m *Metrics) IncRetry(provider string) {
	if m == nil {
		return
	}
	m.ProviderRetries.WithLabelValues(provider).Inc()
}

// ObserveSet counts a symbol outcome and any unavailable readings in set.
func (m *Metrics) ObserveSet(set model.IndicatorSet) {
	if m == nil {
		return
	}
	m.ScanSymbols.WithLabelValues("ok").Inc()
	if !set.RSI.Available {
		m.IndicatorUnavailable.WithLabelValues("rsi").Inc()
	}
	if !set.MACD.Available {
		m.IndicatorUnavailable.WithLabelValues("macd").Inc()
	}
	if !set.VWAP.Available {
		m.IndicatorUnavailable.WithLabelValues("vwap").Inc()
	}
	if set.Crossover == model.CrossoverUnavailable {
		m.IndicatorUnavailable.WithLabelValues("sma_crossover").Inc()
	}
}

// IncFailed counts a symbol that could not be evaluated.
func (m *Metrics) IncFailed() {
	if m == nil {
		return
	}
	m.ScanSymbols.WithLabelValues("failed").Inc()
}

// ObserveScan records a finished scan.
func (m *Metrics) ObserveScan(d time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.ScanDuration.Observe(d.Seconds())
	m.LastScan.Set(float64(finished.Unix()))
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown", "error", err)
		}
	}()

	slog.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
