// Package engine runs the four indicator calculators for one symbol.
package engine

import (
	"fmt"
	"log/slog"

	"StreetDash/internal/calculator"
	"StreetDash/internal/model"
)

// Config holds the indicator windows and the RSI zero-loss policy.
type Config struct {
	RSIWindow    int
	MACDShort    int
	MACDLong     int
	MACDSignal   int
	VWAPLookback int
	SMAShort     int
	SMALong      int
	ZeroLoss     model.RSIZeroLossPolicy
}

// DefaultConfig returns the dashboard's standard windows.
func DefaultConfig() Config {
	return Config{
		RSIWindow:    calculator.DefaultRSIWindow,
		MACDShort:    calculator.DefaultMACDShort,
		MACDLong:     calculator.DefaultMACDLong,
		MACDSignal:   calculator.DefaultMACDSignal,
		VWAPLookback: calculator.DefaultVWAPLookback,
		SMAShort:     calculator.DefaultSMAShort,
		SMALong:      calculator.DefaultSMALong,
		ZeroLoss:     model.ZeroLossLiteral,
	}
}

// Validate checks every window once so Evaluate never sees bad parameters.
func (c Config) Validate() error {
	empty := model.BarSeries{}
	if _, err := calculator.RSI(empty, c.RSIWindow, c.ZeroLoss); err != nil {
		return fmt.Errorf("rsi: %w", err)
	}
	if _, err := calculator.MACDHistogram(empty, c.MACDShort, c.MACDLong, c.MACDSignal); err != nil {
		return fmt.Errorf("macd: %w", err)
	}
	if _, err := calculator.VWAP(empty, c.VWAPLookback); err != nil {
		return fmt.Errorf("vwap: %w", err)
	}
	if _, err := calculator.SMACrossover(empty, c.SMAShort, c.SMALong); err != nil {
		return fmt.Errorf("sma crossover: %w", err)
	}
	return nil
}

// Window-size policy: each indicator reads only the trailing bars it is
// defined over, so one fetch of BarsNeeded bars serves all four.
func (c Config) rsiBars() int       { return c.RSIWindow + 1 }
func (c Config) macdBars() int      { return c.MACDLong + c.MACDSignal }
func (c Config) vwapBars() int      { return c.VWAPLookback }
func (c Config) crossoverBars() int { return c.SMALong + 1 }

// Engine evaluates indicator sets. It holds no per-call state and is safe
// for concurrent use.
type Engine struct {
	cfg Config
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// BarsNeeded is the bar count a provider should fetch for one Evaluate call.
func (e *Engine) BarsNeeded() int {
	n := e.cfg.rsiBars()
	for _, m := range []int{e.cfg.macdBars(), e.cfg.vwapBars(), e.cfg.crossoverBars()} {
		if m > n {
			n = m
		}
	}
	return n
}

// Evaluate computes RSI, MACD histogram, VWAP and the SMA crossover state for
// one symbol. Short series yield Unavailable readings, never errors.
func (e *Engine) Evaluate(symbol string, series model.BarSeries) model.IndicatorSet {
	set := model.UnavailableSet(symbol)
	set.Bars = series.Len()
	if last, ok := series.Last(); ok {
		set.AsOf = last.Time
	}

	if err := calculator.ValidateSeries(series); err != nil {
		slog.Error("rejecting bar series", "symbol", symbol, "error", err)
		return set
	}

	// Parameters were validated in New; errors here cannot occur.
	set.RSI, _ = calculator.RSI(series.Tail(e.cfg.rsiBars()), e.cfg.RSIWindow, e.cfg.ZeroLoss)
	set.MACD, _ = calculator.MACDHistogram(series.Tail(e.cfg.macdBars()), e.cfg.MACDShort, e.cfg.MACDLong, e.cfg.MACDSignal)
	set.VWAP, _ = calculator.VWAP(series.Tail(e.cfg.vwapBars()), e.cfg.VWAPLookback)
	set.Crossover, _ = calculator.SMACrossover(series.Tail(e.cfg.crossoverBars()), e.cfg.SMAShort, e.cfg.SMALong)

	return set
}
