package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// IndicatorValue is a scalar indicator reading, or Unavailable when the
// series could not fill the required window.
type IndicatorValue struct {
	Value     float64
	Available bool
}

// Available wraps a computed value.
func Available(v float64) IndicatorValue {
	return IndicatorValue{Value: v, Available: true}
}

// Unavailable is the placeholder returned for short or degenerate input.
func Unavailable() IndicatorValue {
	return IndicatorValue{}
}

// Float returns the value and whether it is available.
func (v IndicatorValue) Float() (float64, bool) {
	return v.Value, v.Available
}

func (v IndicatorValue) String() string {
	if !v.Available {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v.Value)
}

func (v IndicatorValue) MarshalJSON() ([]byte, error) {
	if !v.Available {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

func (v *IndicatorValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Unavailable()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Available(f)
	return nil
}

// CrossoverState classifies the short/long SMA relationship at the latest bar.
type CrossoverState string

const (
	CrossoverBullish     CrossoverState = "BULLISH"
	CrossoverBearish     CrossoverState = "BEARISH"
	CrossoverNeutral     CrossoverState = "NEUTRAL"
	CrossoverUnavailable CrossoverState = "UNAVAILABLE"
)

// Label returns the dashboard text for the state.
func (c CrossoverState) Label() string {
	switch c {
	case CrossoverBullish:
		return "Bullish Crossover"
	case CrossoverBearish:
		return "Bearish Crossover"
	case CrossoverNeutral:
		return "No Crossover"
	default:
		return "N/A"
	}
}

// RSIZeroLossPolicy decides the RSI reading when the average loss is zero.
type RSIZeroLossPolicy string

const (
	// ZeroLossLiteral forces rs to 0, so an all-gains window reads RSI 0.
	ZeroLossLiteral RSIZeroLossPolicy = "literal"
	// ZeroLossConventional reads 100 for an all-gains window and 50 for a flat one.
	ZeroLossConventional RSIZeroLossPolicy = "conventional"
)

// Valid reports whether p is a known policy.
func (p RSIZeroLossPolicy) Valid() bool {
	return p == ZeroLossLiteral || p == ZeroLossConventional
}

// IndicatorSet is the result record for one symbol.
type IndicatorSet struct {
	Symbol    string         `json:"symbol"`
	Bars      int            `json:"bars"`
	AsOf      time.Time      `json:"as_of"`
	RSI       IndicatorValue `json:"rsi"`
	MACD      IndicatorValue `json:"macd"`
	VWAP      IndicatorValue `json:"vwap"`
	Crossover CrossoverState `json:"crossover"`
}

// UnavailableSet returns a set with every indicator unavailable.
func UnavailableSet(symbol string) IndicatorSet {
	return IndicatorSet{
		Symbol:    symbol,
		RSI:       Unavailable(),
		MACD:      Unavailable(),
		VWAP:      Unavailable(),
		Crossover: CrossoverUnavailable,
	}
}
