package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// BarSeries holds the ordered bars of one symbol for a single computation call.
// Bars are ascending by Time with no duplicate timestamps.
type BarSeries struct {
	Symbol string
	Bars   []OHLCV
}

// Len returns the number of bars.
func (s BarSeries) Len() int { return len(s.Bars) }

// Closes extracts the close prices in bar order.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Tail returns a series holding at most the last n bars.
func (s BarSeries) Tail(n int) BarSeries {
	if n < 0 {
		n = 0
	}
	if n >= len(s.Bars) {
		return s
	}
	return BarSeries{Symbol: s.Symbol, Bars: s.Bars[len(s.Bars)-n:]}
}

// Last returns the most recent bar and false when the series is empty.
func (s BarSeries) Last() (OHLCV, bool) {
	if len(s.Bars) == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}
