package calculator

import (
	"fmt"

	"StreetDash/internal/model"
)

// Standard MACD spans.
const (
	DefaultMACDShort  = 12
	DefaultMACDLong   = 26
	DefaultMACDSignal = 9
)

// MACDHistogram returns the latest MACD line minus its signal line.
// The EMAs start from the first bar, so any non-empty series yields a value;
// readings settle once the series covers long+signal bars.
func MACDHistogram(series model.BarSeries, short, long, signal int) (model.IndicatorValue, error) {
	if short <= 0 || long <= 0 || signal <= 0 {
		return model.Unavailable(), fmt.Errorf("%w: macd spans %d/%d/%d", ErrInvalidWindow, short, long, signal)
	}
	if short >= long {
		return model.Unavailable(), fmt.Errorf("%w: macd short span %d must be below long span %d", ErrInvalidWindow, short, long)
	}
	if series.Len() == 0 {
		return model.Unavailable(), nil
	}

	fast := newEMAState(short)
	slow := newEMAState(long)
	sig := newEMAState(signal)

	var hist float64
	for _, b := range series.Bars {
		line := fast.Push(b.Close) - slow.Push(b.Close)
		hist = line - sig.Push(line)
	}
	return rounded(hist), nil
}
