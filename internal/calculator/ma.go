package calculator

import (
	"errors"
	"fmt"

	"StreetDash/internal/model"
)

// ErrInvalidWindow is returned for non-positive or inverted window parameters.
var ErrInvalidWindow = errors.New("invalid indicator window")

// Standard golden/death cross windows.
const (
	DefaultSMAShort = 50
	DefaultSMALong  = 200
)

// SMA returns the trailing simple moving average of close over period bars.
func SMA(series model.BarSeries, period int) (model.IndicatorValue, error) {
	mean, ok, err := trailingMean(series, period)
	if err != nil || !ok {
		return model.Unavailable(), err
	}
	return rounded(mean), nil
}

// SMACrossover classifies the short SMA against the long SMA at the latest bar.
// Requires at least long bars. Ties compare exactly and read Neutral.
func SMACrossover(series model.BarSeries, short, long int) (model.CrossoverState, error) {
	if short <= 0 || long <= 0 {
		return model.CrossoverUnavailable, fmt.Errorf("%w: sma windows %d/%d", ErrInvalidWindow, short, long)
	}
	if short >= long {
		return model.CrossoverUnavailable, fmt.Errorf("%w: sma short window %d must be below long window %d", ErrInvalidWindow, short, long)
	}
	if series.Len() < long {
		return model.CrossoverUnavailable, nil
	}

	fast, okFast, _ := trailingMean(series, short)
	slow, okSlow, _ := trailingMean(series, long)
	if !okFast || !okSlow {
		return model.CrossoverUnavailable, nil
	}

	switch {
	case fast > slow:
		return model.CrossoverBullish, nil
	case fast < slow:
		return model.CrossoverBearish, nil
	default:
		return model.CrossoverNeutral, nil
	}
}

func trailingMean(series model.BarSeries, period int) (float64, bool, error) {
	if period <= 0 {
		return 0, false, fmt.Errorf("%w: sma period %d", ErrInvalidWindow, period)
	}
	if series.Len() < period {
		return 0, false, nil
	}
	w := newRollingWindow(period)
	for _, b := range series.Tail(period).Bars {
		w.Push(b.Close)
	}
	mean, ok := w.Mean()
	return mean, ok, nil
}
