package calculator

import (
	"fmt"

	"StreetDash/internal/model"
)

// DefaultVWAPLookback is the number of daily bars VWAP accumulates over.
const DefaultVWAPLookback = 30

// VWAP returns the volume-weighted typical price, cumulated from the start of the
// last lookback bars (or the whole series when shorter) and read at the last bar.
// Zero cumulative volume yields Unavailable.
func VWAP(series model.BarSeries, lookback int) (model.IndicatorValue, error) {
	if lookback <= 0 {
		return model.Unavailable(), fmt.Errorf("%w: vwap lookback %d", ErrInvalidWindow, lookback)
	}
	window := series.Tail(lookback)
	if window.Len() == 0 {
		return model.Unavailable(), nil
	}

	var cumPV, cumVol float64
	for _, b := range window.Bars {
		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * b.Volume
		cumVol += b.Volume
	}
	if cumVol == 0 {
		return model.Unavailable(), nil
	}
	return rounded(cumPV / cumVol), nil
}
