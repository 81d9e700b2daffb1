package calculator

import (
	"fmt"

	"StreetDash/internal/model"
)

// DefaultRSIWindow is the standard 14-bar lookback.
const DefaultRSIWindow = 14

// RSI computes the relative strength index over the last window close-to-close
// changes. Average gain and loss are plain means of the trailing window (not
// Wilder's recursive smoothing). Requires at least window+1 bars.
//
// When the average loss is zero the reading follows policy: ZeroLossLiteral
// forces rs to 0 (an all-gains window reads 0), ZeroLossConventional reads 100,
// or 50 when the window is completely flat.
func RSI(series model.BarSeries, window int, policy model.RSIZeroLossPolicy) (model.IndicatorValue, error) {
	if window <= 0 {
		return model.Unavailable(), fmt.Errorf("%w: rsi window %d", ErrInvalidWindow, window)
	}
	if !policy.Valid() {
		return model.Unavailable(), fmt.Errorf("unknown rsi zero-loss policy %q", policy)
	}
	if series.Len() < window+1 {
		return model.Unavailable(), nil
	}

	gains := newRollingWindow(window)
	losses := newRollingWindow(window)
	bars := series.Bars
	for i := 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		gains.Push(gain)
		losses.Push(loss)
	}

	avgGain, okGain := gains.Mean()
	avgLoss, okLoss := losses.Mean()
	if !okGain || !okLoss {
		return model.Unavailable(), nil
	}

	if avgLoss == 0 {
		switch policy {
		case model.ZeroLossConventional:
			if avgGain == 0 {
				return rounded(50), nil
			}
			return rounded(100), nil
		default:
			return rounded(rsiFromRS(0)), nil
		}
	}
	return rounded(rsiFromRS(avgGain / avgLoss)), nil
}

func rsiFromRS(rs float64) float64 {
	return 100.0 - 100.0/(1.0+rs)
}
