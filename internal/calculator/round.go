package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"StreetDash/internal/model"
)

// rounded converts a raw result into a 2-decimal reading. Non-finite input
// becomes Unavailable.
func rounded(v float64) model.IndicatorValue {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return model.Unavailable()
	}
	return model.Available(Round2(v))
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
