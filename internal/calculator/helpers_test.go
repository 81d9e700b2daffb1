package calculator

import (
	"math"
	"testing"
	"time"

	"StreetDash/internal/model"
)

var testStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// seriesFromCloses builds daily bars whose open/high/low equal the close.
func seriesFromCloses(closes ...float64) model.BarSeries {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   testStart.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return model.BarSeries{Symbol: "TEST", Bars: bars}
}

func rising(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	return closes
}

func constant(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func assertValue(t *testing.T, label string, got model.IndicatorValue, want float64) {
	t.Helper()
	if !got.Available {
		t.Fatalf("%s: expected %.2f, got N/A", label, want)
	}
	if math.Abs(got.Value-want) > 1e-9 {
		t.Errorf("%s: expected %.4f, got %.4f", label, want, got.Value)
	}
}

func assertUnavailable(t *testing.T, label string, got model.IndicatorValue) {
	t.Helper()
	if got.Available {
		t.Errorf("%s: expected N/A, got %.4f", label, got.Value)
	}
}
