package calculator

import (
	"errors"
	"math"
	"testing"

	"StreetDash/internal/model"
)

func TestNormalizeBars(t *testing.T) {
	day := func(i int) model.OHLCV {
		return model.OHLCV{Time: testStart.AddDate(0, 0, i), Open: 1, High: 2, Low: 1, Close: float64(i + 1), Volume: 10}
	}
	dup := day(1)
	dup.Close = 99
	null := model.OHLCV{Time: testStart.AddDate(0, 0, 5)}
	bad := day(6)
	bad.Close = math.NaN()
	negative := day(7)
	negative.Volume = -1

	raw := []model.OHLCV{day(3), day(1), null, day(0), dup, bad, day(2), negative}
	got := NormalizeBars("AAPL", raw)

	if got.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %q", got.Symbol)
	}
	wantCloses := []float64{1, 99, 3, 4}
	if got.Len() != len(wantCloses) {
		t.Fatalf("expected %d bars, got %d", len(wantCloses), got.Len())
	}
	for i, c := range got.Closes() {
		if c != wantCloses[i] {
			t.Errorf("bar %d: expected close %v, got %v", i, wantCloses[i], c)
		}
	}
	if err := ValidateSeries(got); err != nil {
		t.Errorf("normalized series should validate: %v", err)
	}
}

func TestNormalizeBars_Empty(t *testing.T) {
	got := NormalizeBars("MSFT", nil)
	if got.Len() != 0 {
		t.Errorf("expected empty series, got %d bars", got.Len())
	}
}

func TestValidateSeries_RejectsDisorder(t *testing.T) {
	series := seriesFromCloses(1, 2, 3)
	series.Bars[2].Time = series.Bars[0].Time
	if err := ValidateSeries(series); !errors.Is(err, ErrUnorderedSeries) {
		t.Errorf("expected ErrUnorderedSeries, got %v", err)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{66.666666, 66.67},
		{-1.125, -1.13},
		{12.344, 12.34},
		{100, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
	if got := Round2(-0.001); got != 0 || math.Signbit(got) {
		t.Errorf("Round2(-0.001): expected +0, got %v", got)
	}
}

func TestRounded_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assertUnavailable(t, "non-finite", rounded(v))
	}
}
