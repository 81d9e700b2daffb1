package calculator

import (
	"errors"
	"testing"
)

func TestMACDHistogram_FlatSeriesIsZero(t *testing.T) {
	for _, n := range []int{1, 35, 120} {
		got, err := MACDHistogram(seriesFromCloses(constant(n, 187.31)...), 12, 26, 9)
		if err != nil {
			t.Fatalf("%d bars: unexpected error: %v", n, err)
		}
		assertValue(t, "flat", got, 0)
	}
}

func TestMACDHistogram_Empty(t *testing.T) {
	got, err := MACDHistogram(seriesFromCloses(), 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertUnavailable(t, "empty", got)
}

func TestMACDHistogram_HandComputed(t *testing.T) {
	// spans 1/3/3: fast EMA is the close, slow and signal use alpha 0.5.
	//   close  fast  slow   line   signal  hist
	//   10     10    10     0      0       0
	//   12     12    11     1      0.5     0.5
	//   14     14    12.5   1.5    1.0     0.5
	//   10     10    11.25  -1.25  -0.125  -1.125
	got, err := MACDHistogram(seriesFromCloses(10, 12, 14), 1, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValue(t, "three bars", got, 0.5)

	got, _ = MACDHistogram(seriesFromCloses(10, 12, 14, 10), 1, 3, 3)
	assertValue(t, "four bars", got, -1.13)
}

func TestMACDHistogram_TrendSign(t *testing.T) {
	up, _ := MACDHistogram(seriesFromCloses(append(constant(40, 100), rising(10)...)...), 12, 26, 9)
	if !up.Available || up.Value <= 0 {
		t.Errorf("expected positive histogram after a breakout, got %s", up)
	}
}

func TestMACDHistogram_InvalidSpans(t *testing.T) {
	series := seriesFromCloses(rising(40)...)
	for _, spans := range [][3]int{{0, 26, 9}, {12, 26, 0}, {26, 12, 9}, {12, 12, 9}} {
		if _, err := MACDHistogram(series, spans[0], spans[1], spans[2]); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("spans %v: expected ErrInvalidWindow, got %v", spans, err)
		}
	}
}
