package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"StreetDash/internal/model"
)

// ErrUnorderedSeries is returned when bars are not strictly ascending by time.
var ErrUnorderedSeries = errors.New("bar series is not strictly ascending")

// NormalizeBars turns raw provider bars into a BarSeries: ascending by time,
// one bar per timestamp (the last one wins), with null and malformed rows dropped.
// Calendar gaps are kept as-is.
func NormalizeBars(symbol string, raw []model.OHLCV) model.BarSeries {
	bars := make([]model.OHLCV, 0, len(raw))
	for _, b := range raw {
		if !usableBar(b) {
			continue
		}
		bars = append(bars, b)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return model.BarSeries{Symbol: symbol, Bars: out}
}

// ValidateSeries checks the ordering contract the calculators rely on.
func ValidateSeries(s model.BarSeries) error {
	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("%w: %s bar %d at %s follows %s", ErrUnorderedSeries, s.Symbol, i,
				s.Bars[i].Time.Format("2006-01-02"), s.Bars[i-1].Time.Format("2006-01-02"))
		}
	}
	return nil
}

func usableBar(b model.OHLCV) bool {
	if b.Time.IsZero() {
		return false
	}
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0 {
		return false // holiday / null rows
	}
	return b.Volume >= 0
}
