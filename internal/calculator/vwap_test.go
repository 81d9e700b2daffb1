package calculator

import (
	"errors"
	"testing"

	"StreetDash/internal/model"
)

func hlcv(i int, high, low, close, volume float64) model.OHLCV {
	return model.OHLCV{Time: testStart.AddDate(0, 0, i), Open: close, High: high, Low: low, Close: close, Volume: volume}
}

func TestVWAP_ConstantTypicalPrice(t *testing.T) {
	// Every bar's (H+L+C)/3 is 10; volume distribution must not matter.
	series := model.BarSeries{Symbol: "TEST", Bars: []model.OHLCV{
		hlcv(0, 12, 8, 10, 100),
		hlcv(1, 11, 9, 10, 5000),
		hlcv(2, 10.5, 9, 10.5, 1),
		hlcv(3, 13, 7, 10, 0),
		hlcv(4, 11, 9, 10, 250),
	}}
	got, err := VWAP(series, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValue(t, "constant typical", got, 10)
}

func TestVWAP_HandComputed(t *testing.T) {
	series := model.BarSeries{Symbol: "TEST", Bars: []model.OHLCV{
		hlcv(0, 12, 6, 9, 100),  // typical 9
		hlcv(1, 15, 9, 12, 300), // typical 12
	}}
	got, _ := VWAP(series, 30)
	assertValue(t, "two bars", got, 11.25)
}

func TestVWAP_LookbackResetsAccumulation(t *testing.T) {
	series := model.BarSeries{Symbol: "TEST", Bars: []model.OHLCV{
		hlcv(0, 100, 100, 100, 1000),
		hlcv(1, 10, 10, 10, 100),
		hlcv(2, 20, 20, 20, 100),
	}}
	got, _ := VWAP(series, 2)
	assertValue(t, "lookback 2", got, 15)

	// (100000 + 1000 + 2000) / 1200
	got, _ = VWAP(series, 30)
	assertValue(t, "whole series", got, 85.83)
}

func TestVWAP_ZeroVolume(t *testing.T) {
	series := model.BarSeries{Symbol: "TEST", Bars: []model.OHLCV{hlcv(0, 11, 9, 10, 0)}}
	got, err := VWAP(series, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertUnavailable(t, "zero volume", got)
}

func TestVWAP_Empty(t *testing.T) {
	got, err := VWAP(model.BarSeries{}, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertUnavailable(t, "empty", got)
}

func TestVWAP_InvalidLookback(t *testing.T) {
	if _, err := VWAP(seriesFromCloses(1, 2, 3), 0); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
}
