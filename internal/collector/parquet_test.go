package collector

import (
	"context"
	"testing"

	"StreetDash/internal/calculator"
)

func TestParquetFetcher_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := (&MockFetcher{Price: 42, End: testEnd})
	series, err := src.FetchDailyBars(context.Background(), "MSFT", 60)
	if err != nil {
		t.Fatalf("mock fetch: %v", err)
	}
	if err := WriteParquetBars(dir, series); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	f := NewParquetFetcher(dir)
	got, err := f.FetchDailyBars(context.Background(), "msft", 30)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if got.Len() != 30 {
		t.Fatalf("expected 30 bars, got %d", got.Len())
	}
	want := series.Bars[len(series.Bars)-1]
	last, _ := got.Last()
	if !last.Time.Equal(want.Time) || last.Close != want.Close {
		t.Errorf("expected last bar %+v, got %+v", want, last)
	}
}

func TestParquetFetcher_KeepsFractionalVolume(t *testing.T) {
	dir := t.TempDir()
	series, err := (&MockFetcher{Price: 64000, End: testEnd}).FetchDailyBars(context.Background(), "BTC-USD", 40)
	if err != nil {
		t.Fatalf("mock fetch: %v", err)
	}
	for i := range series.Bars {
		series.Bars[i].Volume = 1234.5678 + float64(i)*0.25
	}
	if err := WriteParquetBars(dir, series); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	got, err := NewParquetFetcher(dir).FetchDailyBars(context.Background(), "BTC-USD", 40)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if got.Len() != series.Len() {
		t.Fatalf("expected %d bars, got %d", series.Len(), got.Len())
	}
	for i, b := range got.Bars {
		if b.Volume != series.Bars[i].Volume {
			t.Fatalf("bar %d: expected volume %v, got %v", i, series.Bars[i].Volume, b.Volume)
		}
	}
	wantVWAP, _ := calculator.VWAP(series, 30)
	gotVWAP, _ := calculator.VWAP(got, 30)
	if wantVWAP != gotVWAP {
		t.Errorf("expected VWAP %s after round trip, got %s", wantVWAP, gotVWAP)
	}
}

func TestParquetFetcher_MissingFile(t *testing.T) {
	series, err := NewParquetFetcher(t.TempDir()).FetchDailyBars(context.Background(), "NONE", 30)
	if err != nil {
		t.Fatalf("missing file should be an empty series, got %v", err)
	}
	if series.Len() != 0 {
		t.Errorf("expected 0 bars, got %d", series.Len())
	}
}
