package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"StreetDash/internal/calculator"
	"StreetDash/internal/model"
)

// ParquetBar is the on-disk row of a bar file.
type ParquetBar struct {
	Timestamp int64   `parquet:"t"` // Unix milliseconds
	Open      float64 `parquet:"o"`
	High      float64 `parquet:"h"`
	Low       float64 `parquet:"l"`
	Close     float64 `parquet:"c"`
	Volume    float64 `parquet:"v"`
}

// ParquetFetcher reads <Dir>/<SYMBOL>.parquet files for offline use.
type ParquetFetcher struct {
	Dir string
}

func NewParquetFetcher(dir string) *ParquetFetcher {
	return &ParquetFetcher{Dir: dir}
}

func (f *ParquetFetcher) Name() string { return "parquet" }

func (f *ParquetFetcher) path(symbol string) string {
	return filepath.Join(f.Dir, strings.ToUpper(symbol)+".parquet")
}

func (f *ParquetFetcher) FetchDailyBars(ctx context.Context, symbol string, limit int) (model.BarSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.BarSeries{}, err
	}
	path := f.path(symbol)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return model.BarSeries{Symbol: symbol}, nil
	}
	rows, err := parquet.ReadFile[ParquetBar](path)
	if err != nil {
		return model.BarSeries{}, fmt.Errorf("read parquet %s: %w", symbol, err)
	}

	bars := make([]model.OHLCV, len(rows))
	for i, r := range rows {
		bars[i] = model.OHLCV{
			Time:   time.UnixMilli(r.Timestamp).UTC(),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		}
	}
	series := calculator.NormalizeBars(symbol, bars)
	series.Bars = trimTail(series.Bars, limit)
	return series, nil
}

// WriteParquetBars stores series as a bar file under dir, creating it if needed.
func WriteParquetBars(dir string, series model.BarSeries) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	rows := make([]ParquetBar, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = ParquetBar{
			Timestamp: b.Time.UnixMilli(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		}
	}
	return parquet.WriteFile(filepath.Join(dir, strings.ToUpper(series.Symbol)+".parquet"), rows)
}
