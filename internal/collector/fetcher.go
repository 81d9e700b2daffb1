package collector

import (
	"context"

	"StreetDash/internal/model"
)

// Fetcher loads daily bars from a market-data provider. A symbol with no
// data yields an empty series, not an error.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, limit int) (model.BarSeries, error)
	Name() string
}

// trimTail keeps the most recent limit bars.
func trimTail(bars []model.OHLCV, limit int) []model.OHLCV {
	if limit > 0 && len(bars) > limit {
		return bars[len(bars)-limit:]
	}
	return bars
}
