package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"StreetDash/internal/calculator"
	"StreetDash/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca market-data API.
type AlpacaFetcher struct {
	client *marketdata.Client
	feed   marketdata.Feed
	now    func() time.Time
}

// NewAlpacaFetcher creates a fetcher for the given credentials. baseURL may
// be empty for the production data endpoint; feed is "iex" or "sip".
func NewAlpacaFetcher(apiKey, apiSecret, baseURL, feed string) *AlpacaFetcher {
	if feed == "" {
		feed = "iex"
	}
	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   baseURL,
		Feed:      marketdata.Feed(feed),
	})
	return &AlpacaFetcher{client: client, feed: marketdata.Feed(feed), now: time.Now}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// FetchDailyBars requests a calendar window wide enough to hold limit trading
// days and keeps the most recent limit bars.
func (f *AlpacaFetcher) FetchDailyBars(ctx context.Context, symbol string, limit int) (model.BarSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.BarSeries{}, err
	}
	start := f.now().AddDate(0, 0, -calendarDays(limit))
	bars, err := f.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		Feed:      f.feed,
	})
	if err != nil {
		return model.BarSeries{}, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	out := make([]model.OHLCV, len(bars))
	for i, b := range bars {
		out[i] = model.OHLCV{
			Time:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		}
	}
	series := calculator.NormalizeBars(symbol, out)
	series.Bars = trimTail(series.Bars, limit)
	return series, nil
}

// calendarDays converts a trading-day count into a calendar span with slack
// for weekends and exchange holidays.
func calendarDays(tradingDays int) int {
	return tradingDays*7/5 + 10
}
