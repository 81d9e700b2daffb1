package collector

import (
	"context"
	"math"
	"time"

	"StreetDash/internal/calculator"
	"StreetDash/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64

	// Bars, when set, is served for every symbol instead of generated data.
	Bars []model.OHLCV

	// Errors fails the listed symbols.
	Errors map[string]error

	// End anchors generated bars; zero means today.
	End time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, symbol string, limit int) (model.BarSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.BarSeries{}, err
	}
	if err, ok := m.Errors[symbol]; ok {
		return model.BarSeries{}, err
	}
	if m.Bars != nil {
		return calculator.NormalizeBars(symbol, trimTail(m.Bars, limit)), nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return calculator.NormalizeBars(symbol, generateMockBars(m.Price, limit, end)), nil
}

// generateMockBars produces a gentle oscillation around basePrice ending at end.
func generateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.02*math.Sin(float64(i)/7) + float64(i-count/2)*0.0005)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
