package marketdata

import (
	"context"
	"time"

	"TrendSentinel/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	BasePrice float64
	Series    map[string][]model.PriceBar // per-ticker canned bars, optional
	Err       error                       // returned for every fetch when set
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Fetch(_ context.Context, ticker string, period model.Period) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Series[ticker]
	if bars == nil {
		bars = GenerateMockBars(m.BasePrice, period.Days())
	}
	return &model.PriceSeries{
		Ticker:    ticker,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// GenerateMockBars produces a gently trending synthetic daily series.
func GenerateMockBars(basePrice float64, count int) []model.PriceBar {
	if basePrice == 0 {
		basePrice = 100
	}
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Time:   time.Now().UTC().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
