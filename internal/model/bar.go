package model

import "time"

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the trading-day-aligned daily history for one ticker.
// Bars are ordered by strictly increasing date; weekends and holidays are
// simply absent rather than filled.
type PriceSeries struct {
	Ticker    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// LastBar returns the most recent bar. Callers must check Len first.
func (s *PriceSeries) LastBar() PriceBar { return s.Bars[len(s.Bars)-1] }

// Closes extracts the close column in bar order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
