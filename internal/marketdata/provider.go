package marketdata

import (
	"context"
	"errors"
	"time"

	"TrendSentinel/internal/model"
)

// ErrUnavailable marks a ticker that cannot be scored right now: missing
// provider credential, zero rows returned, or any transport failure. Callers
// must treat it as skip-and-continue, never as a hard failure.
var ErrUnavailable = errors.New("market data unavailable")

// Provider resolves a trading-day-aligned daily history for one ticker over
// the requested lookback window.
type Provider interface {
	Fetch(ctx context.Context, ticker string, period model.Period) (*model.PriceSeries, error)
	Name() string
}

// EvalDate selects the evaluation end date for every fetch window. Live
// resolves the latest completed trading session at fetch time; FixedAt pins
// the window end so backtests are reproducible.
type EvalDate struct {
	fixed *time.Time
}

// Live evaluates as of the latest completed trading session.
func Live() EvalDate { return EvalDate{} }

// FixedAt pins the evaluation end date.
func FixedAt(t time.Time) EvalDate {
	t = t.UTC().Truncate(24 * time.Hour)
	return EvalDate{fixed: &t}
}

// Fixed reports the pinned end date, if any.
func (e EvalDate) Fixed() (time.Time, bool) {
	if e.fixed == nil {
		return time.Time{}, false
	}
	return *e.fixed, true
}
