package marketdata

import (
	"context"
	"sync"
	"time"
)

// Limiter throttles outbound provider requests so batch runs stay inside the
// provider's rate ceiling.
type Limiter interface {
	Wait(ctx context.Context) error
}

// IntervalLimiter enforces a fixed minimum spacing between requests. The
// clock and sleep functions are injectable so the limit is testable without
// real sleeps.
type IntervalLimiter struct {
	interval time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error

	mu   sync.Mutex
	last time.Time
}

// NewIntervalLimiter creates a limiter with the given minimum spacing.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	return &IntervalLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wait blocks until the minimum interval since the previous request has
// elapsed, or until ctx is cancelled.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := l.now()
	wait := l.interval - now.Sub(l.last)
	if wait < 0 {
		wait = 0
	}
	l.last = now.Add(wait)
	l.mu.Unlock()

	if wait == 0 {
		return nil
	}
	return l.sleep(ctx, wait)
}

// NopLimiter performs no throttling. Used for tests and offline providers.
type NopLimiter struct{}

func (NopLimiter) Wait(ctx context.Context) error { return ctx.Err() }
