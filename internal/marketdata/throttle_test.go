package marketdata

import (
	"context"
	"testing"
	"time"
)

func TestIntervalLimiter_SpacesRequests(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var slept []time.Duration

	l := NewIntervalLimiter(1500 * time.Millisecond)
	l.now = func() time.Time { return clock }
	l.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		clock = clock.Add(d)
		return nil
	}

	ctx := context.Background()

	// First request goes through immediately.
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("first request should not sleep, slept %v", slept)
	}

	// Immediate second request waits out the full interval.
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 1 || slept[0] != 1500*time.Millisecond {
		t.Fatalf("expected one 1.5s sleep, got %v", slept)
	}

	// After the interval has elapsed naturally, no wait is needed.
	clock = clock.Add(2 * time.Second)
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 1 {
		t.Fatalf("expected no extra sleep, got %v", slept)
	}
}

func TestIntervalLimiter_CancelledContext(t *testing.T) {
	l := NewIntervalLimiter(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("expected context error while waiting")
	}
}
