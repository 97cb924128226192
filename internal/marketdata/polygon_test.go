package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TrendSentinel/internal/model"
)

func testProvider(t *testing.T, handler http.HandlerFunc, eval EvalDate) *PolygonProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &PolygonProvider{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Eval:    eval,
		Client:  srv.Client(),
		Limiter: NopLimiter{},
	}
}

func aggRow(day time.Time, o, h, l, c, v float64) string {
	return fmt.Sprintf(`{"t":%d,"o":%f,"h":%f,"l":%f,"c":%f,"v":%f}`,
		day.UnixMilli(), o, h, l, c, v)
}

func TestPolygonFetch_ParsesAndSortsBars(t *testing.T) {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d1 := end.AddDate(0, 0, -2)
	d2 := end.AddDate(0, 0, -1)

	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// Deliberately out of order; the provider must sort ascending.
		fmt.Fprintf(w, `{"status":"OK","results":[%s,%s]}`,
			aggRow(d2, 11, 12, 10, 11.5, 2000),
			aggRow(d1, 10, 11, 9, 10.5, 1000))
	}, FixedAt(end))

	series, err := p.Fetch(context.Background(), "AAPL", model.Period6Mo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Len() != 2 {
		t.Fatalf("expected 2 bars, got %d", series.Len())
	}
	if !series.Bars[0].Time.Before(series.Bars[1].Time) {
		t.Error("bars not sorted ascending by date")
	}
	if series.Bars[0].Close != 10.5 || series.Bars[1].Volume != 2000 {
		t.Errorf("bars decoded incorrectly: %+v", series.Bars)
	}
	if series.Ticker != "AAPL" {
		t.Errorf("expected ticker AAPL, got %s", series.Ticker)
	}
}

func TestPolygonFetch_NormalizesClassSuffix(t *testing.T) {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var gotPath string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, aggRow(end, 1, 1, 1, 1, 1))
	}, FixedAt(end))

	if _, err := p.Fetch(context.Background(), "BRK-B", model.Period6Mo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotPath, "BRK.B") {
		t.Errorf("expected dot-normalized ticker in path, got %s", gotPath)
	}
}

func TestPolygonFetch_WindowFromFixedEndDate(t *testing.T) {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var gotPath string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, aggRow(end, 1, 1, 1, 1, 1))
	}, FixedAt(end))

	if _, err := p.Fetch(context.Background(), "AAPL", model.Period1Mo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1mo maps to a 31-day lookback from the pinned end date.
	if !strings.Contains(gotPath, "/range/1/day/2024-01-30/2024-03-01") {
		t.Errorf("unexpected window in path: %s", gotPath)
	}
}

func TestPolygonFetch_LiveEndDateFallsBackToReference(t *testing.T) {
	prevDay := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	var rangePath string
	p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/prev") && strings.Contains(r.URL.Path, referenceTicker):
			fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, aggRow(prevDay, 1, 1, 1, 1, 1))
		case strings.HasSuffix(r.URL.Path, "/prev"):
			// The ticker's own previous-close lookup fails.
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		default:
			rangePath = r.URL.Path
			fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, aggRow(prevDay, 1, 1, 1, 1, 1))
		}
	}, Live())

	if _, err := p.Fetch(context.Background(), "AAPL", model.Period1Mo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(rangePath, "/2024-02-29") {
		t.Errorf("expected window end from reference previous close, got %s", rangePath)
	}
}

func TestPolygonFetch_Unavailable(t *testing.T) {
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("missing credential", func(t *testing.T) {
		p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected without a credential")
		}, FixedAt(end))
		p.APIKey = ""
		if _, err := p.Fetch(context.Background(), "AAPL", model.Period6Mo); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("zero rows", func(t *testing.T) {
		p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status":"OK","results":[]}`)
		}, FixedAt(end))
		if _, err := p.Fetch(context.Background(), "AAPL", model.Period6Mo); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, FixedAt(end))
		if _, err := p.Fetch(context.Background(), "AAPL", model.Period6Mo); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("partial bar", func(t *testing.T) {
		p := testProvider(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"status":"OK","results":[{"t":%d,"o":1,"h":1,"l":1,"v":1}]}`, end.UnixMilli())
		}, FixedAt(end))
		if _, err := p.Fetch(context.Background(), "AAPL", model.Period6Mo); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable for missing close, got %v", err)
		}
	})
}
