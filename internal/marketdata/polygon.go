package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"TrendSentinel/internal/model"
)

const (
	defaultPolygonBaseURL = "https://api.polygon.io"

	// referenceTicker is the fallback used to resolve the latest trading day
	// when the requested ticker's own previous-close lookup fails.
	referenceTicker = "SPY"
)

// PolygonProvider fetches daily aggregates from the Polygon REST API.
type PolygonProvider struct {
	BaseURL string
	APIKey  string
	Eval    EvalDate
	Client  *http.Client
	Limiter Limiter

	warnNoKey sync.Once
}

// NewPolygonProvider creates a provider with optional proxy support. A nil
// limiter disables throttling.
func NewPolygonProvider(apiKey, proxyURL string, eval EvalDate, limiter Limiter) *PolygonProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &PolygonProvider{
		BaseURL: defaultPolygonBaseURL,
		APIKey:  apiKey,
		Eval:    eval,
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
		Limiter: limiter,
	}
}

func (p *PolygonProvider) Name() string { return "polygon" }

// normalizeTicker rewrites hyphen class suffixes to Polygon's dot convention
// (BRK-B -> BRK.B).
func normalizeTicker(ticker string) string {
	return strings.ReplaceAll(ticker, "-", ".")
}

// polygonAgg is one aggregate row. Price fields are pointers so a missing
// field fails the fetch instead of yielding a partial bar.
type polygonAgg struct {
	Timestamp int64    `json:"t"`
	Open      *float64 `json:"o"`
	High      *float64 `json:"h"`
	Low       *float64 `json:"l"`
	Close     *float64 `json:"c"`
	Volume    *float64 `json:"v"`
}

type polygonAggsResponse struct {
	Status  string       `json:"status"`
	Results []polygonAgg `json:"results"`
}

// Fetch resolves the evaluation end date, then pulls daily aggregates over
// [end - period, end]. All failure modes map to ErrUnavailable.
func (p *PolygonProvider) Fetch(ctx context.Context, ticker string, period model.Period) (*model.PriceSeries, error) {
	if p.APIKey == "" {
		p.warnNoKey.Do(func() {
			log.Println("[WARN] no Polygon API key configured, all fetches unavailable")
		})
		return nil, fmt.Errorf("%w: missing API credential", ErrUnavailable)
	}

	end := p.resolveEndDate(ctx, ticker)
	start := end.AddDate(0, 0, -period.Days())

	tk := normalizeTicker(ticker)
	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/day/%s/%s",
		p.BaseURL, url.PathEscape(tk), start.Format("2006-01-02"), end.Format("2006-01-02"))
	query := url.Values{
		"adjusted": {"true"},
		"sort":     {"asc"},
		"limit":    {"50000"},
		"apiKey":   {p.APIKey},
	}

	var body polygonAggsResponse
	if err := p.getJSON(ctx, endpoint+"?"+query.Encode(), &body); err != nil {
		return nil, fmt.Errorf("%w: %s aggregates: %v", ErrUnavailable, ticker, err)
	}
	if len(body.Results) == 0 {
		log.Printf("[WARN] polygon returned no rows for %s %s~%s (status=%s)",
			ticker, start.Format("2006-01-02"), end.Format("2006-01-02"), body.Status)
		return nil, fmt.Errorf("%w: %s returned no rows", ErrUnavailable, ticker)
	}

	bars := make([]model.PriceBar, 0, len(body.Results))
	for _, agg := range body.Results {
		if agg.Open == nil || agg.High == nil || agg.Low == nil || agg.Close == nil || agg.Volume == nil {
			return nil, fmt.Errorf("%w: %s aggregate row missing price fields", ErrUnavailable, ticker)
		}
		bars = append(bars, model.PriceBar{
			Time:   time.UnixMilli(agg.Timestamp).UTC(),
			Open:   *agg.Open,
			High:   *agg.High,
			Low:    *agg.Low,
			Close:  *agg.Close,
			Volume: *agg.Volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	return &model.PriceSeries{
		Ticker:    ticker,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// resolveEndDate picks the window end: the fixed evaluation date if one is
// pinned, otherwise the latest completed trading session of the ticker,
// falling back to the reference index and finally to the current UTC date.
func (p *PolygonProvider) resolveEndDate(ctx context.Context, ticker string) time.Time {
	if fixed, ok := p.Eval.Fixed(); ok {
		return fixed
	}
	if d, err := p.latestTradingDate(ctx, ticker); err == nil {
		return d
	} else {
		log.Printf("[WARN] latest trading date for %s: %v, trying %s", ticker, err, referenceTicker)
	}
	if d, err := p.latestTradingDate(ctx, referenceTicker); err == nil {
		return d
	} else {
		log.Printf("[WARN] latest trading date for %s: %v, using current date", referenceTicker, err)
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// latestTradingDate resolves the date of the previous completed session via
// the previous-close endpoint.
func (p *PolygonProvider) latestTradingDate(ctx context.Context, ticker string) (time.Time, error) {
	endpoint := fmt.Sprintf("%s/v2/aggs/ticker/%s/prev", p.BaseURL, url.PathEscape(normalizeTicker(ticker)))
	query := url.Values{
		"adjusted": {"true"},
		"apiKey":   {p.APIKey},
	}

	var body polygonAggsResponse
	if err := p.getJSON(ctx, endpoint+"?"+query.Encode(), &body); err != nil {
		return time.Time{}, fmt.Errorf("previous close: %w", err)
	}
	if len(body.Results) == 0 {
		return time.Time{}, fmt.Errorf("previous close: no rows")
	}
	return time.UnixMilli(body.Results[0].Timestamp).UTC().Truncate(24 * time.Hour), nil
}

func (p *PolygonProvider) getJSON(ctx context.Context, rawURL string, out any) error {
	if err := p.Limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
