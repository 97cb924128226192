package scoring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"TrendSentinel/internal/marketdata"
	"TrendSentinel/internal/model"
)

// minBars is the engine-level floor: every produced result used a stabilized
// MA50 at minimum, which is stricter than any individual scorer's guard.
const minBars = 50

// ErrInsufficientData marks a ticker whose history is too short to score.
var ErrInsufficientData = errors.New("insufficient price history")

// ErrNoResults marks a batch in which no ticker could be scored. It is
// distinct from a batch of zero scores.
var ErrNoResults = errors.New("no tickers could be scored")

// Engine orchestrates fetch -> five scorers -> aggregation. It holds no
// mutable state; every call is a pure function of its inputs and the
// provider's data.
type Engine struct {
	provider marketdata.Provider
}

// NewEngine creates a scoring engine on top of the given data provider.
func NewEngine(provider marketdata.Provider) *Engine {
	return &Engine{provider: provider}
}

// ScoreOne fetches the ticker's history and computes its trend score. All
// five scorers run against the same series snapshot, and the result is
// tagged with the series' last bar date.
func (e *Engine) ScoreOne(ctx context.Context, ticker string, period model.Period) (*model.TrendScoreResult, error) {
	series, err := e.provider.Fetch(ctx, ticker, period)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	if series == nil {
		return nil, fmt.Errorf("%w: %s returned no series", ErrInsufficientData, ticker)
	}
	if series.Len() < minBars {
		return nil, fmt.Errorf("%w: %s has %d bars, need %d", ErrInsufficientData, ticker, series.Len(), minBars)
	}

	ma := safeScore("MA", func() int { return scoreMA(series) })
	macd := safeScore("MACD", func() int { return scoreMACD(series) })
	adx := safeScore("ADX", func() int { return scoreADX(series) })
	rsi := safeScore("RSI", func() int { return scoreRSI(series) })
	obv := safeScore("OBV", func() int { return scoreOBV(series) })

	raw, normalized := aggregate(ma, macd, adx, rsi, obv)

	return &model.TrendScoreResult{
		Ticker:               ticker,
		LatestDate:           series.LastBar().Time.Format("2006-01-02"),
		NormalizedTrendScore: normalized,
		WeightedRawScore:     raw,
		MAScore:              ma,
		MACDScore:            macd,
		ADXScore:             adx,
		RSIScore:             rsi,
		OBVScore:             obv,
	}, nil
}

// ScoreBatch scores the tickers sequentially, skipping any that cannot be
// scored, and returns the survivors ranked by normalized score descending
// (ties keep first-seen order). Cancelling ctx flushes the partial ranked
// results together with ctx.Err().
func (e *Engine) ScoreBatch(ctx context.Context, tickers []string, period model.Period) ([]model.TrendScoreResult, error) {
	results := make([]model.TrendScoreResult, 0, len(tickers))

	for i, ticker := range tickers {
		select {
		case <-ctx.Done():
			log.Printf("[WARN] batch cancelled after %d/%d tickers", i, len(tickers))
			rankResults(results)
			return results, ctx.Err()
		default:
		}

		log.Printf("[INFO] scoring %d/%d: %s", i+1, len(tickers), ticker)
		res, err := e.ScoreOne(ctx, ticker, period)
		if err != nil {
			log.Printf("[WARN] skipping %s: %v", ticker, err)
			continue
		}
		results = append(results, *res)
	}

	rankResults(results)
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

func rankResults(results []model.TrendScoreResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].NormalizedTrendScore > results[j].NormalizedTrendScore
	})
}

// Summarize derives the batch summary over the surviving result set.
func Summarize(results []model.TrendScoreResult) model.BatchSummary {
	if len(results) == 0 {
		return model.BatchSummary{}
	}
	sum := model.BatchSummary{
		TotalProcessed: len(results),
		HighestScore:   results[0].NormalizedTrendScore,
		LowestScore:    results[0].NormalizedTrendScore,
	}
	var total float64
	for _, r := range results {
		if r.NormalizedTrendScore > sum.HighestScore {
			sum.HighestScore = r.NormalizedTrendScore
		}
		if r.NormalizedTrendScore < sum.LowestScore {
			sum.LowestScore = r.NormalizedTrendScore
		}
		total += r.NormalizedTrendScore
	}
	sum.AverageScore = total / float64(len(results))
	return sum
}

// safeScore runs one scorer and maps any panic to the neutral score, so a
// single misbehaving indicator can never abort a scoring pass.
func safeScore(name string, fn func() int) (score int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] %s scorer panicked: %v, using neutral score", name, r)
			score = 0
		}
	}()
	return fn()
}
