package recorder

import "TrendSentinel/internal/model"

// BatchRecord holds all data for one completed scan run.
type BatchRecord struct {
	Period  string
	Results []model.TrendScoreResult
	Summary model.BatchSummary
}

// Recorder persists scan history and the watchlist for analysis.
type Recorder interface {
	RecordBatch(rec *BatchRecord) error
	TopScores(limit int) ([]model.TrendScoreResult, error)
	Watchlist() ([]string, error)
	AddTickers(tickers []string) error
	RemoveTicker(ticker string) error
	Close() error
}
