package recorder

import "TrendSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordBatch(_ *BatchRecord) error { return nil }
func (n *NoopRecorder) TopScores(_ int) ([]model.TrendScoreResult, error) {
	return nil, nil
}
func (n *NoopRecorder) Watchlist() ([]string, error)     { return nil, nil }
func (n *NoopRecorder) AddTickers(_ []string) error      { return nil }
func (n *NoopRecorder) RemoveTicker(_ string) error      { return nil }
func (n *NoopRecorder) Close() error                     { return nil }
