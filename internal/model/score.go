package model

// Indicator score ranges. The per-indicator integers always stay inside
// these bounds, which puts the raw sum in [-9, 9].
const (
	MAScoreMin, MAScoreMax     = -3, 3
	MACDScoreMin, MACDScoreMax = -2, 2
	ADXScoreMin, ADXScoreMax   = -2, 2
	RSIScoreMin, RSIScoreMax   = -1, 1
	OBVScoreMin, OBVScoreMax   = -1, 1
)

// TrendScoreResult is the scoring output for one ticker. It is created once
// per (ticker, period, evaluation date) and never mutated afterwards.
type TrendScoreResult struct {
	Ticker               string  `json:"ticker"`
	LatestDate           string  `json:"latest_date"`
	NormalizedTrendScore float64 `json:"normalized_trend_score"`
	WeightedRawScore     float64 `json:"weighted_raw_score"`
	MAScore              int     `json:"ma_score"`
	MACDScore            int     `json:"macd_score"`
	ADXScore             int     `json:"adx_score"`
	RSIScore             int     `json:"rsi_score"`
	OBVScore             int     `json:"obv_score"`
}

// BatchSummary aggregates the normalized scores of a ranked batch.
type BatchSummary struct {
	TotalProcessed int     `json:"total_processed"`
	HighestScore   float64 `json:"highest_score"`
	LowestScore    float64 `json:"lowest_score"`
	AverageScore   float64 `json:"average_score"`
}
