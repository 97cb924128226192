package notifier

import (
	"strings"
	"testing"

	"TrendSentinel/internal/model"
)

func TestFormatBatchReport(t *testing.T) {
	results := []model.TrendScoreResult{
		{Ticker: "AAPL", NormalizedTrendScore: 88.89, MAScore: 3, MACDScore: 2, ADXScore: 2, RSIScore: -1, OBVScore: 1},
		{Ticker: "MSFT", NormalizedTrendScore: 55.56, MAScore: 1},
		{Ticker: "XOM", NormalizedTrendScore: 11.11, MAScore: -3},
	}
	sum := model.BatchSummary{TotalProcessed: 3, HighestScore: 88.89, LowestScore: 11.11, AverageScore: 51.85}

	report := FormatBatchReport("6mo", results, sum, 2)

	for _, want := range []string{"AAPL", "MSFT", "88.89", "🟢", "🟡", "6mo"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	// XOM falls outside topN: only the elision note mentions the rest.
	if strings.Contains(report, "XOM") {
		t.Errorf("report should elide entries beyond topN:\n%s", report)
	}
	if !strings.Contains(report, "MA +3") {
		t.Errorf("report missing indicator breakdown:\n%s", report)
	}
}

func TestFormatBatchReportEmpty(t *testing.T) {
	report := FormatBatchReport("6mo", nil, model.BatchSummary{}, 10)
	if !strings.Contains(report, "无可评分") {
		t.Errorf("empty report missing notice:\n%s", report)
	}
}

func TestFormatResult(t *testing.T) {
	res := &model.TrendScoreResult{
		Ticker: "NVDA", LatestDate: "2024-04-29",
		NormalizedTrendScore: 72.4, WeightedRawScore: 0.933,
		MAScore: 2, MACDScore: 1, ADXScore: 1, RSIScore: 0, OBVScore: 0,
	}
	text := FormatResult(res)
	for _, want := range []string{"NVDA", "72.40", "2024-04-29", "+0.933", "MA: +2"} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}
}

func TestScoreEmoji(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{90, "🟢"}, {70, "🟢"}, {60, "🟡"}, {50, "🟡"}, {40, "🟠"}, {30, "🟠"}, {10, "🔴"},
	}
	for _, tt := range tests {
		if got := scoreEmoji(tt.score); got != tt.want {
			t.Errorf("scoreEmoji(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestSplitMessage(t *testing.T) {
	short := "hello"
	if got := splitMessage(short, 100); len(got) != 1 || got[0] != short {
		t.Errorf("short message should be a single chunk, got %v", got)
	}

	// Long text splits on newline boundaries and loses nothing.
	line := strings.Repeat("x", 30) + "\n"
	long := strings.Repeat(line, 10)
	chunks := splitMessage(long, 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	var rejoined strings.Builder
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d exceeds limit: %d bytes", i, len(c))
		}
		if !strings.HasSuffix(c, "\n") {
			t.Errorf("chunk %d does not end on a line boundary", i)
		}
		rejoined.WriteString(c)
	}
	if rejoined.String() != long {
		t.Error("rejoined chunks differ from the original text")
	}
}
