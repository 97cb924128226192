package notifier

import (
	"fmt"
	"strings"
	"time"

	"TrendSentinel/internal/model"
)

// FormatBatchReport formats a completed scan run into a Telegram message.
// Results are expected in rank order; only the top topN entries get the
// per-indicator breakdown.
func FormatBatchReport(period string, results []model.TrendScoreResult, sum model.BatchSummary, topN int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>TrendSentinel 趋势扫描</b> | %s\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("周期: %s | 标的: %d\n\n", period, sum.TotalProcessed))

	if len(results) == 0 {
		b.WriteString("本轮无可评分标的 ⚠️\n")
		return b.String()
	}

	b.WriteString("🏆 <b>趋势排行:</b>\n")
	for i, r := range results {
		if i >= topN {
			b.WriteString(fmt.Sprintf("\n... 其余 %d 个标的从略\n", len(results)-topN))
			break
		}
		b.WriteString(fmt.Sprintf("%2d. <b>%s</b>  %s %.2f\n", i+1, r.Ticker, scoreEmoji(r.NormalizedTrendScore), r.NormalizedTrendScore))
		b.WriteString(fmt.Sprintf("    MA %+d | MACD %+d | ADX %+d | RSI %+d | OBV %+d\n",
			r.MAScore, r.MACDScore, r.ADXScore, r.RSIScore, r.OBVScore))
	}

	b.WriteString("\n📈 <b>批次统计:</b>\n")
	b.WriteString(fmt.Sprintf("最高: %.2f | 最低: %.2f | 均值: %.2f\n",
		sum.HighestScore, sum.LowestScore, sum.AverageScore))

	return b.String()
}

// FormatResult formats a single ticker's score for the /score reply.
func FormatResult(r *model.TrendScoreResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s</b> 趋势评分: %.2f\n", scoreEmoji(r.NormalizedTrendScore), r.Ticker, r.NormalizedTrendScore))
	b.WriteString(fmt.Sprintf("数据截至: %s\n\n", r.LatestDate))
	b.WriteString(fmt.Sprintf("加权原始分: %+.3f\n", r.WeightedRawScore))
	b.WriteString("指标明细:\n")
	b.WriteString(fmt.Sprintf("  均线 MA: %+d\n", r.MAScore))
	b.WriteString(fmt.Sprintf("  MACD: %+d\n", r.MACDScore))
	b.WriteString(fmt.Sprintf("  ADX: %+d\n", r.ADXScore))
	b.WriteString(fmt.Sprintf("  RSI: %+d\n", r.RSIScore))
	b.WriteString(fmt.Sprintf("  OBV: %+d\n", r.OBVScore))
	return b.String()
}

// FormatWatchlist formats the stored watchlist for the /watch reply.
func FormatWatchlist(tickers []string) string {
	if len(tickers) == 0 {
		return "📋 自选列表为空，使用 /watch add TICKER 添加"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>自选列表</b> (%d)\n\n", len(tickers)))
	b.WriteString(strings.Join(tickers, ", "))
	return b.String()
}

// scoreEmoji buckets a normalized score into a quick visual cue.
func scoreEmoji(score float64) string {
	switch {
	case score >= 70:
		return "🟢"
	case score >= 50:
		return "🟡"
	case score >= 30:
		return "🟠"
	default:
		return "🔴"
	}
}
