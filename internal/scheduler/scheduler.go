package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"TrendSentinel/internal/config"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/scoring"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic watchlist scan and serves bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *scoring.Engine
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Cfg      *config.Config
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, engine *scoring.Engine, tn *notifier.TelegramNotifier, rec recorder.Recorder, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Notifier: tn,
		Recorder: rec,
		Cfg:      cfg,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scheduled scan task.
func (s *Scheduler) RegisterAll() error {
	if _, err := s.Cron.AddFunc(s.Cfg.Scan.Cron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

// watchlist resolves the ticker set: the stored watchlist first, falling
// back to the static config list.
func (s *Scheduler) watchlist() []string {
	stored, err := s.Recorder.Watchlist()
	if err != nil {
		log.Printf("[ERROR] load watchlist: %v", err)
	}
	if len(stored) > 0 {
		return stored
	}
	return s.Cfg.Scan.Watchlist
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running watchlist scan")

	tickers := s.watchlist()
	if len(tickers) == 0 {
		log.Println("[WARN] scan skipped: watchlist is empty")
		s.trySend("⚠️ 扫描跳过: 自选列表为空")
		return
	}

	period := model.Period(s.Cfg.Scan.Period)
	results, err := s.Engine.ScoreBatch(s.Ctx, tickers, period)
	if err != nil {
		log.Printf("[ERROR] scan: %v", err)
		if len(results) == 0 {
			s.trySend(fmt.Sprintf("❌ 趋势扫描失败: %v", err))
			return
		}
		// Partial results from a cancelled run are still worth reporting.
	}

	summary := scoring.Summarize(results)
	s.trySend(notifier.FormatBatchReport(s.Cfg.Scan.Period, results, summary, s.Cfg.Scan.TopN))

	if err := s.Recorder.RecordBatch(&recorder.BatchRecord{
		Period:  s.Cfg.Scan.Period,
		Results: results,
		Summary: summary,
	}); err != nil {
		log.Printf("[ERROR] record batch: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "立即扫描", "/scan":
		go s.scanTask()
		return "🔍 扫描已启动，结果稍后推送"

	case "/score":
		if len(fields) < 2 {
			return "用法: /score TICKER [1mo|3mo|6mo|1y|2y]"
		}
		ticker := strings.ToUpper(fields[1])
		period := model.DefaultPeriod
		if len(fields) >= 3 {
			period = model.Period(fields[2])
		}
		res, err := s.Engine.ScoreOne(s.Ctx, ticker, period)
		if err != nil {
			return fmt.Sprintf("❌ %s 评分失败: %v", ticker, err)
		}
		return notifier.FormatResult(res)

	case "查看自选", "/watch":
		if len(fields) >= 3 && fields[1] == "add" {
			tickers := normalizeTickers(fields[2:])
			if err := s.Recorder.AddTickers(tickers); err != nil {
				return fmt.Sprintf("❌ 添加失败: %v", err)
			}
			return fmt.Sprintf("✅ 已添加: %s", strings.Join(tickers, ", "))
		}
		if len(fields) >= 3 && fields[1] == "rm" {
			ticker := strings.ToUpper(fields[2])
			if err := s.Recorder.RemoveTicker(ticker); err != nil {
				return fmt.Sprintf("❌ 移除失败: %v", err)
			}
			return fmt.Sprintf("✅ 已移除: %s", ticker)
		}
		return notifier.FormatWatchlist(s.watchlist())

	case "/top":
		top, err := s.Recorder.TopScores(s.Cfg.Scan.TopN)
		if err != nil {
			return fmt.Sprintf("❌ 查询失败: %v", err)
		}
		if len(top) == 0 {
			return "暂无扫描记录，先执行 /scan"
		}
		return notifier.FormatBatchReport(s.Cfg.Scan.Period, top, scoring.Summarize(top), s.Cfg.Scan.TopN)

	default:
		return "可用命令:\n• /scan 立即扫描\n• /score TICKER [周期]\n• /watch [add|rm TICKER...]\n• /top 最近排行"
	}
}

func normalizeTickers(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		for _, t := range strings.Split(r, ",") {
			t = strings.ToUpper(strings.TrimSpace(t))
			if t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
