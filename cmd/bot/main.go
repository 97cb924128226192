package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"TrendSentinel/internal/config"
	"TrendSentinel/internal/marketdata"
	"TrendSentinel/internal/model"
	"TrendSentinel/internal/notifier"
	"TrendSentinel/internal/recorder"
	"TrendSentinel/internal/scheduler"
	"TrendSentinel/internal/scoring"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	scoreFlag := flag.String("score", "", "score a comma-separated ticker list and print JSON, then exit")
	periodFlag := flag.String("period", "", "lookback period for -score (1mo|3mo|6mo|1y|2y)")
	endFlag := flag.String("end", "", "fixed end date for -score (YYYY-MM-DD), for reproducible runs")
	flag.Parse()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	if *scoreFlag != "" {
		runOneShot(cfg, *scoreFlag, *periodFlag, *endFlag)
		return
	}

	log.Println("[INFO] TrendSentinel starting...")
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	provider := newProvider(cfg, marketdata.Live())
	log.Printf("[INFO] data source: %s", provider.Name())

	engine := scoring.NewEngine(provider)

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, engine, tn, rec, cfg)
	if err := sched.RegisterAll(); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] TrendSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TrendSentinel stopped")
}

// runOneShot scores the given tickers and prints a JSON report to stdout.
// A fixed end date pins the evaluation window so runs are reproducible.
func runOneShot(cfg *config.Config, tickerList, periodStr, endStr string) {
	eval := marketdata.Live()
	if endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			log.Fatalf("[FATAL] parse -end: %v", err)
		}
		eval = marketdata.FixedAt(end)
	}

	period := model.Period(cfg.Scan.Period)
	if periodStr != "" {
		period = model.Period(periodStr)
	}

	var tickers []string
	for _, t := range strings.Split(tickerList, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}

	engine := scoring.NewEngine(newProvider(cfg, eval))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results, err := engine.ScoreBatch(ctx, tickers, period)
	if err != nil {
		log.Fatalf("[FATAL] score: %v", err)
	}

	report := struct {
		Results []model.TrendScoreResult `json:"results"`
		Summary model.BatchSummary       `json:"summary"`
	}{results, scoring.Summarize(results)}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("[FATAL] encode report: %v", err)
	}
}

func newProvider(cfg *config.Config, eval marketdata.EvalDate) *marketdata.PolygonProvider {
	interval := time.Duration(cfg.RateLimitMs) * time.Millisecond
	provider := marketdata.NewPolygonProvider(
		cfg.Polygon.APIKey, cfg.Proxy, eval, marketdata.NewIntervalLimiter(interval),
	)
	if cfg.Polygon.BaseURL != "" {
		provider.BaseURL = cfg.Polygon.BaseURL
	}
	return provider
}
