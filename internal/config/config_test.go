package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scan.Period != "6mo" {
		t.Errorf("period = %q, want 6mo", cfg.Scan.Period)
	}
	if cfg.RateLimitMs != 1500 {
		t.Errorf("rate limit = %d, want 1500", cfg.RateLimitMs)
	}
	if cfg.Scan.TopN != 10 {
		t.Errorf("top_n = %d, want 10", cfg.Scan.TopN)
	}
	if cfg.Scan.Cron == "" {
		t.Error("expected a default scan cron")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
polygon:
  api_key: pk_test
scan:
  watchlist: [AAPL, MSFT]
  period: 1y
  top_n: 5
rate_limit_ms: 800
telegram:
  bot_token: tok
  chat_id: "123"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Polygon.APIKey != "pk_test" {
		t.Errorf("api key = %q", cfg.Polygon.APIKey)
	}
	if len(cfg.Scan.Watchlist) != 2 || cfg.Scan.Watchlist[0] != "AAPL" {
		t.Errorf("watchlist = %v", cfg.Scan.Watchlist)
	}
	if cfg.Scan.Period != "1y" || cfg.Scan.TopN != 5 || cfg.RateLimitMs != 800 {
		t.Errorf("unexpected scan settings: %+v rate=%d", cfg.Scan, cfg.RateLimitMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
polygon:
  api_key: from_file
rate_limit_ms: 800
`)
	t.Setenv("POLYGON_API_KEY", "from_env")
	t.Setenv("RATE_LIMIT_MS", "2000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Polygon.APIKey != "from_env" {
		t.Errorf("api key = %q, want from_env", cfg.Polygon.APIKey)
	}
	if cfg.RateLimitMs != 2000 {
		t.Errorf("rate limit = %d, want 2000", cfg.RateLimitMs)
	}
}

func TestValidateMissingTelegram(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without telegram credentials")
	}
}
