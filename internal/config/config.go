package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Polygon struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"polygon"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Scan struct {
		Watchlist []string `yaml:"watchlist"`
		Period    string   `yaml:"period"`
		Cron      string   `yaml:"cron"`
		TopN      int      `yaml:"top_n"`
	} `yaml:"scan"`
	RateLimitMs int `yaml:"rate_limit_ms"`
	Database    struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.Polygon.APIKey = v
	}
	if v := os.Getenv("POLYGON_BASE_URL"); v != "" {
		cfg.Polygon.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Scan.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("RATE_LIMIT_MS"); v != "" {
		var ms int
		if _, err := fmt.Sscanf(v, "%d", &ms); err == nil {
			cfg.RateLimitMs = ms
		}
	}

	// Defaults
	if cfg.Scan.Period == "" {
		cfg.Scan.Period = "6mo"
	}
	if cfg.Scan.Cron == "" {
		// Weekdays after the US close (UTC)
		cfg.Scan.Cron = "0 30 21 * * 1-5"
	}
	if cfg.Scan.TopN == 0 {
		cfg.Scan.TopN = 10
	}
	if cfg.RateLimitMs == 0 {
		cfg.RateLimitMs = 1500
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trend_sentinel.db"
	}

	return cfg, nil
}

// Validate checks the fields required for daemon mode. A missing Polygon key
// is deliberately not an error here: the provider degrades to "unavailable"
// so the bot can still answer commands.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if len(c.Scan.Watchlist) == 0 && c.Database.SQLitePath == "" {
		return fmt.Errorf("scan.watchlist or database.sqlite_path is required")
	}
	return nil
}
