// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath     = "config.toml"
	DefaultDataDir        = ".tmp"
	DefaultDocsDir        = "docs"
	DefaultToolsBaseURL   = "http://127.0.0.1:8090"
	DefaultPollSeconds    = 2
	DefaultBackoffSeconds = 5
	DefaultHealthSeconds  = 300
	DefaultToolTimeout    = 120
	DefaultVoiceLang      = "es-ES"
	DefaultPartsRegion    = "ve"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Telegram TelegramConfig `toml:"telegram"`
	Bot      BotConfig      `toml:"bot"`
	Tools    ToolsConfig    `toml:"tools"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// TelegramConfig holds the bot token and the operator chat that receives
// system alerts. The token may also come from TELEGRAM_BOT_TOKEN.
type TelegramConfig struct {
	Token       string `toml:"token"`
	AdminChatID string `toml:"admin_chat_id"`
}

// BotConfig holds dispatch loop timing and local directories.
type BotConfig struct {
	DataDir        string `toml:"data_dir"`
	DocsDir        string `toml:"docs_dir"`
	PollSeconds    int    `toml:"poll_seconds"`
	BackoffSeconds int    `toml:"backoff_seconds"`
	HealthSeconds  int    `toml:"health_seconds"`
	PartsRegion    string `toml:"parts_region"`
}

// ToolsConfig holds the tool server base URL and per-call timeout.
type ToolsConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PollInterval returns the dispatch loop sleep between iterations.
func (c BotConfig) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// Backoff returns the pause applied after a transport poll failure.
func (c BotConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffSeconds) * time.Second
}

// HealthInterval returns the minimum wall-clock gap between health checks.
func (c BotConfig) HealthInterval() time.Duration {
	return time.Duration(c.HealthSeconds) * time.Second
}

// Timeout returns the per-call deadline for tool server requests.
func (c ToolsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads and parses the TOML config file at path and applies default
// values for missing fields. Environment overrides (TELEGRAM_BOT_TOKEN,
// TELEGRAM_CHAT_ID) are applied after the file.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Bot: BotConfig{
			DataDir:        DefaultDataDir,
			DocsDir:        DefaultDocsDir,
			PollSeconds:    DefaultPollSeconds,
			BackoffSeconds: DefaultBackoffSeconds,
			HealthSeconds:  DefaultHealthSeconds,
			PartsRegion:    DefaultPartsRegion,
		},
		Tools: ToolsConfig{
			BaseURL:        DefaultToolsBaseURL,
			TimeoutSeconds: DefaultToolTimeout,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); token != "" {
		cfg.Telegram.Token = token
	}
	if admin := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); admin != "" {
		cfg.Telegram.AdminChatID = admin
	}
}
