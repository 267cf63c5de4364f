package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDataDir, cfg.Bot.DataDir)
	assert.Equal(t, DefaultPollSeconds, cfg.Bot.PollSeconds)
	assert.Equal(t, DefaultHealthSeconds, cfg.Bot.HealthSeconds)
	assert.Equal(t, DefaultToolsBaseURL, cfg.Tools.BaseURL)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[log]
level = "debug"

[telegram]
token = "123:abc"
admin_chat_id = "42"

[bot]
poll_seconds = 7
health_seconds = 60

[tools]
base_url = "http://tools.local:9000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "42", cfg.Telegram.AdminChatID)
	assert.Equal(t, 7, cfg.Bot.PollSeconds)
	assert.Equal(t, 60, cfg.Bot.HealthSeconds)
	assert.Equal(t, "http://tools.local:9000", cfg.Tools.BaseURL)
	// Unset sections keep defaults.
	assert.Equal(t, DefaultBackoffSeconds, cfg.Bot.BackoffSeconds)
}

func TestEnvOverridesToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "admin-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, "admin-env", cfg.Telegram.AdminChatID)
}
