package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Titles.Orbis)
	assert.Equal(t, "F1O PS Bot", cfg.NotificationConfig.Username)
	assert.Equal(t, "Es gibt ein Update zu F1 22!", cfg.NotificationConfig.UpdateMessage)
	assert.Equal(t, "https://orbispatches.com", cfg.OrbisConfig.APIBaseURL)
	assert.Equal(t, "00439C", cfg.OrbisConfig.PlatformColor)
	assert.Equal(t, 30, cfg.HTTPClientConfig.TimeoutSeconds)
	assert.Equal(t, 10, cfg.HTTPClientConfig.RetryDelaySeconds)
	assert.Equal(t, 2, cfg.HTTPClientConfig.MaxAttempts)
	assert.True(t, cfg.HTTPClientConfig.FollowRedirects)
	assert.Equal(t, "history.json", cfg.StorageConfig.HistoryFile)
	assert.Equal(t, 300, cfg.SchedulerConfig.IntervalSeconds)
	assert.True(t, cfg.SchedulerConfig.RunOnStart)
	assert.False(t, cfg.MetricsConfig.Enabled())
	assert.False(t, cfg.Debug)
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Chdir(t.TempDir())

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, NewDefaultGlobalConfig(), cfg)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"titles": {"orbis": ["CUSA12345", "CUSA67890"]},
		"notification_config": {
			"discord_webhook_url": "https://discord.com/api/webhooks/1/abc",
			"username": "Patch Bot"
		},
		"debug": true
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, []string{"CUSA12345", "CUSA67890"}, cfg.Titles.Orbis)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.NotificationConfig.DiscordWebhookURL)
	assert.Equal(t, "Patch Bot", cfg.NotificationConfig.Username)
	assert.Equal(t, DefaultNotificationUpdateMessage, cfg.NotificationConfig.UpdateMessage, "unset keys keep defaults")
	assert.True(t, cfg.Debug)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
titles:
  orbis:
    - CUSA12345
notification_config:
  discord_webhook_url: https://discord.com/api/webhooks/1/abc
http_client_config:
  timeout_seconds: 5
  retry_delay_seconds: 1
scheduler_config:
  interval_seconds: 60
  run_on_start: false
log_config:
  log_level: debug
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, []string{"CUSA12345"}, cfg.Titles.Orbis)
	assert.Equal(t, 5, cfg.HTTPClientConfig.TimeoutSeconds)
	assert.Equal(t, 1, cfg.HTTPClientConfig.RetryDelaySeconds)
	assert.Equal(t, 2, cfg.HTTPClientConfig.MaxAttempts)
	assert.Equal(t, 60, cfg.SchedulerConfig.IntervalSeconds)
	assert.False(t, cfg.SchedulerConfig.RunOnStart)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
}

func TestLoadGlobalConfig_TOMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.toml")
	configData := `
debug = true

[titles]
orbis = ["CUSA12345"]

[notification_config]
discord_webhook_url = "https://discord.com/api/webhooks/1/abc"

[storage_config]
history_file = "state/history.json"
lock_file = "state/history.lock"
run_ledger_path = ""
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"CUSA12345"}, cfg.Titles.Orbis)
	assert.Equal(t, "state/history.json", cfg.StorageConfig.HistoryFile)
	assert.Empty(t, cfg.StorageConfig.RunLedgerPath)
}

func TestLoadGlobalConfig_InvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "json", file: "config.json", content: `{"titles": [`},
		{name: "yaml", file: "config.yaml", content: "titles:\n  orbis: [unterminated"},
		{name: "toml", file: "config.toml", content: "[titles\norbis = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(configFile, []byte(tt.content), 0644))

			cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "failed to parse config content")
		})
	}
}

func TestHTTPClientConfig_Durations(t *testing.T) {
	cfg := NewDefaultHTTPClientConfig()

	assert.Equal(t, "30s", cfg.Timeout().String())
	assert.Equal(t, "10s", cfg.RetryDelay().String())
	assert.Equal(t, "5m0s", NewDefaultSchedulerConfig().Interval().String())
}
