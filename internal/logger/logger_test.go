package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/f1o/renovate/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLogger(t *testing.T) {
	cfg := config.NewDefaultLogConfig()

	_, err := New(cfg)

	require.NoError(t, err)
}

func TestLoggerBuilder_JSONConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warning"

	built, err := NewLoggerBuilder().WithConfig(cfg).WithConsoleOutput(&buf).Build()
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, built.Config().Level)

	log := built.GetZerolog()
	log.Info().Msg("dropped")
	log.Warn().Str("title_id", "CUSA12345").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "CUSA12345", entry["title_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestLoggerBuilder_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "renovate.log")
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = path
	cfg.LogFormat = "json"

	built, err := NewLoggerBuilder().WithConfig(cfg).WithConsoleOutput(&bytes.Buffer{}).Build()
	require.NoError(t, err)
	assert.True(t, built.Config().FileEnabled())

	built.GetZerolog().Error().Msg("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestLoggerBuilder_TextFormatConsoleOnly(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewDefaultLogConfig()
	cfg.LogFormat = "text"

	built, err := NewLoggerBuilder().WithConfig(cfg).WithConsoleOutput(&out).Build()
	require.NoError(t, err)

	assert.Equal(t, FormatText, built.Config().Format)
	assert.False(t, built.Config().FileEnabled())

	built.GetZerolog().Warn().Msg("plain line")

	assert.Contains(t, out.String(), "plain line")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestLoggerBuilder_InvalidLevel(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "loud"

	_, err := NewLoggerBuilder().WithConfig(cfg).Build()

	assert.Error(t, err)
}

func TestLogLevelParser(t *testing.T) {
	parser := NewLogLevelParser()

	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
	}
	for input, want := range tests {
		got, err := parser.ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestLogFormatParser(t *testing.T) {
	parser := NewLogFormatParser()

	assert.Equal(t, FormatJSON, parser.ParseFormat("JSON"))
	assert.Equal(t, FormatText, parser.ParseFormat("text"))
	assert.Equal(t, FormatConsole, parser.ParseFormat("console"))
	assert.Equal(t, FormatConsole, parser.ParseFormat("unknown"))
	assert.Equal(t, "json", FormatJSON.String())
}
