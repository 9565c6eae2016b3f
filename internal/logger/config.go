package logger

import (
	"github.com/f1o/renovate/internal/config"
	"github.com/rs/zerolog"
)

// LoggerConfig is the resolved form of config.LogConfig. Console output is
// always on; a non-empty FilePath adds a rotating file.
type LoggerConfig struct {
	Level      zerolog.Level
	Format     LogFormat
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// FileEnabled reports whether records are also written to FilePath.
func (c LoggerConfig) FileEnabled() bool {
	return c.FilePath != ""
}

// LogFormat selects the console layout. The values match log_config.log_format.
type LogFormat int

const (
	FormatJSON    LogFormat = iota
	FormatConsole           // colored, human readable
	FormatText              // FormatConsole without colors
)

func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

func defaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		MaxSizeMB:  config.DefaultMaxLogSizeMB,
		MaxBackups: config.DefaultMaxLogBackups,
	}
}
