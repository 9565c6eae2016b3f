package config

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/f1o/renovate/internal/common/errorwrapper"
	"github.com/f1o/renovate/internal/common/filemanager"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	Titles             TitlesConfig       `json:"titles" yaml:"titles" toml:"titles"`
	NotificationConfig NotificationConfig `json:"notification_config" yaml:"notification_config" toml:"notification_config"`
	OrbisConfig        OrbisConfig        `json:"orbis_config,omitempty" yaml:"orbis_config,omitempty" toml:"orbis_config,omitempty"`
	HTTPClientConfig   HTTPClientConfig   `json:"http_client_config,omitempty" yaml:"http_client_config,omitempty" toml:"http_client_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty" toml:"storage_config,omitempty"`
	SchedulerConfig    SchedulerConfig    `json:"scheduler_config,omitempty" yaml:"scheduler_config,omitempty" toml:"scheduler_config,omitempty"`
	MetricsConfig      MetricsConfig      `json:"metrics_config,omitempty" yaml:"metrics_config,omitempty" toml:"metrics_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty" toml:"log_config,omitempty"`
	// Debug suppresses every write of persisted state (history file, run ledger)
	Debug bool `json:"debug" yaml:"debug" toml:"debug"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Titles:             NewDefaultTitlesConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		OrbisConfig:        NewDefaultOrbisConfig(),
		HTTPClientConfig:   NewDefaultHTTPClientConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		SchedulerConfig:    NewDefaultSchedulerConfig(),
		MetricsConfig:      NewDefaultMetricsConfig(),
		LogConfig:          NewDefaultLogConfig(),
		Debug:              false,
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// The file path is resolved with GetConfigPath. The format is picked from the
// extension: .yaml/.yml for YAML, .toml for TOML, anything else is JSON.
// When no file is found the defaults are returned unchanged.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Warn().Msg("No configuration file found, using defaults")
		return cfg, nil
	}

	fileManager := filemanager.NewFileManager(logger)
	if !fileManager.FileExists(filePath) {
		return nil, errorwrapper.NewValidationError("config_file", filePath, "config file does not exist")
	}

	data, err := fileManager.ReadFile(filePath, filemanager.DefaultMaxReadSize)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	logger.Info().Str("path", filePath).Int("titles", cfg.Titles.Count()).Msg("Loaded configuration")
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return parseYAMLConfig(data, filePath, cfg)
	case ".toml":
		return parseTOMLConfig(data, filePath, cfg)
	default:
		return parseJSONConfig(data, filePath, cfg)
	}
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseTOMLConfig parses TOML configuration
func parseTOMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal TOML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
