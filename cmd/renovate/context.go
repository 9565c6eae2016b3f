package main

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/f1o/renovate/internal/config"
	"github.com/f1o/renovate/internal/logger"
	"github.com/rs/zerolog"
)

type commandContext struct {
	configFlag *string
	debugFlag  *bool

	// bootstrap is used until the configured logger exists
	bootstrapOut io.Writer
	// readOnly limits validation to the sections needed to read persisted state
	readOnly bool

	configOnce sync.Once
	config     *config.GlobalConfig
	logger     zerolog.Logger
	configErr  error
}

func newCommandContext(configFlag *string, debugFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		debugFlag:    debugFlag,
		bootstrapOut: os.Stderr,
	}
}

func (c *commandContext) ensureConfig() (*config.GlobalConfig, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}

		bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: c.bootstrapOut}).
			Level(zerolog.WarnLevel).With().Timestamp().Logger()

		cfg, err := config.LoadGlobalConfig(path, bootstrap)
		if err != nil {
			c.configErr = err
			return
		}
		if c.debugFlag != nil && *c.debugFlag {
			cfg.Debug = true
		}
		validate := config.ValidateConfig
		if c.readOnly {
			validate = config.ValidateReadOnlyConfig
		}
		if err := validate(cfg); err != nil {
			c.configErr = err
			return
		}

		log, err := logger.New(cfg.LogConfig)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = log
	})
	return c.config, c.configErr
}

// configLogger returns the logger built from configuration. Only valid after ensureConfig succeeded.
func (c *commandContext) configLogger() zerolog.Logger {
	return c.logger
}
