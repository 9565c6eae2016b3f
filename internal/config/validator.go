package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var titleIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("configuration validation error: config is nil")
	}
	return formatValidationError(newValidator().Struct(cfg), trimNamespace)
}

// ValidateReadOnlyConfig validates only the sections needed to read persisted
// state (storage and log). Titles, notification and endpoint settings are not checked.
func ValidateReadOnlyConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("configuration validation error: config is nil")
	}
	validate := newValidator()
	// section structs are validated on their own, so namespaces already start at the section
	keep := func(namespace string) string { return namespace }
	for _, section := range []any{cfg.StorageConfig, cfg.LogConfig} {
		if err := formatValidationError(validate.Struct(section), keep); err != nil {
			return err
		}
	}
	return nil
}

func formatValidationError(err error, namespace func(string) string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	var validationErrorMessages []string
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", namespace(e.Namespace()), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		validationErrorMessages = append(validationErrorMessages, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(validationErrorMessages, "\n  "))
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "warning", "error":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	// Hex RGB without the leading '#', e.g. "00439C"
	_ = validate.RegisterValidation("platformcolor", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) != 6 {
			return false
		}
		_, err := strconv.ParseUint(value, 16, 32)
		return err == nil
	})

	_ = validate.RegisterValidation("titleid", func(fl validator.FieldLevel) bool {
		return titleIDPattern.MatchString(fl.Field().String())
	})

	return validate
}

// trimNamespace drops the root struct name so messages read "Titles.Orbis[0]"
func trimNamespace(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
