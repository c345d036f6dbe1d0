// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone to prevent drift bugs.
//  2. Load .env file via godotenv (non-fatal if absent, never overrides
//     existing environment variables).
//  3. Use envconfig to process struct tags and populate the Config struct.
//  4. Populate BuildInfo from linker-injected variables.
//  5. Validate the struct using go-playground/validator.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigError is a diagnostic error type returned by LoadConfig.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig loads and validates the orderline configuration. It fails fast:
// any missing required value (messaging credential, sender identifier) or
// invalid format is returned as a ConfigError, and the caller is expected to
// exit rather than serve requests with a broken configuration.
func LoadConfig() (*Config, error) {
	// Enforce UTC timezone to prevent drift bugs.
	time.Local = time.UTC

	// Load .env file (non-fatal if absent). godotenv does NOT override
	// variables already present in the environment, which preserves the
	// priority chain: OS Environment > Dotenv.
	_ = godotenv.Load()

	// Process envconfig tags to populate the Config struct. The empty prefix
	// means tags are read verbatim (envconfig:"PORT" reads PORT directly).
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	// Populate build metadata from linker-injected variables.
	cfg.Build = NewBuildInfo()

	// Validate the populated struct.
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return &cfg, nil
}
