// Package config defines the global configuration for the orderline service.
// Configuration is loaded once at process initialization and is immutable
// thereafter; components receive the specific config subsets they require
// instead of reading ambient global state.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// A missing required value or invalid format fails the process immediately on
// startup; misconfiguration is never surfaced as a per-request error.
package config

import (
	"time"

	"orderline/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used throughout configuration to prevent accidental logging of credentials.
type SecretString = types.SecretString

// Config is the top-level configuration struct. It is populated once during
// process initialization and never modified.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"orderline"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain Configurations
	Server    ServerConfig
	Messaging MessagingConfig
	Dispatch  DispatchConfig
	Ingest    IngestConfig

	// Build Metadata (injected via ldflags, not env)
	Build BuildInfo
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

// MessagingConfig holds the outbound messaging transport credentials.
// Token and SenderID are required: without them no message can be delivered,
// so their absence is startup-fatal rather than a per-request error.
type MessagingConfig struct {
	Token    SecretString  `envconfig:"MESSAGING_TOKEN" validate:"required"`
	SenderID string        `envconfig:"MESSAGING_SENDER_ID" validate:"required"`
	BaseURL  string        `envconfig:"MESSAGING_API_BASE" default:"https://graph.facebook.com/v19.0"`
	Timeout  time.Duration `envconfig:"MESSAGING_TIMEOUT" default:"10s"`
}

// DispatchConfig holds delivery fan-out settings. OwnerPhone is the fixed
// recipient that receives a copy of every order; it is optional, and when
// empty the owner leg is recorded as skipped.
type DispatchConfig struct {
	OwnerPhone string `envconfig:"OWNER_PHONE"`
}

// IngestConfig holds inbound webhook settings. SigningSecret is the shared
// secret used to authenticate the upstream sender; authentication is opt-in
// by deployment, so an empty secret disables verification.
type IngestConfig struct {
	SigningSecret SecretString `envconfig:"WEBHOOK_SIGNING_SECRET"`
	MaxBodyBytes  int64        `envconfig:"WEBHOOK_MAX_BODY_BYTES" default:"65536"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
