package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv populates the minimum environment for a valid configuration.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MESSAGING_TOKEN", "test-token")
	t.Setenv("MESSAGING_SENDER_ID", "1055512345")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "orderline", cfg.Service)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://graph.facebook.com/v19.0", cfg.Messaging.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Messaging.Timeout)
	assert.Equal(t, int64(65536), cfg.Ingest.MaxBodyBytes)
	assert.Empty(t, cfg.Dispatch.OwnerPhone)
	assert.Empty(t, cfg.Ingest.SigningSecret.Unmask())
}

func TestLoadConfig_ExplicitValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("MESSAGING_API_BASE", "https://messaging.example.test/v1")
	t.Setenv("MESSAGING_TIMEOUT", "30s")
	t.Setenv("OWNER_PHONE", "+918888877777")
	t.Setenv("WEBHOOK_SIGNING_SECRET", "whsec_abc")
	t.Setenv("WEBHOOK_MAX_BODY_BYTES", "131072")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://messaging.example.test/v1", cfg.Messaging.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Messaging.Timeout)
	assert.Equal(t, "+918888877777", cfg.Dispatch.OwnerPhone)
	assert.Equal(t, "whsec_abc", cfg.Ingest.SigningSecret.Unmask())
	assert.Equal(t, int64(131072), cfg.Ingest.MaxBodyBytes)
}

func TestLoadConfig_MissingRequiredToken(t *testing.T) {
	t.Setenv("MESSAGING_TOKEN", "")
	t.Setenv("MESSAGING_SENDER_ID", "1055512345")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrValidation, cfgErr.Type)
}

func TestLoadConfig_MissingRequiredSenderID(t *testing.T) {
	t.Setenv("MESSAGING_TOKEN", "test-token")
	t.Setenv("MESSAGING_SENDER_ID", "")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrValidation, cfgErr.Type)
}

func TestLoadConfig_InvalidEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production-ish")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrValidation, cfgErr.Type)
}

func TestLoadConfig_UnparsableDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MESSAGING_TIMEOUT", "not-a-duration")

	_, err := LoadConfig()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrParsing, cfgErr.Type)
}

func TestLoadConfig_TokenIsRedacted(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// The raw token must never leak through the string form.
	assert.NotContains(t, cfg.Messaging.Token.String(), "test-token")
	assert.Equal(t, "test-token", cfg.Messaging.Token.Unmask())
}

func TestLoadConfig_BuildInfoPopulated(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Build.Version)
	assert.Equal(t, "none", cfg.Build.Commit)
}

func TestConfigError_Error(t *testing.T) {
	withCause := &ConfigError{Type: ErrParsing, Message: "bad value", Err: errors.New("strconv")}
	assert.Equal(t, "[PARSING_FAILED] bad value: strconv", withCause.Error())
	assert.EqualError(t, withCause.Unwrap(), "strconv")

	bare := &ConfigError{Type: ErrValidation, Message: "missing field"}
	assert.Equal(t, "[VALIDATION_FAILED] missing field", bare.Error())
}
