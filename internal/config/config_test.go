package config

import (
	"testing"
	"time"

	apperrors "auth-gateway/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "k9X2mQ7vB4nT8wR5hL3pZ6sJ1cF0dG9a"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "db-secret")
	t.Setenv("JWT_SECRET", validSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryDuration)
	assert.Equal(t, 10, cfg.Auth.ResetSecretLength)
	assert.Equal(t, []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Contains(t, cfg.Auth.PublicGET, "/categories/*")
	assert.Contains(t, cfg.Auth.PublicPOST, "/auth/forgot/*")
	assert.Equal(t, "log", cfg.Mail.Provider)
}

func TestLoad_MissingJWTSecretIsFatal(t *testing.T) {
	t.Setenv("DB_PASSWORD", "db-secret")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestLoad_ShortJWTSecretIsFatal(t *testing.T) {
	t.Setenv("DB_PASSWORD", "db-secret")
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestLoad_LowEntropyJWTSecretIsFatal(t *testing.T) {
	t.Setenv("DB_PASSWORD", "db-secret")
	t.Setenv("JWT_SECRET", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	_, err := Load()
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestLoad_MissingDBPasswordIsFatal(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET", validSecret)

	_, err := Load()
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestLoad_DurationFormats(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("JWT_EXPIRY_MINUTES", "90m")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.JWT.ExpiryDuration)

	// Bare integers are read as minutes.
	t.Setenv("JWT_EXPIRY_MINUTES", "45")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.JWT.ExpiryDuration)
}

func TestLoad_ListOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PUBLIC_ROUTES_GET", "/things/*, /other")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/things/*", "/other"}, cfg.Auth.PublicGET)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MailProviderRequiresKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAIL_PROVIDER", "resend")
	t.Setenv("MAIL_API_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	t.Setenv("MAIL_API_KEY", "re_123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "resend", cfg.Mail.Provider)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "gateway",
		Password: "pw",
		Database: "authgateway",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=gateway password=pw dbname=authgateway sslmode=require",
		cfg.DSN())
}
