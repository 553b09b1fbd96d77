package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "auth-gateway/pkg/errors"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envJWTSecret             = "JWT_SECRET"
	envJWTExpiry             = "JWT_EXPIRY_MINUTES"
	envCORSOrigins           = "CORS_ALLOWED_ORIGINS"
	envCORSMethods           = "CORS_ALLOWED_METHODS"
	envPublicRoutesGet       = "PUBLIC_ROUTES_GET"
	envPublicRoutesPost      = "PUBLIC_ROUTES_POST"
	envResetSecretLength     = "RESET_SECRET_LENGTH"
	envMailProvider          = "MAIL_PROVIDER"
	envMailAPIKey            = "MAIL_API_KEY"
	envMailFrom              = "MAIL_FROM"
	envMailCompany           = "MAIL_COMPANY"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "authgateway"
	defaultDBUser             = "authgateway_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultJWTExpiry          = 2 * time.Hour
	defaultResetSecretLength  = 10
	defaultMailProvider       = "log"
	defaultMailFrom           = "no-reply@authgateway.local"
	defaultMailCompany        = "Auth Gateway"
	minJWTSecretLength        = 32
	minUniqueCharsInSecret    = 16
	minRepeatedCharThreshold  = 4
	maxRepeatedChars          = 2

	errPortRequired          = "PORT must be set"
	errDBPasswordRequired    = "DB_PASSWORD must be set"
	errJWTSecretRequired     = "JWT_SECRET must be set"
	errJWTSecretMinLengthFmt = "JWT_SECRET must be at least %d characters"
	errJWTSecretLowEntropy   = "JWT_SECRET has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errResetLengthPositive   = "RESET_SECRET_LENGTH must be positive"
	errMailFromRequired      = "MAIL_FROM must be set when MAIL_PROVIDER is not 'log'"
	errMailAPIKeyRequired    = "MAIL_API_KEY must be set when MAIL_PROVIDER is not 'log'"
)

var (
	defaultCORSMethods = []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"}
	defaultCORSOrigins = []string{"*"}

	// Public read surface and the two unauthenticated writes: account
	// signup (owned by the customer service) and the reset request.
	defaultPublicGET  = []string{"/categories/*", "/products/*", "/states/*", "/health"}
	defaultPublicPOST = []string{"/customers", "/auth/login", "/auth/forgot/*"}
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Mail     MailConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type JWTConfig struct {
	Secret         string
	ExpiryDuration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
}

type AuthConfig struct {
	// Route patterns reachable without a token, per method. Everything
	// not listed here (or registered as self-or-admin) requires identity.
	PublicGET  []string
	PublicPOST []string
	// Length of generated temporary passwords.
	ResetSecretLength int
}

type MailConfig struct {
	Provider string
	APIKey   string
	From     string
	Company  string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: os.Getenv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv(envJWTSecret),
			ExpiryDuration: getDurationEnv(envJWTExpiry, defaultJWTExpiry),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListEnv(envCORSOrigins, defaultCORSOrigins),
			AllowedMethods: getListEnv(envCORSMethods, defaultCORSMethods),
		},
		Auth: AuthConfig{
			PublicGET:         getListEnv(envPublicRoutesGet, defaultPublicGET),
			PublicPOST:        getListEnv(envPublicRoutesPost, defaultPublicPOST),
			ResetSecretLength: getIntEnv(envResetSecretLength, defaultResetSecretLength),
		},
		Mail: MailConfig{
			Provider: getEnv(envMailProvider, defaultMailProvider),
			APIKey:   os.Getenv(envMailAPIKey),
			From:     getEnv(envMailFrom, defaultMailFrom),
			Company:  getEnv(envMailCompany, defaultMailCompany),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the startup invariants. A failure here is fatal: the
// process must not accept traffic with a missing or weak signing secret.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return apperrors.Configuration(errPortRequired)
	}

	if c.Database.Password == "" {
		return apperrors.Configuration(errDBPasswordRequired)
	}

	if c.JWT.Secret == "" {
		return apperrors.Configuration(errJWTSecretRequired)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return apperrors.Configuration(fmt.Sprintf(errJWTSecretMinLengthFmt, minJWTSecretLength))
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return apperrors.Configuration(errJWTSecretLowEntropy)
	}

	if c.Auth.ResetSecretLength <= 0 {
		return apperrors.Configuration(errResetLengthPositive)
	}

	if c.Mail.Provider != defaultMailProvider {
		if c.Mail.From == "" {
			return apperrors.Configuration(errMailFromRequired)
		}
		if c.Mail.APIKey == "" {
			return apperrors.Configuration(errMailAPIKeyRequired)
		}
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	if len(charCounts) < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return defaultValue
	}
	return out
}
