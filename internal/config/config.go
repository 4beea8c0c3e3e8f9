package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envSessionSecret         = "SESSION_SECRET"
	envSessionExpiry         = "SESSION_EXPIRY_MINUTES"
	envSessionIssuer         = "SESSION_ISSUER"
	envPolicyFile            = "POLICY_FILE"
	envDefaultMinQuantity    = "DEFAULT_MIN_QUANTITY"
	envRateLimitRPS          = "RATE_LIMIT_RPS"
	envRateLimitBurst        = "RATE_LIMIT_BURST"
	envLogLevel              = "LOG_LEVEL"
	envLogFormat             = "LOG_FORMAT"
	envEnablePprof           = "ENABLE_PPROF"
)

const (
	defaultServerPort          = "8080"
	defaultServerReadTimeout   = 10 * time.Second
	defaultServerWriteTimeout  = 10 * time.Second
	defaultServerShutdown      = 10 * time.Second
	defaultSessionExpiry       = 8 * time.Hour
	defaultSessionIssuer       = "supply-service"
	defaultMinQuantity         = 10
	defaultRateLimitRPS        = 100
	defaultRateLimitBurst      = 200
	defaultLogLevel            = "info"
	defaultLogFormat           = "json"
	minSessionSecretLength     = 32
	minUniqueCharsInSecret     = 16
	minRepeatedCharThreshold   = 4
	maxRepeatedChars           = 2
	errPortRequiredFmt         = "PORT must be set"
	errSecretRequiredFmt       = "SESSION_SECRET must be set"
	errSecretMinLengthFmt      = "SESSION_SECRET must be at least %d characters"
	errSecretLowEntropyFmt     = "SESSION_SECRET has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errSessionExpiryFmt        = "SESSION_EXPIRY_MINUTES must be positive"
	errMinQuantityFmt          = "DEFAULT_MIN_QUANTITY must be positive"
	errRateLimitFmt            = "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"
	errLogFormatFmt            = "LOG_FORMAT must be json or console, got %q"
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

// ErrMissingEnv is returned by Load when a required variable is unset
var ErrMissingEnv = errors.New("required environment variable is not set")

type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	RBAC      RBACConfig
	Stock     StockConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	EnablePprof     bool
}

type SessionConfig struct {
	Secret         string
	ExpiryDuration time.Duration
	Issuer         string
}

type RBACConfig struct {
	// PolicyFile replaces the built-in policy when set
	PolicyFile string
}

type StockConfig struct {
	DefaultMinQuantity int
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the configuration from the environment. SESSION_SECRET is
// the only required variable.
func Load() (*Config, error) {
	secret, err := requireEnv(envSessionSecret)
	if err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
			EnablePprof:     getBoolEnv(envEnablePprof, false),
		},
		Session: SessionConfig{
			Secret:         secret,
			ExpiryDuration: getDurationEnv(envSessionExpiry, defaultSessionExpiry),
			Issuer:         getEnv(envSessionIssuer, defaultSessionIssuer),
		},
		RBAC: RBACConfig{
			PolicyFile: getEnv(envPolicyFile, ""),
		},
		Stock: StockConfig{
			DefaultMinQuantity: getIntEnv(envDefaultMinQuantity, defaultMinQuantity),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getIntEnv(envRateLimitRPS, defaultRateLimitRPS),
			Burst:             getIntEnv(envRateLimitBurst, defaultRateLimitBurst),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv(envLogLevel, defaultLogLevel)),
			Format: strings.ToLower(getEnv(envLogFormat, defaultLogFormat)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Session.Secret == "" {
		return fmt.Errorf(errSecretRequiredFmt)
	}

	if len(c.Session.Secret) < minSessionSecretLength {
		return fmt.Errorf(errSecretMinLengthFmt, minSessionSecretLength)
	}

	if !hasMinimumEntropy(c.Session.Secret) {
		return fmt.Errorf(errSecretLowEntropyFmt)
	}

	if c.Session.ExpiryDuration <= 0 {
		return fmt.Errorf(errSessionExpiryFmt)
	}

	if c.Stock.DefaultMinQuantity <= 0 {
		return fmt.Errorf(errMinQuantityFmt)
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf(errRateLimitFmt)
	}

	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf(errLogFormatFmt, c.Log.Format)
	}

	return nil
}

// Addr is the listen address for the HTTP server
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minSessionSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, key)
	}
	return value, nil
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
