// Package config handles configuration loading for the POS service.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is used when JWT_SECRET is not set. Development only.
const DefaultJWTSecret = "pos-service-development-secret-change-me"

// OTP backends.
const (
	OTPBackendMemory = "memory"
	OTPBackendRedis  = "redis"
)

// Config holds all configuration for the POS service.
type Config struct {
	Port             string
	Environment      string
	DataFile         string
	JWTSecret        string
	JWTSecretDefault bool
	TokenExpiry      time.Duration
	OTPTTL           time.Duration
	OTPRetention     time.Duration
	OTPSweepInterval time.Duration
	OTPBackend       string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	AllowedOrigins   []string
	LogLevel         string
	LogFile          string
	OTELEndpoint     string
	ShutdownTimeout  time.Duration
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	secret := getEnv("JWT_SECRET", "")
	secretDefault := secret == ""
	if secretDefault {
		secret = DefaultJWTSecret
	}

	return &Config{
		Port:             getEnv("PORT", "3000"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		DataFile:         getEnv("DATA_FILE", "./database.json"),
		JWTSecret:        secret,
		JWTSecretDefault: secretDefault,
		TokenExpiry:      parseDuration(getEnv("TOKEN_EXPIRY", "1h"), time.Hour),
		OTPTTL:           parseDuration(getEnv("OTP_TTL", "10m"), 10*time.Minute),
		OTPRetention:     parseDuration(getEnv("OTP_RETENTION", "1h"), time.Hour),
		OTPSweepInterval: parseDuration(getEnv("OTP_SWEEP_INTERVAL", "5m"), 5*time.Minute),
		OTPBackend:       strings.ToLower(getEnv("OTP_BACKEND", OTPBackendMemory)),
		RedisHost:        getEnv("REDIS_HOST", ""),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         parseInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:         getEnv("SMTP_FROM", ""),
		AllowedOrigins:   parseList(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
		OTELEndpoint:     getEnv("OTEL_EXPORTER_ENDPOINT", ""),
		ShutdownTimeout:  parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if c.DataFile == "" {
		errs = append(errs, errors.New("DATA_FILE must not be empty"))
	}
	switch c.OTPBackend {
	case OTPBackendMemory:
	case OTPBackendRedis:
		if c.RedisHost == "" {
			errs = append(errs, errors.New("REDIS_HOST is required when OTP_BACKEND=redis"))
		}
	default:
		errs = append(errs, errors.New("OTP_BACKEND must be memory or redis"))
	}
	if c.OTPTTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}
	if c.OTPRetention < c.OTPTTL {
		errs = append(errs, errors.New("OTP_RETENTION must not be shorter than OTP_TTL"))
	}
	if c.TokenExpiry <= 0 {
		errs = append(errs, errors.New("TOKEN_EXPIRY must be positive"))
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		errs = append(errs, errors.New("SMTP_FROM is required when SMTP_HOST is set"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func parseList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
