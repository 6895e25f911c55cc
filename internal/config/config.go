package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables (a .env file is loaded by cmd/api in development).
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Security  SecurityConfig
	MinIO     MinIOConfig
	Queue     QueueConfig
	SMTP      SMTPConfig
	Analytics AnalyticsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	// StorageDriver selects repository implementations: "postgres" or "memory"
	StorageDriver  string
	CORSOrigins    []string
	// TrustedProxies may set X-Forwarded-For; empty means use the socket address
	TrustedProxies []string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// AdminConfig holds the single moderation account. The password is stored as a
// bcrypt hash, never in plain text.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// SecurityConfig tunes password hashing and the login lockout shared by the
// admin and talent sign-in endpoints.
type SecurityConfig struct {
	BcryptCost       int
	MaxLoginAttempts int
	LoginLockout     time.Duration
	ResetCodeTTL     time.Duration
}

// SMTPConfig is the outgoing mail relay. With an empty Host, mail is written
// to the log instead of being sent.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type AnalyticsConfig struct {
	RetentionDays int
	PurgeSchedule string // cron expression for the event retention job
}

type MinIOConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type QueueConfig struct {
	Enabled           bool
	RedisAddr         string
	Concurrency       int
	ReconcileSchedule string // cron expression for the vote counter repair job
	HealthPort        string
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Fashion Magazine API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			StorageDriver:  getEnv("STORAGE_DRIVER", "postgres"),
			CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
			TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvDuration("JWT_TOKEN_EXPIRY", 24*time.Hour),
		},
		Admin: AdminConfig{
			Email:        strings.ToLower(getEnv("ADMIN_EMAIL", "admin@fashionmag.local")),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Security: SecurityConfig{
			BcryptCost:       getEnvInt("BCRYPT_COST", 12),
			MaxLoginAttempts: getEnvInt("MAX_LOGIN_ATTEMPTS", 5),
			LoginLockout:     getEnvDuration("LOGIN_LOCKOUT", 15*time.Minute),
			ResetCodeTTL:     getEnvDuration("PASSWORD_RESET_CODE_TTL", 15*time.Minute),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@fashionmag.local"),
		},
		Analytics: AnalyticsConfig{
			RetentionDays: getEnvInt("ANALYTICS_RETENTION_DAYS", 180),
			PurgeSchedule: getEnv("ANALYTICS_PURGE_SCHEDULE", "30 3 * * *"),
		},
		MinIO: MinIOConfig{
			Enabled:   getEnvBool("MINIO_ENABLED", false),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "fashionmag"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Queue: QueueConfig{
			Enabled:           getEnvBool("QUEUE_ENABLED", false),
			RedisAddr:         getEnv("QUEUE_REDIS_ADDR", getEnv("REDIS_HOST", "localhost:6379")),
			Concurrency:       getEnvInt("WORKER_CONCURRENCY", 10),
			ReconcileSchedule: getEnv("VOTE_RECONCILE_SCHEDULE", "0 3 * * *"),
			HealthPort:        getEnv("WORKER_HEALTH_PORT", "9999"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values that must not reach production
func (c *Config) Validate() error {
	switch c.App.StorageDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be postgres or memory, got %q", c.App.StorageDriver)
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Security.BcryptCost)
	}

	if c.Security.ResetCodeTTL <= 0 {
		return fmt.Errorf("PASSWORD_RESET_CODE_TTL must be positive")
	}

	if c.Analytics.RetentionDays < 1 {
		return fmt.Errorf("ANALYTICS_RETENTION_DAYS must be at least 1, got %d", c.Analytics.RetentionDays)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.App.StorageDriver == "postgres" && os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Admin.PasswordHash == "" {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
