package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Admin     AdminConfig
	Media     MediaConfig
	S3        S3Config
	Kafka     KafkaConfig
	Promotion PromotionConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
	// CORSOrigin is the allowed browser origin; "*" allows any.
	CORSOrigin string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AdminConfig holds the admin dashboard credentials and session settings.
type AdminConfig struct {
	Password      string
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool
}

// Media backends.
const (
	MediaBackendLocal = "local"
	MediaBackendS3    = "s3"
)

// MediaConfig selects where gallery uploads are stored.
type MediaConfig struct {
	Backend        string
	Dir            string
	MaxUploadBytes int64
}

// S3Config holds AWS S3 configuration for gallery media.
type S3Config struct {
	Bucket    string
	Region    string
	Prefix    string // Path prefix within bucket (e.g., "cafe/")
	PublicURL string // Base URL objects are served from; empty means the bucket URL
}

// KafkaConfig holds the promotion change feed configuration. The feed is
// disabled when no brokers are set.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Enabled reports whether a change feed is configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// PromotionConfig holds promotion snapshot settings.
type PromotionConfig struct {
	RefreshInterval time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:       getEnv("SERVER_HOST", "0.0.0.0"),
			Port:       getEnvAsInt("SERVER_PORT", 8080),
			CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "cafe"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Admin: AdminConfig{
			Password:      getEnv("ADMIN_PASSWORD", ""),
			SessionSecret: getEnv("SESSION_SECRET", ""),
			SessionTTL:    getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			SecureCookie:  getEnvAsBool("SESSION_SECURE", false),
		},
		Media: MediaConfig{
			Backend:        getEnv("MEDIA_BACKEND", MediaBackendLocal),
			Dir:            getEnv("MEDIA_DIR", "./media"),
			MaxUploadBytes: int64(getEnvAsInt("MEDIA_MAX_UPLOAD_MB", 50)) << 20,
		},
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Prefix:    getEnv("S3_PREFIX", ""),
			PublicURL: getEnv("S3_PUBLIC_URL", ""),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "cafe.promotions"),
			GroupID: getEnv("KAFKA_GROUP_ID", ""),
		},
		Promotion: PromotionConfig{
			RefreshInterval: getEnvAsDuration("PROMOTION_REFRESH_INTERVAL", time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Admin.Password == "" {
		return fmt.Errorf("admin password is required")
	}

	if len(c.Admin.SessionSecret) < 16 {
		return fmt.Errorf("session secret must be at least 16 characters")
	}

	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	switch c.Media.Backend {
	case MediaBackendLocal:
		if c.Media.Dir == "" {
			return fmt.Errorf("media directory is required for the local backend")
		}
	case MediaBackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required for the s3 media backend")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required for the s3 media backend")
		}
	default:
		return fmt.Errorf("invalid media backend: %s (must be local or s3)", c.Media.Backend)
	}

	if c.Media.MaxUploadBytes <= 0 {
		return fmt.Errorf("media max upload size must be positive")
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka topic is required when brokers are set")
	}

	if c.Promotion.RefreshInterval <= 0 {
		return fmt.Errorf("promotion refresh interval must be positive")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration (e.g. "90s")
// or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping empty entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
