package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the platform service.
// Values come from environment variables; a local .env file is loaded
// first when present.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	Casdoor CasdoorConfig
	Kafka   KafkaConfig
	Storage StorageConfig
	Resend  ResendConfig
}

// CasdoorConfig configures the identity provider connection.
type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// KafkaConfig configures the event publisher. Empty Brokers disables
// Kafka and falls back to the in-memory publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// StorageConfig configures the S3-compatible object store used for
// direct browser uploads.
type StorageConfig struct {
	Endpoint   string
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	PublicURL  string
	PresignTTL time.Duration
}

// ResendConfig configures transactional email. An empty APIKey
// disables sending.
type ResendConfig struct {
	APIKey    string
	FromEmail string
	AppURL    string
}

func LoadConfig() (*Config, error) {
	// Best effort: the .env file only exists in local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		Casdoor: CasdoorConfig{
			Endpoint:     os.Getenv("CASDOOR_ENDPOINT"),
			ClientID:     os.Getenv("CASDOOR_CLIENT_ID"),
			ClientSecret: os.Getenv("CASDOOR_CLIENT_SECRET"),
			Cert:         os.Getenv("CASDOOR_CERT"),
			Organization: getEnv("CASDOOR_ORGANIZATION", "genzhirehub"),
			Application:  getEnv("CASDOOR_APPLICATION", "platform"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "platform.events"),
		},
		Storage: StorageConfig{
			Endpoint:   os.Getenv("STORAGE_ENDPOINT"),
			Region:     getEnv("STORAGE_REGION", "auto"),
			Bucket:     os.Getenv("STORAGE_BUCKET"),
			AccessKey:  os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:  os.Getenv("STORAGE_SECRET_KEY"),
			PublicURL:  os.Getenv("STORAGE_PUBLIC_URL"),
			PresignTTL: parseDuration(getEnv("STORAGE_PRESIGN_TTL", "15m")),
		},
		Resend: ResendConfig{
			APIKey:    os.Getenv("RESEND_API_KEY"),
			FromEmail: getEnv("RESEND_FROM_EMAIL", "GenzHireHub <hello@genzhirehub.com>"),
			AppURL:    getEnv("APP_URL", "https://genzhirehub.com"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Casdoor.Endpoint == "" || cfg.Casdoor.ClientID == "" {
		return nil, fmt.Errorf("CASDOOR_ENDPOINT and CASDOOR_CLIENT_ID are required")
	}

	return cfg, nil
}

// StorageEnabled reports whether enough configuration is present to
// build an object-store client.
func (c *Config) StorageEnabled() bool {
	return c.Storage.Bucket != "" && c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}
