package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name. Tagged names also fall back
// to the bare variable, so SENTRY_DSN and ENVIRONMENT work unprefixed.
const Prefix = "AIFAQ"

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1"`

	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `envconfig:"OPENAI_BASE_URL"`
	ChatModel       string        `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	ChatMaxTokens   int           `envconfig:"CHAT_MAX_TOKENS" default:"1024"`
	RelayTimeout    time.Duration `envconfig:"RELAY_TIMEOUT" default:"30s"`
	ChatMaxMessages int           `envconfig:"CHAT_MAX_MESSAGES" default:"40"`
	ChatLogEnabled  bool          `envconfig:"CHAT_LOG_ENABLED" default:"true"`

	// ChatRateLimit is requests per minute per client; 0 disables limiting.
	ChatRateLimit int    `envconfig:"CHAT_RATE_LIMIT" default:"0"`
	RedisURL      string `envconfig:"REDIS_URL"`

	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"change-me-please"`

	CatalogRefreshInterval time.Duration `envconfig:"CATALOG_REFRESH_INTERVAL" default:"5m"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"aifaq-seeds"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// HasRateLimit reports whether chat requests should be rate limited.
func (c *Config) HasRateLimit() bool {
	return c.RedisURL != "" && c.ChatRateLimit > 0
}

// TracesSampleRate samples everything outside production.
func (c *Config) TracesSampleRate() float64 {
	if c.Environment == "production" {
		return 0.1
	}
	return 1.0
}
