package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, populated from the environment.
type Config struct {
	Env      string `env:"MIMAMORI_ENV" envDefault:"development"`
	Port     string `env:"MIMAMORI_PORT" envDefault:"8080"`
	DBPath   string `env:"MIMAMORI_DB_PATH" envDefault:"mimamori.db"`
	LogLevel string `env:"MIMAMORI_LOG_LEVEL" envDefault:"info"`

	// Identity provider token verification
	TokenSigningKey string `env:"MIMAMORI_TOKEN_SIGNING_KEY"`
	TokenIssuer     string `env:"MIMAMORI_TOKEN_ISSUER" envDefault:"mimamori-id"`
	TokenAudience   string `env:"MIMAMORI_TOKEN_AUDIENCE" envDefault:"mimamori"`

	// Object storage (S3-compatible; the production deployment points this
	// at Cloudflare R2)
	S3Endpoint  string `env:"MIMAMORI_S3_ENDPOINT"`
	S3Region    string `env:"MIMAMORI_S3_REGION" envDefault:"auto"`
	S3Bucket    string `env:"MIMAMORI_S3_BUCKET" envDefault:"mimamori-compass"`
	S3AccessKey string `env:"MIMAMORI_S3_ACCESS_KEY"`
	S3SecretKey string `env:"MIMAMORI_S3_SECRET_KEY"`

	// Public host that serves uploaded media, e.g. https://img.example.com
	MediaHostURL string `env:"MIMAMORI_MEDIA_HOST_URL"`

	// Sighting alert email
	PostmarkToken string `env:"MIMAMORI_POSTMARK_TOKEN"`
	FromEmail     string `env:"MIMAMORI_FROM_EMAIL" envDefault:"alerts@mimamori-compass.app"`
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.TokenSigningKey == "" {
		return nil, fmt.Errorf("MIMAMORI_TOKEN_SIGNING_KEY is required")
	}

	return cfg, nil
}

// Production reports whether the service runs in production mode. Session
// cookies are marked Secure only in production.
func (c *Config) Production() bool {
	return c.Env == "production"
}
