// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultWebhookTarget is where the admin webhook tester posts by default.
const DefaultWebhookTarget = "http://localhost:8080/api/webhooks/kiwify"

// Config holds every setting the service reads at startup.
type Config struct {
	Addr        string
	WebDir      string
	DatabaseURL string

	LogLevel  string
	LogFormat string

	KiwifyToken      string
	WebhookTargetURL string

	SessionTTL       time.Duration
	TrustForwardAuth bool

	// Admin seeds the first administrator when the store is empty.
	Admin AdminConfig

	OIDC OIDCConfig
}

// AdminConfig describes the bootstrap administrator account.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Enabled reports whether both credentials are set.
func (c AdminConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}

// OIDCConfig holds the OpenID Connect client settings for single sign-on.
type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether single sign-on is configured.
func (c OIDCConfig) Enabled() bool {
	return c.Issuer != "" && c.ClientID != ""
}

// LoadDotEnv loads files (default ".env") into the environment without
// overriding variables that are already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load builds a Config from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:             env("ADDR", ":8080"),
		WebDir:           env("WEB_DIR", "web"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		LogLevel:         env("LOG_LEVEL", "info"),
		LogFormat:        env("LOG_FORMAT", "json"),
		KiwifyToken:      os.Getenv("KIWIFY_TOKEN"),
		WebhookTargetURL: env("WEBHOOK_TARGET_URL", DefaultWebhookTarget),
		Admin: AdminConfig{
			Name:     env("ADMIN_NAME", "Admin"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		OIDC: OIDCConfig{
			Issuer:       os.Getenv("OIDC_ISSUER"),
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		},
	}

	ttl, err := time.ParseDuration(env("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	trust, err := strconv.ParseBool(env("TRUST_FORWARD_AUTH", "false"))
	if err != nil {
		return nil, fmt.Errorf("TRUST_FORWARD_AUTH: %w", err)
	}
	cfg.TrustForwardAuth = trust

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
