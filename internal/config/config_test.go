package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ADDR", "WEB_DIR", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT",
		"KIWIFY_TOKEN", "WEBHOOK_TARGET_URL", "SESSION_TTL", "TRUST_FORWARD_AUTH",
		"OIDC_ISSUER", "OIDC_CLIENT_ID", "OIDC_CLIENT_SECRET", "OIDC_REDIRECT_URL",
		"ADMIN_NAME", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "web", cfg.WebDir)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultWebhookTarget, cfg.WebhookTargetURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.TrustForwardAuth)
	assert.False(t, cfg.OIDC.Enabled())
	assert.False(t, cfg.Admin.Enabled())
	assert.Equal(t, "Admin", cfg.Admin.Name)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("TRUST_FORWARD_AUTH", "true")
	t.Setenv("KIWIFY_TOKEN", "tok")
	t.Setenv("OIDC_ISSUER", "https://id.example.com")
	t.Setenv("OIDC_CLIENT_ID", "vivaleve")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "segredo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.TrustForwardAuth)
	assert.Equal(t, "tok", cfg.KiwifyToken)
	assert.True(t, cfg.OIDC.Enabled())
	assert.True(t, cfg.Admin.Enabled())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad ttl", "SESSION_TTL", "soon"},
		{"negative ttl", "SESSION_TTL", "-1h"},
		{"bad bool", "TRUST_FORWARD_AUTH", "maybe"},
		{"bad format", "LOG_FORMAT", "xml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":7000")
	// Cleanup from Setenv restores the variable after godotenv sets it.
	require.NoError(t, os.Unsetenv("KIWIFY_TOKEN"))

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ADDR=:1111\nKIWIFY_TOKEN=from-file\n"), 0o600))

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr, "existing variables win")
	assert.Equal(t, "from-file", cfg.KiwifyToken)

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
