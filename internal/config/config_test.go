package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "SHUTDOWN_TIMEOUT", "CONTENT_PATH", "STATIC_DIR", "ANALYTICS_DB_PATH", "VISITOR_RETENTION", "VISITOR_CLEANUP_SCHEDULE", "APP_ENV", "APP_VERSION"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.False(t, cfg.Analytics.Enabled())
	assert.Equal(t, 8760*time.Hour, cfg.Analytics.Retention)
	assert.Equal(t, "@daily", cfg.Analytics.CleanupSchedule)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("CONTENT_PATH", "/srv/portfolio.yaml")
	t.Setenv("ANALYTICS_DB_PATH", "/tmp/visitors.db")
	t.Setenv("VISITOR_RETENTION", "720h")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "/srv/portfolio.yaml", cfg.Content.Path)
	assert.True(t, cfg.Analytics.Enabled())
	assert.Equal(t, 720*time.Hour, cfg.Analytics.Retention)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080", GinMode: "debug", ShutdownTimeout: time.Second},
			Analytics: AnalyticsConfig{Retention: time.Hour, CleanupSchedule: "@daily"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"no port", func(c *Config) { c.Server.Port = " " }, "PORT"},
		{"bad mode", func(c *Config) { c.Server.GinMode = "prod" }, "GIN_MODE"},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
		{"release without admin creds", func(c *Config) {
			c.Server.GinMode = "release"
			c.Analytics.DBPath = "x.db"
		}, "ADMIN_USERNAME"},
		{"bad cleanup schedule", func(c *Config) {
			c.Analytics.DBPath = "x.db"
			c.Analytics.CleanupSchedule = "sometimes"
		}, "VISITOR_CLEANUP_SCHEDULE"},
		{"zero retention", func(c *Config) {
			c.Analytics.DBPath = "x.db"
			c.Analytics.Retention = 0
		}, "VISITOR_RETENTION"},
		{"release analytics off", func(c *Config) { c.Server.GinMode = "release" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
