package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Analytics AnalyticsConfig
	App       AppConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"debug"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type ContentConfig struct {
	// Path overrides the compiled-in portfolio table.
	Path string `env:"CONTENT_PATH"`
	// StaticDir is served ahead of the embedded assets, e.g. for a freshly
	// built main.wasm.
	StaticDir string `env:"STATIC_DIR"`
}

type AnalyticsConfig struct {
	// DBPath enables visitor metrics and the admin pages when set.
	DBPath        string        `env:"ANALYTICS_DB_PATH"`
	AdminUsername string        `env:"ADMIN_USERNAME"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	Retention     time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
	// CleanupSchedule is a standard cron spec for the retention purge.
	CleanupSchedule string `env:"VISITOR_CLEANUP_SCHEDULE" envDefault:"@daily"`
}

func (a AnalyticsConfig) Enabled() bool {
	return strings.TrimSpace(a.DBPath) != ""
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
}

// Parse reads the configuration from the environment. main autoloads .env
// before any command runs.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ginModes = map[string]bool{"debug": true, "release": true, "test": true}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("PORT is required")
	}
	if !ginModes[c.Server.GinMode] {
		return fmt.Errorf("invalid GIN_MODE %q: must be one of debug, release, test", c.Server.GinMode)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Analytics.Enabled() {
		if c.Analytics.Retention <= 0 {
			return errors.New("VISITOR_RETENTION must be positive")
		}
		if _, err := cron.ParseStandard(c.Analytics.CleanupSchedule); err != nil {
			return fmt.Errorf("invalid VISITOR_CLEANUP_SCHEDULE %q: %w", c.Analytics.CleanupSchedule, err)
		}
		if c.Server.GinMode == "release" && (c.Analytics.AdminUsername == "" || c.Analytics.AdminPassword == "") {
			return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD are required in release mode")
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
