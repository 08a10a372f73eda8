// Package config loads application configuration from environment
// variables into a single struct, parsed once at startup and passed down
// explicitly — no package reads os.Getenv on its own.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/blog.db"`

	// SessionSecret signs session tokens. Unlike optional integrations,
	// sessions are core — the server refuses to start without it.
	// Generate with: openssl rand -hex 32
	SessionSecret string `env:"SESSION_SECRET"`

	// StrictAuthorGuard switches the mutation guard from the legacy
	// "user owns any post" policy to per-post ownership checking.
	StrictAuthorGuard bool `env:"STRICT_AUTHOR_GUARD" envDefault:"false"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	ContactFrom  string `env:"CONTACT_FROM"`
	ContactTo    string `env:"CONTACT_TO"`
}

// Load parses the environment into a Config and validates required fields.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("config: SESSION_SECRET is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: invalid PORT %d", cfg.Port)
	}

	return cfg, nil
}
