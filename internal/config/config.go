// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backend kinds selected from the database URL.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// DBURL selects the storage backend: empty means in-memory,
	// a mysql:// DSN means MySQL, anything else is a SQLite file path.
	DBURL      string `env:"PORTFOLIO_DB_URL"`
	ServerHost string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`

	// AdminEmail is consulted once, when the account is provisioned.
	// Authorization afterwards relies on the persisted role column only.
	AdminEmail    string `env:"PORTFOLIO_ADMIN_EMAIL" envDefault:"rafaelaolbo@gmail.com"`
	AdminPassword string `env:"PORTFOLIO_ADMIN_PASSWORD"`

	// Cache configuration
	RedisURL    string `env:"PORTFOLIO_REDIS_URL"`                       // Optional Redis URL for the list cache
	CachePrefix string `env:"PORTFOLIO_CACHE_PREFIX" envDefault:"pf:"`   // Redis key prefix
	CacheTTL    int    `env:"PORTFOLIO_CACHE_TTL" envDefault:"300"`      // List cache TTL in seconds
	CacheMax    int    `env:"PORTFOLIO_CACHE_MAX_SIZE" envDefault:"256"` // Max memory cache entries

	// AllowedOrigins is a comma-separated CORS origin list for the
	// decoupled frontend. Empty disables cross-origin access.
	AllowedOrigins string `env:"PORTFOLIO_ALLOWED_ORIGINS"`

	// DevAutologin enables the legacy shim that attaches the admin
	// identity to every request. Refused outside development.
	DevAutologin bool `env:"PORTFOLIO_DEV_AUTOLOGIN" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Backend returns the storage backend kind implied by DBURL.
func (c Config) Backend() string {
	switch {
	case c.DBURL == "":
		return BackendMemory
	case strings.HasPrefix(c.DBURL, "mysql://"):
		return BackendMySQL
	default:
		return BackendSQLite
	}
}

// MySQLDSN strips the mysql:// scheme so the DSN can be handed to the driver.
func (c Config) MySQLDSN() string {
	return strings.TrimPrefix(c.DBURL, "mysql://")
}

// Origins returns the parsed CORS origin list.
func (c Config) Origins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DevAutologin && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("PORTFOLIO_DEV_AUTOLOGIN is only allowed when PORTFOLIO_ENV=development")
	}

	return cfg, nil
}
