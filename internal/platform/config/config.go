// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Yomira Kids API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Change feed relay (optional). The relay is disabled when RedisURL is empty.
	RedisURL     string `env:"REDIS_URL"`
	RedisChannel string `env:"REDIS_CHANNEL" envDefault:"yomira-kids:favorites"`

	// Home screen
	FeaturedCount int `env:"FEATURED_COUNT" envDefault:"3"`

	// Cross-Origin Resource Sharing: origins ending with this suffix are allowed outside development.
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"yomira.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.FeaturedCount < 0 {
		return nil, fmt.Errorf("config: FEATURED_COUNT must not be negative, got %d", cfg.FeaturedCount)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// RelayEnabled reports whether favorite changes are relayed to Redis.
func (c *Config) RelayEnabled() bool {
	return c.RedisURL != ""
}

// OriginSuffix returns the allowed CORS origin suffix.
func (c *Config) OriginSuffix() string {
	return c.AllowedOrigin
}
