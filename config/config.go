// Package config loads the service configuration from config.yml, .env and
// the process environment, in that order of precedence (later wins).
package config

import (
	"fmt"

	"github.com/bondiano/social-network-higload/auth"
	"github.com/bondiano/social-network-higload/database"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/observability"
	"github.com/bondiano/social-network-higload/redis"
	"github.com/bondiano/social-network-higload/server"
)

// Config is the root configuration of the service.
type Config struct {
	Environment string                     `yaml:"environment" mapstructure:"environment"`
	Server      server.Config              `yaml:"server" mapstructure:"server"`
	Logging     logger.Config              `yaml:"logging" mapstructure:"logging"`
	JWT         auth.Config                `yaml:"jwt" mapstructure:"jwt"`
	Redis       redis.Config               `yaml:"redis" mapstructure:"redis"`
	Database    database.Config            `yaml:"database" mapstructure:"database"`
	Tracing     observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`

	// PoolSize bounds the CPU-bound worker pool. Zero means one worker
	// per CPU.
	PoolSize int `yaml:"pool_size" mapstructure:"pool_size"`
}

// ApplyDefaults fills unset fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Database.ApplyDefaults()
	if c.Tracing.ServiceName == "" {
		c.Tracing = observability.DefaultTracerConfig("sn-auth")
	}
}

// Validate checks every section. A missing JWT secret is fatal here; the
// service never falls back to a built-in key.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads the configuration for the named service, applies defaults and
// validates the result.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadInto(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
