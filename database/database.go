// Package database opens the Postgres connection used by the user store,
// with retry logic and connection pooling.
package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bondiano/social-network-higload/logger"
)

// Config holds database connection configuration.
type Config struct {
	// DSN is the Postgres connection string.
	DSN string `mapstructure:"dsn"`

	// MaxOpenConns caps the connection pool (default 10).
	MaxOpenConns int `mapstructure:"max_open_conns"`

	// MaxIdleConns is the idle pool size (default 2).
	MaxIdleConns int `mapstructure:"max_idle_conns"`

	// ConnMaxLifetime is the maximum connection age (e.g. "30m").
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`

	// MaxRetries is how many connection attempts to make at boot (default 3).
	MaxRetries int `mapstructure:"max_retries"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetime == "" {
		c.ConnMaxLifetime = "30m"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	return nil
}

// Open connects to Postgres with retries and configures the pool.
// TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*gorm.DB, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("database config: %w", err)
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
		}

		db, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
				sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
				if lifetime, parseErr := time.ParseDuration(cfg.ConnMaxLifetime); parseErr == nil {
					sqlDB.SetConnMaxLifetime(lifetime)
				}
				log.Info("Database connection established", map[string]interface{}{
					"attempt": attempt,
				})
				return db, nil
			}
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(attempt) * time.Second
			log.Warn("Database connection attempt failed, retrying", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
				"backoff": backoff.String(),
			})
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("database connection canceled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.MaxRetries, err)
}
