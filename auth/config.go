package auth

import (
	"errors"
	"time"
)

// Config configures token issuance and verification.
type Config struct {
	// Secret is the shared HMAC signing key. Required; the process must not
	// start without it.
	Secret string `mapstructure:"secret"`

	// AccessExpirationSeconds is the access token lifetime (default 3600).
	AccessExpirationSeconds int `mapstructure:"access_expiration"`

	// RefreshExpirationSeconds is the refresh token lifetime (default 259200).
	RefreshExpirationSeconds int `mapstructure:"refresh_expiration"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.AccessExpirationSeconds <= 0 {
		c.AccessExpirationSeconds = 3600
	}
	if c.RefreshExpirationSeconds <= 0 {
		c.RefreshExpirationSeconds = 259200
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt secret is required")
	}
	return nil
}

// AccessTTL returns the access token lifetime as a duration.
func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessExpirationSeconds) * time.Second
}

// RefreshTTL returns the refresh token lifetime as a duration.
func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshExpirationSeconds) * time.Second
}
