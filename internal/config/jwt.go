// Package config provides JWT configuration functionality.
package config

import (
	"fmt"
	"os"
	"time"
)

// JWTConfig holds configuration for JWT token validation. Tokens are issued elsewhere.
type JWTConfig struct {
	Secret string
	Issuer string        // optional; when set, the iss claim must match
	Leeway time.Duration // tolerated clock skew
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ISSUER (optional) and JWT_LEEWAY (default: 30s).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	leewayStr := os.Getenv("JWT_LEEWAY")
	if leewayStr == "" {
		leewayStr = "30s" // default
	}
	leeway, err := time.ParseDuration(leewayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_LEEWAY: %v", err)
	}

	config := &JWTConfig{
		Secret: secret,
		Issuer: os.Getenv("JWT_ISSUER"),
		Leeway: leeway,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.Leeway < 0 || c.Leeway > 5*time.Minute {
		return fmt.Errorf("JWT_LEEWAY must be between 0 and 5m, got: %s", c.Leeway)
	}
	return nil
}
