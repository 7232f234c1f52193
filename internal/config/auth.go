package config

import (
	"fmt"
	"time"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// JWTSecret signs bearer tokens. Required; there is no safe default.
	JWTSecret string        `env:"TASKPAD_JWT_SECRET"`
	TokenTTL  time.Duration `env:"TASKPAD_TOKEN_TTL" default:"3h"`

	// Login rate limiting, keyed by source address.
	LoginMaxAttempts int           `env:"TASKPAD_LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginWindow      time.Duration `env:"TASKPAD_LOGIN_WINDOW" default:"15m"`
}

// Validate checks required authentication settings.
func (c *AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("TASKPAD_JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TASKPAD_TOKEN_TTL must be positive")
	}
	if c.LoginMaxAttempts <= 0 {
		return fmt.Errorf("TASKPAD_LOGIN_MAX_ATTEMPTS must be positive")
	}
	return nil
}
