package config

import (
	"fmt"

	"github.com/rezkam/taskpad/internal/env"
)

// Config holds the application configuration.
// All variables carry the TASKPAD_ prefix. Nested sections validate themselves
// during env.Parse via the env.Validator hook.
type Config struct {
	Env string `env:"TASKPAD_ENV" default:"dev"` // dev, prod

	Server        ServerConfig
	Database      DatabaseConfig
	Auth          AuthConfig
	Storage       StorageConfig
	Observability ObservabilityConfig
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
