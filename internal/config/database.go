package config

import (
	"fmt"
	"time"
)

// DatabaseConfig holds PostgreSQL connection pool configuration.
type DatabaseConfig struct {
	PostgresURL     string        `env:"TASKPAD_POSTGRES_URL"`
	MaxOpenConns    int           `env:"TASKPAD_DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `env:"TASKPAD_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `env:"TASKPAD_DB_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `env:"TASKPAD_DB_CONN_MAX_IDLE_TIME" default:"1m"`
}

// Validate checks required database settings.
func (c *DatabaseConfig) Validate() error {
	if c.PostgresURL == "" {
		return fmt.Errorf("TASKPAD_POSTGRES_URL is required")
	}
	return nil
}
