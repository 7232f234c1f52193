package config

import "time"

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host              string        `env:"TASKPAD_HTTP_HOST"` // empty means all interfaces
	Port              string        `env:"TASKPAD_HTTP_PORT" default:"8080"`
	ReadTimeout       time.Duration `env:"TASKPAD_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `env:"TASKPAD_HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout       time.Duration `env:"TASKPAD_HTTP_IDLE_TIMEOUT" default:"60s"`
	ReadHeaderTimeout time.Duration `env:"TASKPAD_HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	MaxHeaderBytes    int           `env:"TASKPAD_HTTP_MAX_HEADER_BYTES" default:"1048576"`
	MaxBodyBytes      int64         `env:"TASKPAD_HTTP_MAX_BODY_BYTES" default:"10485760"` // uploads included
	ShutdownTimeout   time.Duration `env:"TASKPAD_SHUTDOWN_TIMEOUT" default:"10s"`
}
