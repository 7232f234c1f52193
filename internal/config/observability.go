package config

// ObservabilityConfig holds OpenTelemetry configuration.
// Exporter endpoint and headers come from the standard OTEL_* env vars.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TASKPAD_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"TASKPAD_OTEL_SERVICE_NAME" default:"taskpad"`
}
