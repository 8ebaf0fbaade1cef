package observability

import (
	"time"

	"github.com/kbukum/gojoin/validation"
)

// Config configures OpenTelemetry export for a run.
type Config struct {
	// Enabled turns on OTLP export. When false the global no-op providers stay in place.
	Enabled bool `mapstructure:"enabled"`
	// ServiceName is the name reported in the resource.
	ServiceName string `mapstructure:"service_name"`
	// ServiceVersion is the version reported in the resource.
	ServiceVersion string `mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	// Insecure allows plain HTTP export.
	Insecure bool `mapstructure:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// Interval is the metric export interval.
	Interval time.Duration `mapstructure:"interval"`
	// ShutdownTimeout bounds the final flush when a run ends.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns telemetry settings for local development. Export is
// disabled.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName: serviceName,
		Environment: "development",
		Endpoint:    "localhost:4318",
		Insecure:    true,
		SampleRate:  1.0,
		Interval:    15 * time.Second,

		ShutdownTimeout: 5 * time.Second,
	}
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "gojoin"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	return validation.New().
		Merge("", validation.Validate(c)).
		Custom(!c.Enabled || c.Endpoint != "", "endpoint", "is required when telemetry is enabled").
		Validate()
}
