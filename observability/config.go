package observability

import (
	"fmt"
	"time"
)

// Config enables export of traces and metrics over OTLP HTTP.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills zero fields with development defaults.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the sampling rate.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability: sample_rate must be within [0, 1], got %v", c.SampleRate)
	}
	return nil
}

// Tracer returns the tracer settings for service.
func (c Config) Tracer(service, version, env string) TracerConfig {
	return TracerConfig{
		ServiceName: service, ServiceVersion: version, Environment: env,
		Endpoint: c.Endpoint, Insecure: c.Insecure, SampleRate: c.SampleRate,
	}
}

// Meter returns the meter settings for service.
func (c Config) Meter(service, version, env string) MeterConfig {
	return MeterConfig{
		ServiceName: service, ServiceVersion: version, Environment: env,
		Endpoint: c.Endpoint, Insecure: c.Insecure, Interval: c.Interval,
	}
}
