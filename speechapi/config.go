package speechapi

import (
	"fmt"
	"strings"
	"time"
)

const (
	// KeyHeader carries the subscription key on every platform call.
	KeyHeader = "Ocp-Apim-Subscription-Key"

	defaultAPIVersion       = "v3.1"
	defaultModelsAPIVersion = "v3.2"
	defaultTimeout          = 30 * time.Second
	defaultMaxIdleConns     = 20
	defaultMaxConnsPerHost  = 10
	defaultMaxRetries       = 3
)

// Config configures the platform client.
type Config struct {
	Key    string `yaml:"key" mapstructure:"key"`
	Region string `yaml:"region" mapstructure:"region"`
	// Endpoint overrides the regional host, e.g. for private endpoints.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// APIVersion is the transcription API version.
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`
	// ModelsAPIVersion is the version used for the models listing.
	ModelsAPIVersion string `yaml:"models_api_version" mapstructure:"models_api_version"`

	Timeout         time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host" mapstructure:"max_conns_per_host"`
	// MaxRetries is the number of attempts for retryable failures.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
	if c.ModelsAPIVersion == "" {
		c.ModelsAPIVersion = defaultModelsAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
	if c.MaxConnsPerHost <= 0 {
		c.MaxConnsPerHost = defaultMaxConnsPerHost
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
}

// Validate checks that the client can address the platform.
func (c *Config) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("speechapi: key is required")
	}
	if c.Region == "" && c.Endpoint == "" {
		return fmt.Errorf("speechapi: region or endpoint is required")
	}
	return nil
}

// Host returns the platform root, without the API path.
func (c *Config) Host() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/")
	}
	return fmt.Sprintf("https://%s.api.cognitive.microsoft.com", c.Region)
}

// BaseURL is the transcription API root.
func (c *Config) BaseURL() string {
	return c.Host() + "/speechtotext/" + c.APIVersion
}

// ModelsURL is the models listing URL.
func (c *Config) ModelsURL() string {
	return c.Host() + "/speechtotext/" + c.ModelsAPIVersion + "/models"
}
