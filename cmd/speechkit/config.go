package main

import (
	"fmt"
	"time"

	"github.com/kbukum/speechkit/api"
	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/config"
	"github.com/kbukum/speechkit/locale"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/redis"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/speechapi"
	"github.com/kbukum/speechkit/storage"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/transcription/gateway"
	"github.com/kbukum/speechkit/version"
)

const serviceName = "speechkit"

// AppConfig is the speechkit configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Speech        SpeechConfig         `yaml:"speech" mapstructure:"speech"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Redis         redis.Config         `yaml:"redis" mapstructure:"redis"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	API           api.Config           `yaml:"api" mapstructure:"api"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Gateway       gateway.Config       `yaml:"gateway" mapstructure:"gateway"`
}

// SpeechConfig groups the platform client, batch orchestration and live
// session settings.
type SpeechConfig struct {
	speechapi.Config `yaml:",inline" mapstructure:",squash"`

	Batch     batch.Config         `yaml:"batch" mapstructure:"batch"`
	Live      transcription.Config `yaml:"live" mapstructure:"live"`
	LocaleTTL time.Duration        `yaml:"locale_ttl" mapstructure:"locale_ttl"`
}

// envAliases accepts the variable names used by existing deployments.
var envAliases = map[string]string{
	"AZURE_SPEECH_KEY":                "speech.key",
	"AZURE_SPEECH_REGION":             "speech.region",
	"AZURE_SPEECH_ENDPOINT":           "speech.endpoint",
	"DEFAULT_LOCALE":                  "speech.batch.default_locale",
	"BATCH_MAX_FILES":                 "speech.batch.max_files",
	"DEFAULT_MIN_SPEAKERS":            "speech.batch.speakers.min_speakers",
	"DEFAULT_MAX_SPEAKERS":            "speech.batch.speakers.max_speakers",
	"AZURE_STORAGE_ACCOUNT_NAME":      "storage.account_name",
	"AZURE_STORAGE_ACCOUNT_KEY":       "storage.account_key",
	"AZURE_STORAGE_CONTAINER_NAME":    "storage.container",
	"AZURE_TENANT_ID":                 "storage.tenant_id",
	"AZURE_CLIENT_ID":                 "storage.client_id",
	"AZURE_CLIENT_SECRET":             "storage.client_secret",
	"ENABLE_BLOB_STORAGE":             "storage.enabled",
	"REALTIME_ALLOWED_EXTENSIONS":     "api.realtime_extensions",
	"BATCH_ALLOWED_EXTENSIONS":        "api.batch_extensions",
	"RATE_LIMIT_PER_MINUTE":           "server.rate_limit.requests_per_minute",
	"MAX_CONTENT_LENGTH":              "server.max_body_size",
	"OTEL_EXPORTER_OTLP_ENDPOINT":     "observability.endpoint",
	"SPEECH_GATEWAY_URL":              "gateway.url",
	"SPEECH_GATEWAY_TRANSCRIBE_TOKEN": "gateway.key",
}

// ApplyDefaults fills every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Short()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Speech.ApplyDefaults()
	c.Speech.Batch.ApplyDefaults()
	c.Speech.Live.ApplyDefaults()
	if c.Speech.LocaleTTL <= 0 {
		c.Speech.LocaleTTL = locale.DefaultTTL
	}
	c.Storage.ApplyDefaults()
	c.Redis.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.API.ApplyDefaults()
	c.Observability.ApplyDefaults()
	if c.Gateway.Key == "" {
		c.Gateway.Key = c.Speech.Key
	}
	if c.Gateway.Region == "" {
		c.Gateway.Region = c.Speech.Region
	}
	c.Gateway.ApplyDefaults()
}

// Validate checks every section. The platform credentials are checked by
// the commands that call the platform.
func (c *AppConfig) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"service", c.ServiceConfig.Validate},
		{"speech.batch", c.Speech.Batch.Validate},
		{"storage", func() error {
			if !c.Storage.Enabled {
				return nil
			}
			return c.Storage.Validate()
		}},
		{"redis", c.Redis.Validate},
		{"server", c.Server.Validate},
		{"api", c.API.Validate},
		{"observability", c.Observability.Validate},
	}
	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}
	return nil
}

// loadConfig reads the configuration for the CLI flags in use.
func loadConfig(flags *rootFlags) (*AppConfig, error) {
	var opts []config.LoaderOption
	if flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(flags.configFile))
	}
	if flags.envFile != "" {
		opts = append(opts, config.WithEnvFile(flags.envFile))
	}
	opts = append(opts, config.WithEnvAliases(envAliases))

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if flags.debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}
