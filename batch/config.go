package batch

import (
	"fmt"
	"time"

	"github.com/kbukum/speechkit/diarization"
)

// Config tunes the orchestrator.
type Config struct {
	// DefaultLocale is used when a submission names none.
	DefaultLocale string `yaml:"default_locale" mapstructure:"default_locale"`
	// MaxFiles caps the files in one submission.
	MaxFiles int `yaml:"max_files" mapstructure:"max_files"`
	// PageSize is the default number of jobs listed.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
	// ResolverConcurrency caps parallel file lookups; zero or less is unbounded.
	ResolverConcurrency int `yaml:"resolver_concurrency" mapstructure:"resolver_concurrency"`
	// UploadConcurrency caps parallel uploads during submission.
	UploadConcurrency int `yaml:"upload_concurrency" mapstructure:"upload_concurrency"`
	// SASExpiry is the lifetime of the read URLs given to the platform.
	SASExpiry time.Duration `yaml:"sas_expiry" mapstructure:"sas_expiry"`
	// Speakers fills the bounds a submission leaves at zero.
	Speakers diarization.Range `yaml:"speakers" mapstructure:"speakers"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.DefaultLocale == "" {
		c.DefaultLocale = "en-US"
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = 100
	}
	if c.PageSize <= 0 {
		c.PageSize = 100
	}
	if c.ResolverConcurrency == 0 {
		c.ResolverConcurrency = 16
	}
	if c.UploadConcurrency <= 0 {
		c.UploadConcurrency = 4
	}
	if c.SASExpiry <= 0 {
		c.SASExpiry = 24 * time.Hour
	}
	c.Speakers.ApplyDefaults()
}

// Validate checks the limits.
func (c *Config) Validate() error {
	if c.MaxFiles < 1 {
		return fmt.Errorf("batch: max_files must be positive")
	}
	if c.SASExpiry < time.Hour {
		return fmt.Errorf("batch: sas_expiry must be at least 1h, got %s", c.SASExpiry)
	}
	if err := c.Speakers.Validate(); err != nil {
		return fmt.Errorf("batch: speakers: %w", err)
	}
	return nil
}
