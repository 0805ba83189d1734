package storage

import (
	"errors"
	"fmt"
	"time"
)

// Provider names for the supported backends.
const (
	ProviderAzure  = "azure"
	ProviderS3     = "s3"
	ProviderMemory = "memory"
)

// Default configuration values.
const (
	DefaultProvider  = ProviderAzure
	DefaultContainer = "audio-files"
	DefaultRegion    = "us-east-1"
	DefaultSASExpiry = 24 * time.Hour
)

// Config holds storage configuration. Azure and S3 fields are read only by
// their own backend.
type Config struct {
	// Provider selects the backend: "azure", "s3" or "memory".
	Provider string `mapstructure:"provider" json:"provider"`

	// Container is the Azure container or S3 bucket that receives uploads.
	Container string `mapstructure:"container" json:"container"`

	// AccountName is the Azure storage account.
	AccountName string `mapstructure:"account_name" json:"account_name"`
	// AccountKey enables shared-key auth. When empty, Azure AD is used.
	AccountKey string `mapstructure:"account_key" json:"-"`
	// TenantID, ClientID and ClientSecret select a service principal.
	// When empty, the default Azure credential chain is used.
	TenantID     string `mapstructure:"tenant_id" json:"tenant_id"`
	ClientID     string `mapstructure:"client_id" json:"client_id"`
	ClientSecret string `mapstructure:"client_secret" json:"-"`

	// Region is the AWS region for S3.
	Region string `mapstructure:"region" json:"region"`
	// Endpoint overrides the service URL (Azurite, MinIO).
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
	// AccessKey and SecretKey are static S3 credentials.
	AccessKey string `mapstructure:"access_key" json:"-"`
	SecretKey string `mapstructure:"secret_key" json:"-"`

	// SASExpiry is the lifetime of read URLs handed to the platform.
	SASExpiry time.Duration `mapstructure:"sas_expiry" json:"sas_expiry"`

	// Enabled controls whether uploads are attempted at all. Without
	// storage, submissions return a placeholder job.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.SASExpiry <= 0 {
		c.SASExpiry = DefaultSASExpiry
	}
}

// Validate checks the fields the selected provider needs.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAzure:
		if c.AccountName == "" && c.Endpoint == "" {
			return errors.New("storage: account_name is required for azure provider")
		}
	case ProviderS3:
		var errs []error
		if c.Container == "" {
			errs = append(errs, errors.New("storage: container is required for s3 provider"))
		}
		if c.Region == "" {
			errs = append(errs, errors.New("storage: region is required for s3 provider"))
		}
		if len(errs) > 0 {
			return fmt.Errorf("storage: invalid s3 config: %w", errors.Join(errs...))
		}
	case ProviderMemory:
	default:
		return fmt.Errorf("storage: unsupported provider %q", c.Provider)
	}
	return nil
}

// Configured reports whether uploads can be attempted.
func (c *Config) Configured() bool {
	if !c.Enabled {
		return false
	}
	return c.Validate() == nil
}
