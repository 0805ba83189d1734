package storage

import (
	"strings"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.Provider != ProviderAzure || c.Container != DefaultContainer || c.SASExpiry != 24*time.Hour {
		t.Errorf("ApplyDefaults() = %+v", c)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"azure with account", Config{Provider: ProviderAzure, AccountName: "acct"}, ""},
		{"azure with endpoint", Config{Provider: ProviderAzure, Endpoint: "http://127.0.0.1:10000/devstoreaccount1"}, ""},
		{"azure missing account", Config{Provider: ProviderAzure}, "account_name is required"},
		{"s3 missing bucket", Config{Provider: ProviderS3, Region: "eu-west-1"}, "container is required"},
		{"memory", Config{Provider: ProviderMemory}, ""},
		{"unknown", Config{Provider: "ftp"}, "unsupported provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigured(t *testing.T) {
	c := Config{Provider: ProviderAzure, AccountName: "acct"}
	if c.Configured() {
		t.Error("disabled storage must not be configured")
	}
	c.Enabled = true
	if !c.Configured() {
		t.Error("enabled storage with an account should be configured")
	}
	c.AccountName = ""
	if c.Configured() {
		t.Error("missing account must not be configured")
	}
}
