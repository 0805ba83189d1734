package api

import (
	"fmt"
	"strings"

	"github.com/kbukum/speechkit/util"
)

// Config limits the audio files accepted by the upload endpoints.
type Config struct {
	RealtimeExtensions []string `yaml:"realtime_extensions" mapstructure:"realtime_extensions"`
	BatchExtensions    []string `yaml:"batch_extensions" mapstructure:"batch_extensions"`
	// Sizes accept units, e.g. "100MB" or "1GB".
	RealtimeMaxSize string `yaml:"realtime_max_size" mapstructure:"realtime_max_size"`
	BatchMaxSize    string `yaml:"batch_max_size" mapstructure:"batch_max_size"`
}

// ApplyDefaults fills unset limits.
func (c *Config) ApplyDefaults() {
	if len(c.RealtimeExtensions) == 0 {
		c.RealtimeExtensions = []string{".wav"}
	}
	if len(c.BatchExtensions) == 0 {
		c.BatchExtensions = []string{".wav", ".mp3", ".ogg", ".flac", ".opus", ".m4a", ".webm"}
	}
	if c.RealtimeMaxSize == "" {
		c.RealtimeMaxSize = "100MB"
	}
	if c.BatchMaxSize == "" {
		c.BatchMaxSize = "1GB"
	}
}

// Validate checks the limits.
func (c *Config) Validate() error {
	for _, ext := range append(append([]string(nil), c.RealtimeExtensions...), c.BatchExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("api: extension %q must start with a dot", ext)
		}
	}
	if util.ParseSize(c.RealtimeMaxSize, 0) <= 0 {
		return fmt.Errorf("api: invalid realtime_max_size %q", c.RealtimeMaxSize)
	}
	if util.ParseSize(c.BatchMaxSize, 0) <= 0 {
		return fmt.Errorf("api: invalid batch_max_size %q", c.BatchMaxSize)
	}
	return nil
}

func (c *Config) realtimeRule() uploadRule {
	return uploadRule{
		mode:       "realtime",
		extensions: lower(c.RealtimeExtensions),
		maxBytes:   util.ParseSize(c.RealtimeMaxSize, 100<<20),
	}
}

func (c *Config) batchRule() uploadRule {
	return uploadRule{
		mode:       "batch",
		extensions: lower(c.BatchExtensions),
		maxBytes:   util.ParseSize(c.BatchMaxSize, 1<<30),
	}
}

func lower(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = strings.ToLower(strings.TrimSpace(e))
	}
	return out
}
