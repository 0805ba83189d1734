package diarization

import (
	"github.com/kbukum/speechkit/errors"
)

const (
	// DefaultMinSpeakers is used when the caller gives no lower bound.
	DefaultMinSpeakers = 2
	// DefaultMaxSpeakers is used when the caller gives no upper bound.
	DefaultMaxSpeakers = 5
	// MaxSpeakersLimit is the largest upper bound the platform accepts.
	MaxSpeakersLimit = 20
)

// Range bounds the number of distinct speakers the platform should find.
type Range struct {
	Min int `json:"minCount" yaml:"min_speakers" mapstructure:"min_speakers"`
	Max int `json:"maxCount" yaml:"max_speakers" mapstructure:"max_speakers"`
}

// DefaultRange returns the 2..5 range used when a request omits one.
func DefaultRange() Range {
	return Range{Min: DefaultMinSpeakers, Max: DefaultMaxSpeakers}
}

// ApplyDefaults fills zero bounds from DefaultRange.
func (r *Range) ApplyDefaults() {
	if r.Min == 0 {
		r.Min = DefaultMinSpeakers
	}
	if r.Max == 0 {
		r.Max = DefaultMaxSpeakers
	}
}

// Validate checks the bounds in order and reports the first violation.
func (r Range) Validate() error {
	switch {
	case r.Min < 1:
		return errors.Validation("Minimum speakers must be at least 1")
	case r.Max < r.Min:
		return errors.Validation("Maximum speakers must be greater than or equal to minimum speakers")
	case r.Max > MaxSpeakersLimit:
		return errors.Validation("Maximum speakers cannot exceed 20")
	}
	return nil
}

// Properties is the diarization block of a job submission body.
func (r Range) Properties() map[string]any {
	return map[string]any{
		"mode": "Identity",
		"speakers": map[string]any{
			"minCount": r.Min,
			"maxCount": r.Max,
		},
	}
}
