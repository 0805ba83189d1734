package batch

import (
	"time"
)

// Status is a job state as reported by the platform.
type Status string

// Job states. The orchestrator mirrors them and never transitions a job itself.
const (
	StatusNotStarted Status = "NotStarted"
	StatusRunning    Status = "Running"
	StatusSucceeded  Status = "Succeeded"
	StatusFailed     Status = "Failed"
	StatusUnknown    Status = "Unknown"
)

// IsTerminal reports whether no further platform-side transitions occur.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Properties are the platform's job properties that callers display.
type Properties struct {
	// DurationTicks is the processed audio duration, when reported.
	DurationTicks  *int64 `json:"duration,omitempty"`
	SucceededCount *int   `json:"succeededCount,omitempty"`
	FailedCount    *int   `json:"failedCount,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// Job is a batch transcription job.
type Job struct {
	ID           string      `json:"id"`
	DisplayName  string      `json:"displayName"`
	Status       Status      `json:"status"`
	CreatedAt    *time.Time  `json:"createdDateTime,omitempty"`
	LastActionAt *time.Time  `json:"lastActionDateTime,omitempty"`
	Files        []string    `json:"files"`
	Properties   *Properties `json:"properties,omitempty"`
	Locale       string      `json:"locale,omitempty"`
	// Error explains a failed or placeholder job.
	Error string `json:"error,omitempty"`
}

// Degraded marks a best-effort result that could not be fully produced.
// The accompanying value is empty or partial.
type Degraded struct {
	Reason string `json:"reason"`
}

func degraded(err error) *Degraded {
	return &Degraded{Reason: err.Error()}
}
