package batch

import (
	"context"
	"time"
)

// EventType names a job change made through the Service.
type EventType string

const (
	EventSubmitted EventType = "job_submitted"
	EventStatus    EventType = "job_status"
	EventDeleted   EventType = "job_deleted"
)

// Event describes one job change. Job is nil for deletions.
type Event struct {
	Type  EventType `json:"type"`
	JobID string    `json:"jobId"`
	Job   *Job      `json:"job,omitempty"`
	At    time.Time `json:"at"`
}

// Notifier receives job events. Notify must not block.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, e Event)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, e Event) { f(ctx, e) }

func (s *Service) notify(ctx context.Context, typ EventType, id string, job *Job) {
	if s.notifier == nil {
		return
	}
	var snapshot *Job
	if job != nil {
		cp := *job
		cp.Files = append([]string(nil), job.Files...)
		snapshot = &cp
	}
	s.notifier.Notify(ctx, Event{Type: typ, JobID: id, Job: snapshot, At: s.now().UTC()})
}
