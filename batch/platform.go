package batch

import (
	"context"

	"github.com/kbukum/speechkit/diarization"
)

// File kinds reported by the platform's files endpoint.
const (
	KindAudio               = "Audio"
	KindLanguageData        = "LanguageData"
	KindTranscription       = "Transcription"
	KindTranscriptionReport = "TranscriptionReport"
)

// FileEntry is one entry of a job's file manifest.
type FileEntry struct {
	Kind       string
	Name       string
	ContentURL string
	Size       int64
}

// Submission is a job creation request.
type Submission struct {
	ContentURLs []string
	Locale      string
	DisplayName string
	Speakers    diarization.Range
}

// Platform is the remote speech service that runs batch jobs.
//
//go:generate mockgen -destination=mock_platform_test.go -package=batch . Platform
type Platform interface {
	SubmitJob(ctx context.Context, sub Submission) (*Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, skip, top int) ([]Job, error)
	DeleteJob(ctx context.Context, id string) error
	ListJobFiles(ctx context.Context, id string) ([]FileEntry, error)
	// Download fetches a signed result URL without platform credentials.
	Download(ctx context.Context, url string) ([]byte, error)
}
