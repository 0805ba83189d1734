package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/speechkit/diarization"
	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/storage"
	"github.com/kbukum/speechkit/util"
)

// PlaceholderError is the error carried by jobs created without storage.
const PlaceholderError = "Placeholder job - Azure Blob Storage not configured"

// AudioFile is one file of a submission.
type AudioFile struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// BytesFile wraps in-memory audio as an AudioFile.
func BytesFile(name string, data []byte) AudioFile {
	return AudioFile{Name: name, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}}
}

// SubmitRequest creates a batch job.
type SubmitRequest struct {
	Files       []AudioFile
	DisplayName string
	Locale      string
	// Speakers is the diarization range; zero bounds take the defaults.
	Speakers diarization.Range
}

// Submit uploads the files, signs read URLs for them and creates the job.
// Without storage it returns a placeholder job instead of failing.
// Storage and platform failures are returned as distinct errors.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (job *Job, err error) {
	if err := s.validateSubmit(&req); err != nil {
		return nil, err
	}

	ctx, end := observability.Observe(ctx, s.metrics, observability.SpanSubmit,
		attribute.String(observability.AttrLocale, req.Locale),
		attribute.Int(observability.AttrFileCount, len(req.Files)),
	)
	defer func() { end(err) }()

	names := make([]string, len(req.Files))
	for i, f := range req.Files {
		names[i] = baseName(f.Name)
	}
	s.log.Info("submitting batch job", logger.Fields(
		"display_name", req.DisplayName, logger.FieldLocale, req.Locale,
		"files", len(req.Files), "min_speakers", req.Speakers.Min, "max_speakers", req.Speakers.Max,
	))

	if s.store == nil {
		s.log.Warn("storage not configured, creating placeholder job")
		s.metrics.RecordJobSubmitted(ctx, "placeholder")
		now := s.now().UTC()
		job := &Job{
			ID:          uuid.NewString(),
			DisplayName: req.DisplayName,
			Status:      StatusNotStarted,
			CreatedAt:   &now,
			Files:       names,
			Locale:      req.Locale,
			Error:       PlaceholderError,
		}
		s.notify(ctx, EventSubmitted, job.ID, job)
		return job, nil
	}

	if ce, ok := s.store.(storage.ContainerEnsurer); ok {
		if err := ce.EnsureContainer(ctx); err != nil {
			s.metrics.RecordJobSubmitted(ctx, "error")
			return nil, asStorageError("Container could not be prepared", err)
		}
	}

	urls := s.upload(ctx, req.Files)
	if len(urls) == 0 {
		s.metrics.RecordJobSubmitted(ctx, "error")
		return nil, errors.Storage("No files uploaded to blob storage successfully", nil)
	}

	created, err := s.platform.SubmitJob(ctx, Submission{
		ContentURLs: urls,
		Locale:      req.Locale,
		DisplayName: req.DisplayName,
		Speakers:    req.Speakers,
	})
	if err != nil {
		s.log.Error("batch job creation failed", logger.ErrorFields("submit_job", err))
		s.metrics.RecordJobSubmitted(ctx, "error")
		return nil, err
	}

	now := s.now().UTC()
	created.DisplayName = req.DisplayName
	created.Status = StatusNotStarted
	created.CreatedAt = &now
	created.Files = names
	created.Locale = req.Locale
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	s.log.Info("batch job created", logger.Fields(logger.FieldJobID, created.ID, "uploaded", len(urls)))
	s.metrics.RecordJobSubmitted(ctx, "ok")
	s.notify(ctx, EventSubmitted, created.ID, created)
	return created, nil
}

func (s *Service) validateSubmit(req *SubmitRequest) error {
	switch {
	case len(req.Files) == 0:
		return errors.Validation("No files provided")
	case len(req.Files) > s.cfg.MaxFiles:
		return errors.Validation(fmt.Sprintf("Too many files. Maximum is %d files per batch", s.cfg.MaxFiles))
	case strings.TrimSpace(req.DisplayName) == "":
		return errors.InvalidInput("displayName", "job name is required")
	}
	if req.Locale == "" {
		req.Locale = s.cfg.DefaultLocale
	}
	if req.Speakers.Min == 0 {
		req.Speakers.Min = s.cfg.Speakers.Min
	}
	if req.Speakers.Max == 0 {
		req.Speakers.Max = s.cfg.Speakers.Max
	}
	return req.Speakers.Validate()
}

// upload stores every file under a unique name and returns read URLs in
// submission order. Files that fail to upload are logged and left out.
func (s *Service) upload(ctx context.Context, files []AudioFile) []string {
	slots := make([]string, len(files))

	var g errgroup.Group
	g.SetLimit(s.cfg.UploadConcurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := s.uploadOne(ctx, f)
			if err != nil {
				s.log.Error("failed to upload file", logger.Fields(
					logger.FieldFileName, f.Name, logger.FieldError, err.Error(),
				))
				return nil
			}
			slots[i] = url
			return nil
		})
	}
	_ = g.Wait()

	urls := make([]string, 0, len(files))
	for _, u := range slots {
		if u != "" {
			urls = append(urls, u)
		}
	}
	s.log.Info("files uploaded", logger.Fields("uploaded", len(urls), "requested", len(files)))
	return urls
}

func (s *Service) uploadOne(ctx context.Context, f AudioFile) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	name := util.UploadObjectName(f.Name)
	ctx, end := observability.Observe(ctx, nil, observability.SpanUpload, attribute.String("object", name))
	err = s.store.Upload(ctx, name, rc)
	end(err)
	if err != nil {
		return "", err
	}

	return s.readURL(ctx, name, s.cfg.SASExpiry)
}

// readURL signs a read URL for name, falling back to the plain URL. A
// plain URL only works when the platform has its own access to storage.
func (s *Service) readURL(ctx context.Context, name string, ttl time.Duration) (string, error) {
	if signer, ok := s.store.(storage.SignedURLProvider); ok {
		url, err := signer.SignedURL(ctx, name, ttl)
		if err == nil {
			return url, nil
		}
		s.log.Warn("could not sign read URL, using plain URL", logger.Fields(
			"object", name, logger.FieldError, err.Error(),
		))
	}
	return s.store.URL(ctx, name)
}

func asStorageError(msg string, err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return err
	}
	return errors.Storage(msg, err)
}

func baseName(name string) string {
	return path.Base(strings.ReplaceAll(name, "\\", "/"))
}
