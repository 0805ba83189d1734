package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/sastoken"
	"github.com/kbukum/speechkit/transcript"
)

// ResultFile is a transcription result file of a job.
type ResultFile struct {
	// Index is the file's position among the job's result files and the
	// value callers pass back to select it.
	Index      int        `json:"index"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Size       int64      `json:"size"`
	SASExpiry  *time.Time `json:"sasExpiry"`
	SASExpired bool       `json:"sasExpired"`
}

// Result is a merged transcription result. Success is false, with an
// explanatory Message, when the job is not finished or nothing could be
// merged.
type Result struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	JobID       string `json:"jobId"`
	DisplayName string `json:"displayName"`
	transcript.Summary
	Segments []transcript.Segment `json:"segments"`
	// RawJSON is the downloaded payloads as an indented JSON array.
	RawJSON string `json:"rawJsonData,omitempty"`
}

// ListResultFiles lists a job's result files with their names mapped from
// the job's input files by position.
func (s *Service) ListResultFiles(ctx context.Context, id string) ([]ResultFile, *Degraded) {
	var inputs []string
	if job, _ := s.GetStatus(ctx, id); job != nil {
		inputs = job.Files
	}

	entries, err := s.platform.ListJobFiles(ctx, id)
	if err != nil {
		s.log.Error("failed to fetch job files", logger.Fields(logger.FieldJobID, id, logger.FieldError, err.Error()))
		return []ResultFile{}, degraded(err)
	}

	files := s.resultFiles(entries, inputs)
	for _, f := range files {
		s.logTokenStatus(f)
	}
	s.log.Info("result files listed", logger.Fields(logger.FieldJobID, id, "count", len(files)))
	return files, nil
}

// Results downloads the selected result files and merges them into one
// timeline. Without indices only the first result file is used; with
// indices files are merged in the given order. Expired or unreadable files
// are skipped.
func (s *Service) Results(ctx context.Context, id string, indices []int) (res *Result, err error) {
	ctx, end := observability.Observe(ctx, s.metrics, observability.SpanMerge, attribute.String(observability.AttrJobID, id))
	defer func() { end(err) }()

	job, deg := s.GetStatus(ctx, id)
	if job == nil {
		return nil, errors.NotFound("job", id).WithDetail("reason", deg.Reason)
	}

	res = &Result{JobID: id, DisplayName: job.DisplayName, Segments: []transcript.Segment{}}
	if job.Status != StatusSucceeded {
		res.Message = fmt.Sprintf("Job is not completed yet. Current status: %s", job.Status)
		return res, nil
	}

	entries, err := s.platform.ListJobFiles(ctx, id)
	if err != nil {
		return nil, err
	}
	selected := s.selectFiles(s.resultFiles(entries, job.Files), indices)
	if len(selected) == 0 {
		res.Message = "No transcription results found"
		return res, nil
	}

	perFile := make([][]transcript.Segment, 0, len(selected))
	raws := make([]json.RawMessage, 0, len(selected))
	for _, f := range selected {
		segs, raw, ok := s.fetchResultFile(ctx, f)
		if !ok {
			continue
		}
		raws = append(raws, raw)
		perFile = append(perFile, segs)
	}

	merged := MergeTimeline(perFile)
	if len(merged) == 0 {
		res.Message = "No transcription data found in result files"
		return res, nil
	}

	rawJSON, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return nil, errors.Internal(err)
	}

	filesMsg := "1 file"
	if len(selected) > 1 {
		filesMsg = fmt.Sprintf("%d file(s)", len(selected))
	}
	res.Success = true
	res.Message = fmt.Sprintf("Retrieved %d segments from %s", len(merged), filesMsg)
	res.Segments = merged
	res.Summary = transcript.Rebuild(merged)
	res.RawJSON = string(rawJSON)

	s.metrics.RecordMerge(ctx, len(merged), len(raws))
	s.log.Info("results merged", logger.Fields(
		logger.FieldJobID, id, logger.FieldSegmentCount, len(merged), "files", len(selected),
	))
	return res, nil
}

// MergeTimeline concatenates per-file segments in order, shifting each
// file after the first by the end of the last merged segment so offsets
// never decrease across file boundaries. Line numbers are reassigned.
func MergeTimeline(files [][]transcript.Segment) []transcript.Segment {
	merged := []transcript.Segment{}
	for _, segs := range files {
		var shift int64
		if n := len(merged); n > 0 {
			shift = merged[n-1].EndTicks()
		}
		for _, seg := range segs {
			seg.OffsetTicks += shift
			merged = append(merged, seg)
		}
	}
	transcript.Renumber(merged)
	return merged
}

func (s *Service) fetchResultFile(ctx context.Context, f ResultFile) ([]transcript.Segment, json.RawMessage, bool) {
	fields := logger.Fields(logger.FieldFileIndex, f.Index, logger.FieldFileName, f.Name, logger.FieldURL, logger.RedactURL(f.URL))

	if sastoken.IsExpired(f.URL, s.now()) {
		s.log.Error("result file token expired, re-list files for fresh URLs", fields)
		s.metrics.RecordExpiredToken(ctx)
		return nil, nil, false
	}
	s.logTokenStatus(f)

	data, err := s.platform.Download(ctx, f.URL)
	if err != nil {
		s.log.WithError(err).Error("failed to download result file", fields)
		return nil, nil, false
	}
	if !json.Valid(data) {
		s.log.Error("result file is not valid JSON", fields)
		return nil, nil, false
	}

	segs, err := transcript.ParsePhrases(data)
	if err != nil {
		s.log.WithError(err).Warn("result file has no phrases", fields)
		segs = nil
	}
	s.log.Debug("result file parsed", logger.Fields(logger.FieldFileIndex, f.Index, logger.FieldSegmentCount, len(segs)))
	return segs, json.RawMessage(data), true
}

// resultFiles picks the transcription entries of a manifest. The n-th
// result is named after the n-th input file.
func (s *Service) resultFiles(entries []FileEntry, inputs []string) []ResultFile {
	now := s.now()
	files := []ResultFile{}
	for _, e := range entries {
		if e.Kind != KindTranscription {
			continue
		}
		idx := len(files)
		name := fmt.Sprintf("File %d", idx+1)
		if idx < len(inputs) {
			name = inputs[idx]
		}
		st := sastoken.Inspect(e.ContentURL, now)
		files = append(files, ResultFile{
			Index:      idx,
			Name:       name,
			URL:        e.ContentURL,
			Size:       e.Size,
			SASExpiry:  st.Expiry,
			SASExpired: st.Expired,
		})
	}
	return files
}

func (s *Service) selectFiles(files []ResultFile, indices []int) []ResultFile {
	if len(indices) == 0 {
		if len(files) == 0 {
			return nil
		}
		return files[:1]
	}
	selected := make([]ResultFile, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(files) {
			s.log.Error("file index out of range", logger.Fields(logger.FieldFileIndex, idx, "available", len(files)))
			continue
		}
		selected = append(selected, files[idx])
	}
	return selected
}

func (s *Service) logTokenStatus(f ResultFile) {
	fields := logger.Fields(logger.FieldFileIndex, f.Index, logger.FieldFileName, f.Name)
	switch {
	case f.SASExpiry == nil:
		s.log.Warn("result file has no token expiry", fields)
	case f.SASExpired:
		fields["expired_at"] = f.SASExpiry.Format(time.RFC3339)
		s.log.Warn("result file token expired", fields)
	default:
		fields[logger.FieldRemaining] = fmt.Sprintf("%.1f", f.SASExpiry.Sub(s.now()).Hours())
		s.log.Debug("result file token valid", fields)
	}
}
