package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/util"
)

// Resolver looks up the input file names of jobs.
type Resolver struct {
	platform Platform
	limit    int
	log      *logger.Logger
	metrics  *observability.Metrics
}

// NewResolver creates a Resolver that runs at most limit lookups at once.
// A limit of zero or less runs every lookup at once.
func NewResolver(p Platform, limit int, log *logger.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{platform: p, limit: limit, log: log.WithComponent("batch.resolver"), metrics: metrics}
}

// Resolve fetches file names for every id concurrently. A lookup that fails
// yields an empty list for that id and never affects the others.
func (r *Resolver) Resolve(ctx context.Context, ids []string) map[string][]string {
	slots := make([][]string, len(ids))

	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			files, err := r.Files(ctx, id)
			if err != nil {
				r.log.Warn("failed to resolve job files", logger.Fields(
					logger.FieldJobID, id, logger.FieldError, err.Error(),
				))
				r.metrics.RecordResolveFailure(ctx)
				files = []string{}
			}
			slots[i] = files
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string][]string, len(ids))
	for i, id := range ids {
		out[id] = slots[i]
	}
	return out
}

// Files returns the input file names of one job. Audio and language-data
// entries are preferred; without them the transcription report's sources
// are used.
func (r *Resolver) Files(ctx context.Context, id string) ([]string, error) {
	entries, err := r.platform.ListJobFiles(ctx, id)
	if err != nil {
		return nil, err
	}

	names := []string{}
	var reportURL string
	for _, e := range entries {
		switch {
		case strings.EqualFold(e.Kind, KindAudio) || e.Kind == KindLanguageData:
			name := e.Name
			if name == "" {
				name = util.LastPathSegment(e.ContentURL)
			}
			if name != "" {
				names = append(names, util.StripUploadPrefix(name))
			}
		case e.Kind == KindTranscriptionReport && reportURL == "":
			reportURL = e.ContentURL
		}
	}
	if len(names) > 0 || reportURL == "" {
		return names, nil
	}

	r.log.Debug("no audio entries, reading transcription report", logger.Fields(logger.FieldJobID, id))
	return r.reportSources(ctx, reportURL)
}

type transcriptionReport struct {
	Details []struct {
		Source string `json:"source"`
	} `json:"details"`
}

func (r *Resolver) reportSources(ctx context.Context, url string) ([]string, error) {
	data, err := r.platform.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download transcription report: %w", err)
	}
	var report transcriptionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode transcription report: %w", err)
	}
	names := []string{}
	for _, d := range report.Details {
		if d.Source != "" {
			names = append(names, util.DisplayFileName(d.Source))
		}
	}
	return names, nil
}
