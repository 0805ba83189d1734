package batch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/storage"
)

// Service is the batch job orchestrator. It is created once per process
// and is safe for concurrent use.
type Service struct {
	platform Platform
	store    storage.Storage
	resolver *Resolver
	cfg      Config
	log      *logger.Logger
	metrics  *observability.Metrics
	notifier Notifier
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithStorage sets the object store used for uploads. Without one,
// submissions return placeholder jobs.
func WithStorage(s storage.Storage) Option {
	return func(svc *Service) { svc.store = s }
}

// WithMetrics records orchestrator metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(svc *Service) { svc.metrics = m }
}

// WithNotifier publishes job events to n.
func WithNotifier(n Notifier) Option {
	return func(svc *Service) { svc.notifier = n }
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// NewService creates an orchestrator over platform.
func NewService(platform Platform, cfg Config, log *logger.Logger, opts ...Option) *Service {
	cfg.ApplyDefaults()
	s := &Service{
		platform: platform,
		cfg:      cfg,
		log:      log.WithComponent("batch"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = NewResolver(platform, cfg.ResolverConcurrency, log, s.metrics)
	return s
}

// StorageConfigured reports whether submissions upload real files.
func (s *Service) StorageConfigured() bool { return s.store != nil }

// ListRequest selects a page of jobs.
type ListRequest struct {
	Skip int
	Top  int
	// Cached are jobs the caller already holds. Terminal ones are reused.
	Cached       []Job
	ForceRefresh bool
}

// ListResult is a page of jobs.
type ListResult struct {
	Jobs      []Job     `json:"jobs"`
	FromCache int       `json:"fromCache"`
	Degraded  *Degraded `json:"degraded,omitempty"`
}

// List fetches a page of jobs, reusing cached terminal jobs and filling in
// missing file lists with one parallel resolver pass over the whole page.
func (s *Service) List(ctx context.Context, req ListRequest) ListResult {
	if req.Top <= 0 {
		req.Top = s.cfg.PageSize
	}
	part := PartitionCache(req.Cached, req.ForceRefresh)
	s.log.Info("listing jobs", logger.Fields(
		"skip", req.Skip, "top", req.Top, "force_refresh", req.ForceRefresh,
		"cached_terminal", len(part.Terminal), "cached_active", len(part.ToRefresh),
	))

	ctx, end := observability.Observe(ctx, s.metrics, observability.SpanListJobs)
	records, err := s.platform.ListJobs(ctx, req.Skip, req.Top)
	end(err)
	if err != nil {
		s.log.Error("failed to list jobs", logger.ErrorFields("list_jobs", err))
		return ListResult{Jobs: []Job{}, Degraded: degraded(err)}
	}

	res := ListResult{Jobs: make([]Job, 0, len(records))}
	var pending []int
	for _, rec := range records {
		job := rec
		if cached, hit, _ := part.Lookup(rec.ID); hit {
			job = cached
			res.FromCache++
		}
		if len(job.Files) == 0 {
			pending = append(pending, len(res.Jobs))
		}
		res.Jobs = append(res.Jobs, job)
	}

	if len(pending) > 0 {
		ids := make([]string, len(pending))
		for i, idx := range pending {
			ids[i] = res.Jobs[idx].ID
		}
		s.log.Info("resolving job files in parallel", logger.Fields("jobs", len(ids)))
		files := s.resolver.Resolve(ctx, ids)
		for _, idx := range pending {
			job := &res.Jobs[idx]
			if f := files[job.ID]; len(f) > 0 {
				job.Files = f
			} else {
				job.Files = []string{}
				s.log.Warn("no files returned for job", logger.Fields(
					logger.FieldJobID, job.ID, logger.FieldStatus, string(job.Status),
				))
			}
		}
	}

	s.log.Info("jobs listed", logger.Fields("count", len(res.Jobs), "from_cache", res.FromCache))
	return res
}

// GetStatus fetches one job. The files endpoint's list wins over the one
// embedded in the job when it is non-empty.
func (s *Service) GetStatus(ctx context.Context, id string) (*Job, *Degraded) {
	ctx, end := observability.Observe(ctx, s.metrics, "batch.get_status", attribute.String(observability.AttrJobID, id))
	job, err := s.platform.GetJob(ctx, id)
	end(err)
	if err != nil {
		s.log.Error("failed to fetch job status", logger.Fields(logger.FieldJobID, id, logger.FieldError, err.Error()))
		return nil, degraded(err)
	}

	files, err := s.resolver.Files(ctx, id)
	switch {
	case err != nil:
		s.log.Warn("files endpoint failed, keeping embedded files", logger.Fields(
			logger.FieldJobID, id, logger.FieldError, err.Error(),
		))
	case len(files) > 0:
		job.Files = files
	}
	if job.Files == nil {
		job.Files = []string{}
	}
	s.notify(ctx, EventStatus, id, job)
	return job, nil
}

// Delete removes a job from the platform. It does not abort processing
// that has already finished.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, end := observability.Observe(ctx, s.metrics, "batch.delete", attribute.String(observability.AttrJobID, id))
	err := s.platform.DeleteJob(ctx, id)
	end(err)
	if err != nil {
		s.log.Error("failed to delete job", logger.Fields(logger.FieldJobID, id, logger.FieldError, err.Error()))
		return err
	}
	s.log.Info("job deleted", logger.Fields(logger.FieldJobID, id))
	s.notify(ctx, EventDeleted, id, nil)
	return nil
}
