package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/ledger"
	"github.com/kbukum/speechkit/locale"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/sse"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/validation"
)

// Handler serves the speech API.
type Handler struct {
	batch   *batch.Service
	ledger  *ledger.Ledger
	locales *locale.Catalogue
	session *transcription.Session
	events  *sse.Hub
	cfg     Config
	log     *logger.Logger
	now     func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithLocales serves the locale catalogue. Without one the fixed fallback
// list is served.
func WithLocales(c *locale.Catalogue) Option {
	return func(h *Handler) { h.locales = c }
}

// WithSession enables the live transcription endpoints.
func WithSession(s *transcription.Session) Option {
	return func(h *Handler) { h.session = s }
}

// WithEvents enables the job events stream served from hub.
func WithEvents(hub *sse.Hub) Option {
	return func(h *Handler) { h.events = hub }
}

// WithConfig sets the upload limits.
func WithConfig(cfg Config) Option {
	return func(h *Handler) { h.cfg = cfg }
}

// WithClock overrides the time source used for default job names.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// New creates a Handler over the orchestrator and ledger.
func New(svc *batch.Service, l *ledger.Ledger, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		batch:  svc,
		ledger: l,
		log:    log.WithComponent("api"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.cfg.ApplyDefaults()
	return h
}

// Register mounts the API routes under /api.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api")

	jobs := g.Group("/batch")
	jobs.POST("/submit", h.submit)
	jobs.GET("/jobs", h.listJobs)
	jobs.POST("/jobs/refresh", h.refreshJobs)
	jobs.GET("/jobs/:id", h.jobStatus)
	jobs.GET("/jobs/:id/files", h.jobFiles)
	jobs.GET("/jobs/:id/results", h.jobResults)
	jobs.POST("/jobs/:id/results", h.jobResults)
	jobs.DELETE("/jobs/:id", h.deleteJob)
	jobs.GET("/events", h.jobEvents)

	g.GET("/locales", h.listLocales)

	g.POST("/transcribe", h.transcribe)
	g.GET("/transcribe/stream", h.transcribeStream)

	g.POST("/transcript/segment", h.updateSegment)
	g.POST("/transcript/speakers", h.updateSpeakers)
}

// bindJSON decodes the request body into req and checks its validate tags.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		server.RespondWithError(c, errors.Validation("Invalid JSON body").WithCause(err))
		return false
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.InvalidInput(name, "must be a non-negative integer")
	}
	return n, nil
}

// formInt reads an optional integer form field.
func formInt(c *gin.Context, name string) (int, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidInput(name, "must be an integer")
	}
	return n, nil
}
