package speechapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/speechkit/batch"
	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/httpclient"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/version"
)

var _ batch.Platform = (*Client)(nil)

// Client calls the batch transcription REST API. It is safe for
// concurrent use and shares one connection pool across calls.
type Client struct {
	http    *httpclient.Client
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records each platform call on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a platform client.
func New(cfg Config, log *logger.Logger, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Configuration("speech", err.Error())
	}

	retry := httpclient.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxRetries

	hc, err := httpclient.New(httpclient.Config{
		BaseURL:         cfg.BaseURL(),
		Timeout:         cfg.Timeout,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxConnsPerHost: cfg.MaxConnsPerHost,
		Headers:         map[string]string{"Accept": "application/json", "User-Agent": version.UserAgent()},
		Auth:            httpclient.APIKeyAuthHeader(cfg.Key, KeyHeader),
		Retry:           retry,
	})
	if err != nil {
		return nil, fmt.Errorf("speechapi: create http client: %w", err)
	}

	c := &Client{http: hc, cfg: cfg, log: log.WithComponent("speechapi")}
	for _, opt := range opts {
		opt(c)
	}
	c.log.Info("speech platform client ready", logger.Fields(
		"base_url", cfg.BaseURL(), "max_conns_per_host", cfg.MaxConnsPerHost, "retries", cfg.MaxRetries,
	))
	return c, nil
}

// SubmitJob creates a batch transcription with diarization enabled.
func (c *Client) SubmitJob(ctx context.Context, sub batch.Submission) (job *batch.Job, err error) {
	ctx, end := c.observe(ctx, "submit_job", attribute.Int(observability.AttrFileCount, len(sub.ContentURLs)))
	defer func() { end(err) }()

	resp, err := httpclient.Post[jobRecord](c.http, ctx, "transcriptions", newSubmissionBody(sub))
	if err != nil {
		return nil, c.platformError("submit_job", err)
	}
	return resp.Data.toJob(), nil
}

// GetJob fetches one job.
func (c *Client) GetJob(ctx context.Context, id string) (job *batch.Job, err error) {
	ctx, end := c.observe(ctx, "get_job", attribute.String(observability.AttrJobID, id))
	defer func() { end(err) }()

	resp, err := httpclient.Get[jobRecord](c.http, ctx, "transcriptions/"+url.PathEscape(id))
	if err != nil {
		return nil, c.platformError("get_job", err)
	}
	return resp.Data.toJob(), nil
}

// ListJobs fetches a page of jobs.
func (c *Client) ListJobs(ctx context.Context, skip, top int) (jobs []batch.Job, err error) {
	ctx, end := c.observe(ctx, "list_jobs")
	defer func() { end(err) }()

	resp, err := httpclient.Get[page[jobRecord]](c.http, ctx, "transcriptions",
		httpclient.WithQueryParam("skip", strconv.Itoa(skip)),
		httpclient.WithQueryParam("top", strconv.Itoa(top)),
	)
	if err != nil {
		return nil, c.platformError("list_jobs", err)
	}
	jobs = make([]batch.Job, 0, len(resp.Data.Values))
	for _, rec := range resp.Data.Values {
		jobs = append(jobs, *rec.toJob())
	}
	return jobs, nil
}

// DeleteJob deletes a job.
func (c *Client) DeleteJob(ctx context.Context, id string) (err error) {
	ctx, end := c.observe(ctx, "delete_job", attribute.String(observability.AttrJobID, id))
	defer func() { end(err) }()

	if _, err := httpclient.Delete[struct{}](c.http, ctx, "transcriptions/"+url.PathEscape(id)); err != nil {
		return c.platformError("delete_job", err)
	}
	return nil
}

// ListJobFiles fetches a job's file manifest.
func (c *Client) ListJobFiles(ctx context.Context, id string) (files []batch.FileEntry, err error) {
	ctx, end := c.observe(ctx, "list_job_files", attribute.String(observability.AttrJobID, id))
	defer func() { end(err) }()

	resp, err := httpclient.Get[page[fileRecord]](c.http, ctx, "transcriptions/"+url.PathEscape(id)+"/files")
	if err != nil {
		return nil, c.platformError("list_job_files", err)
	}
	files = make([]batch.FileEntry, 0, len(resp.Data.Values))
	for _, f := range resp.Data.Values {
		files = append(files, f.toEntry())
	}
	return files, nil
}

// Download fetches a signed URL. The subscription key is not sent; the
// URL's own token grants access.
func (c *Client) Download(ctx context.Context, rawURL string) (data []byte, err error) {
	ctx, end := c.observe(ctx, "download")
	defer func() { end(err) }()

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   rawURL,
		Auth:   httpclient.NoAuth(),
	})
	if err != nil {
		c.log.Warn("download failed", logger.Fields(
			logger.FieldURL, logger.RedactURL(rawURL), logger.FieldStatus, httpclient.StatusCode(err),
		))
		return nil, c.platformError("download", err)
	}
	return resp.Body, nil
}

func (c *Client) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	attrs = append(attrs, attribute.String("operation", op))
	return observability.Observe(ctx, c.metrics, observability.SpanPlatformRequest, attrs...)
}

// platformError maps a transport failure to an application error. HTTP
// failures keep the platform's status and body.
func (c *Client) platformError(op string, err error) error {
	if status := httpclient.StatusCode(err); status > 0 {
		body := string(httpclient.ResponseBody(err))
		c.log.Error("platform call failed", logger.Fields(
			logger.FieldOperation, op, logger.FieldStatus, status, "body", body,
		))
		return errors.Platform(status, body).WithCause(err)
	}
	c.log.Error("platform unreachable", logger.ErrorFields(op, err))
	if httpclient.IsTimeout(err) {
		return errors.Timeout(op).WithCause(err)
	}
	return errors.ServiceUnavailable("speech platform").WithCause(err)
}
