// Package gateway implements a live Recognizer over a recognition gateway
// that accepts an audio upload and answers with a Server-Sent Events
// stream of session events.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/kbukum/speechkit/httpclient"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/version"
)

// Name is the recognizer name.
const Name = "gateway"

const (
	defaultURL     = "http://localhost:8390"
	defaultTimeout = 10 * time.Minute
	keyHeader      = "Ocp-Apim-Subscription-Key"
)

// Config configures the gateway recognizer.
type Config struct {
	URL string `yaml:"url" mapstructure:"url"`
	// Key and Region are forwarded so the gateway can open the platform
	// session on the caller's subscription.
	Key    string `yaml:"key" mapstructure:"key"`
	Region string `yaml:"region" mapstructure:"region"`
	// Timeout bounds a whole session.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = defaultURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Recognizer streams recognition events from the gateway.
type Recognizer struct {
	cfg  Config
	http *httpclient.Client
	log  *logger.Logger
}

var _ transcription.Recognizer = (*Recognizer)(nil)

// New creates a gateway recognizer.
func New(cfg Config, log *logger.Logger) (*Recognizer, error) {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	hcfg := httpclient.Config{
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
		Headers: map[string]string{"User-Agent": version.UserAgent()},
	}
	if cfg.Key != "" {
		hcfg.Auth = httpclient.APIKeyAuthHeader(cfg.Key, keyHeader)
	}
	hc, err := httpclient.New(hcfg)
	if err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	return &Recognizer{cfg: cfg, http: hc, log: log.WithComponent("gateway")}, nil
}

// Name returns the recognizer name.
func (r *Recognizer) Name() string { return Name }

// IsAvailable checks that the gateway answers its health endpoint.
func (r *Recognizer) IsAvailable(ctx context.Context) bool {
	resp, err := r.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"})
	return err == nil && resp.IsSuccess()
}

// Recognize uploads audio and streams the gateway's events. A failure to
// open the stream is delivered as a single Canceled event.
func (r *Recognizer) Recognize(ctx context.Context, audio io.Reader, fileName, locale string) (<-chan transcription.Event, error) {
	body, contentType, err := multipartBody(audio, fileName)
	if err != nil {
		return nil, err
	}

	query := map[string]string{"locale": locale}
	if r.cfg.Region != "" {
		query["region"] = r.cfg.Region
	}

	out := make(chan transcription.Event, 16)
	stream, err := r.http.DoStream(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcribe",
		Query:  query,
		Headers: map[string]string{
			"Content-Type": contentType,
			"Accept":       "text/event-stream",
		},
		Body: body,
	})
	if err != nil {
		r.log.Error("gateway stream failed", logger.ErrorFields("recognize", err))
		out <- cancelFor(err)
		close(out)
		return out, nil
	}
	if stream.SSE == nil {
		_ = stream.Close()
		out <- transcription.Canceled{
			Reason:  transcription.ReasonError,
			Code:    transcription.CodeBadRequest,
			Details: "gateway did not answer with an event stream",
		}
		close(out)
		return out, nil
	}

	go r.pump(ctx, stream, out)
	return out, nil
}

func (r *Recognizer) pump(ctx context.Context, stream *httpclient.StreamResponse, out chan<- transcription.Event) {
	defer close(out)
	defer func() { _ = stream.Close() }()

	send := func(ev transcription.Event) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		msg, err := stream.SSE.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			if ctx.Err() == nil {
				send(transcription.Canceled{
					Reason:  transcription.ReasonError,
					Code:    transcription.CodeConnectionFailure,
					Details: err.Error(),
				})
			}
			return
		}
		ev, err := decode(msg)
		if err != nil {
			r.log.Warn("skipping malformed gateway event", logger.Fields("event", msg.Event, logger.FieldError, err.Error()))
			continue
		}
		if ev == nil {
			continue
		}
		if !send(ev) {
			return
		}
	}
}

func multipartBody(audio io.Reader, fileName string) (*bytes.Buffer, string, error) {
	if fileName == "" {
		fileName = "audio.wav"
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio", fileName)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, "", fmt.Errorf("write audio data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// cancelFor describes a failed stream request as a cancellation.
func cancelFor(err error) transcription.Canceled {
	c := transcription.Canceled{Reason: transcription.ReasonError, Details: err.Error()}
	if body := httpclient.ResponseBody(err); len(body) > 0 {
		c.Details = string(body)
	}
	switch status := httpclient.StatusCode(err); {
	case status == http.StatusUnauthorized:
		c.Code = transcription.CodeAuthenticationFailure
	case status == http.StatusForbidden:
		c.Code = transcription.CodeForbidden
	case status == http.StatusTooManyRequests:
		c.Code = transcription.CodeTooManyRequests
	case status == http.StatusServiceUnavailable:
		c.Code = transcription.CodeServiceUnavailable
	case status >= 400 && status < 500:
		c.Code = transcription.CodeBadRequest
	case httpclient.IsTimeout(err):
		c.Code = transcription.CodeServiceTimeout
	case status == 0:
		c.Code = transcription.CodeConnectionFailure
	default:
		c.Code = transcription.CodeRuntimeError
	}
	return c
}
