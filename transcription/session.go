package transcription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/transcript"
)

const noSpeechMessage = "Transcription completed but no speech segments were detected. " +
	"This could mean the audio has no speech, is too short, or " +
	"diarization couldn't identify distinct speakers."

// Config tunes a session.
type Config struct {
	// PollInterval is how often progress is logged while waiting.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	// Live controls duration synthesis for the collected phrases.
	Live transcript.LiveOptions `yaml:"live" mapstructure:"live"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = 500 * time.Millisecond
	}
	def := transcript.DefaultLiveOptions()
	if c.Live.WordsPerSecond <= 0 {
		c.Live.WordsPerSecond = def.WordsPerSecond
	}
	if c.Live.MinSegmentSeconds <= 0 {
		c.Live.MinSegmentSeconds = def.MinSegmentSeconds
	}
}

// Result is the outcome of a completed session.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Locale  string `json:"locale"`
	transcript.Summary
	Segments []transcript.Segment `json:"segments"`
}

// Session runs recognitions against one Recognizer. It holds no per-run
// state and is safe for concurrent use.
type Session struct {
	rec     Recognizer
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMetrics records each run on m.
func WithMetrics(m *observability.Metrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// NewSession creates a session runner.
func NewSession(rec Recognizer, cfg Config, log *logger.Logger, opts ...SessionOption) *Session {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	s := &Session{rec: rec, cfg: cfg, log: log.WithComponent("transcription")}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run recognizes req.Audio and blocks until the session ends. A normal end
// of stream is success; an error cancellation returns a TRANSCRIPTION_ERROR
// carrying the descriptive message.
func (s *Session) Run(ctx context.Context, req Request) (res *Result, err error) {
	if req.Audio == nil {
		return nil, errors.InvalidInput("audio", "audio file is required")
	}
	if req.Locale != "" && req.Locale != SupportedLocale {
		s.log.Warn("live transcription only supports en-US; requested locale ignored",
			logger.Fields(logger.FieldLocale, req.Locale))
	}

	ctx, end := observability.Observe(ctx, s.metrics, observability.SpanSession,
		attribute.String(observability.AttrLocale, SupportedLocale))
	defer func() { end(err) }()

	s.log.Info("starting live transcription", logger.Fields(
		logger.FieldFileName, req.FileName, logger.FieldLocale, SupportedLocale, "recognizer", s.rec.Name()))

	events, err := s.rec.Recognize(ctx, req.Audio, req.FileName, SupportedLocale)
	if err != nil {
		return nil, errors.Transcription("Transcription failed: " + err.Error()).WithCause(err)
	}

	raw, cancel, err := s.collect(ctx, events, req.OnEvent)
	if err != nil {
		return nil, err
	}
	if cancel != nil && !cancel.Normal() {
		msg := cancel.Message()
		s.log.Error("transcription canceled", logger.Fields(
			"reason", string(cancel.Reason), "code", string(cancel.Code), logger.FieldError, cancel.Details))
		return nil, errors.Transcription(msg).WithDetail("code", string(cancel.Code))
	}

	segs := transcript.FinalizeLive(raw, s.cfg.Live)
	s.log.Info("transcription segments finalized", logger.Fields(
		logger.FieldSegmentCount, len(segs), "collected", len(raw)))

	res = &Result{
		Success:  true,
		Locale:   SupportedLocale,
		Summary:  transcript.Rebuild(segs),
		Segments: segs,
	}
	if len(segs) == 0 {
		res.Message = noSpeechMessage
		s.log.Warn("no segments detected in transcription")
	} else {
		res.Message = fmt.Sprintf("Transcription completed successfully with %d segment(s)", len(segs))
	}
	return res, nil
}

// collect drains events until a terminal event, a closed channel or ctx
// ends the session. The returned Canceled is nil when the session stopped
// without one.
func (s *Session) collect(ctx context.Context, events <-chan Event, observe func(Event)) ([]transcript.Segment, *Canceled, error) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	var segs []transcript.Segment
	for {
		select {
		case <-ctx.Done():
			return nil, nil, errors.Timeout("transcription").WithCause(ctx.Err())
		case <-ticker.C:
			s.log.Debug("transcription in progress", logger.Fields(logger.FieldSegmentCount, len(segs)))
		case ev, ok := <-events:
			if !ok {
				return segs, nil, nil
			}
			if observe != nil {
				observe(ev)
			}
			switch e := ev.(type) {
			case SessionStarted:
				s.log.Debug("session started", logger.Fields("session_id", e.SessionID))
			case Transcribing:
				s.log.Debug("transcribing", logger.Fields("text_length", len(e.Text)))
			case Transcribed:
				if e.NoMatch {
					s.log.Debug("speech could not be recognized")
					continue
				}
				segs = append(segs, newSegment(e))
			case Canceled:
				if e.Normal() {
					s.log.Info("audio stream ended")
				}
				return segs, &e, nil
			case SessionStopped:
				s.log.Debug("session stopped", logger.Fields("session_id", e.SessionID))
				return segs, nil, nil
			}
		}
	}
}

func newSegment(e Transcribed) transcript.Segment {
	speaker := e.Speaker
	if strings.TrimSpace(speaker) == "" {
		speaker = transcript.UnknownSpeaker
	}
	sp, text := speaker, e.Text
	return transcript.Segment{
		Speaker:         speaker,
		Text:            e.Text,
		OffsetTicks:     e.OffsetTicks,
		OriginalSpeaker: &sp,
		OriginalText:    &text,
	}
}
