package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanPlatformRequest = "speech.platform.request"
	SpanSubmit          = "batch.submit"
	SpanListJobs        = "batch.list_jobs"
	SpanMerge           = "batch.merge"
	SpanUpload          = "storage.upload"
	SpanSession         = "transcription.session"
)

// Attribute keys.
const (
	AttrJobID        = "job.id"
	AttrLocale       = "speech.locale"
	AttrFileCount    = "file.count"
	AttrStatus       = "status"
	AttrErrorMessage = "error.message"
)

// Observe starts a span for a speech platform operation and returns a
// function that ends it and records the call on m.
func Observe(ctx context.Context, m *Metrics, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := StartSpan(ctx, operation, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		}
		span.SetAttributes(attribute.String(AttrStatus, status))
		span.End()
		m.RecordPlatformCall(ctx, operation, status, time.Since(start))
	}
}
