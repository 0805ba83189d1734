package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/speechkit/logger"
)

// MeterConfig configures metric export. Build it with Config.Meter.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Insecure       bool
	// Interval is the export period.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by the orchestrator, the
// platform client and the HTTP server. All methods accept a nil receiver.
type Metrics struct {
	jobsSubmitted    metric.Int64Counter
	platformRequests metric.Int64Counter
	platformDuration metric.Float64Histogram
	resolveFailures  metric.Int64Counter
	mergedSegments   metric.Int64Histogram
	expiredTokens    metric.Int64Counter
	httpRequests     metric.Int64Counter
	httpDuration     metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.jobsSubmitted, err = meter.Int64Counter("batch.jobs.submitted",
		metric.WithDescription("Batch jobs submitted, by outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating batch.jobs.submitted counter: %w", err)
	}
	if m.platformRequests, err = meter.Int64Counter("speech.platform.requests",
		metric.WithDescription("Speech platform calls, by operation and status"),
	); err != nil {
		return nil, fmt.Errorf("creating speech.platform.requests counter: %w", err)
	}
	if m.platformDuration, err = meter.Float64Histogram("speech.platform.duration",
		metric.WithDescription("Duration of speech platform calls in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating speech.platform.duration histogram: %w", err)
	}
	if m.resolveFailures, err = meter.Int64Counter("batch.files.resolve_failures",
		metric.WithDescription("Jobs whose file manifest could not be resolved"),
	); err != nil {
		return nil, fmt.Errorf("creating batch.files.resolve_failures counter: %w", err)
	}
	if m.mergedSegments, err = meter.Int64Histogram("batch.merge.segments",
		metric.WithDescription("Segments produced per merged result"),
	); err != nil {
		return nil, fmt.Errorf("creating batch.merge.segments histogram: %w", err)
	}
	if m.expiredTokens, err = meter.Int64Counter("batch.results.expired_tokens",
		metric.WithDescription("Result files skipped because their signed URL expired"),
	); err != nil {
		return nil, fmt.Errorf("creating batch.results.expired_tokens counter: %w", err)
	}
	if m.httpRequests, err = meter.Int64Counter("http.server.requests",
		metric.WithDescription("HTTP requests served"),
	); err != nil {
		return nil, fmt.Errorf("creating http.server.requests counter: %w", err)
	}
	if m.httpDuration, err = meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating http.server.duration histogram: %w", err)
	}
	return &m, nil
}

// RecordJobSubmitted counts a submission with outcome ok, placeholder or error.
func (m *Metrics) RecordJobSubmitted(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.jobsSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordPlatformCall records one speech platform call.
func (m *Metrics) RecordPlatformCall(ctx context.Context, operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.platformRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.platformDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordResolveFailure counts a job whose files could not be fetched.
func (m *Metrics) RecordResolveFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.resolveFailures.Add(ctx, 1)
}

// RecordMerge records the size of a merged result.
func (m *Metrics) RecordMerge(ctx context.Context, segments, files int) {
	if m == nil {
		return
	}
	m.mergedSegments.Record(ctx, int64(segments), metric.WithAttributes(attribute.Int("files", files)))
}

// RecordExpiredToken counts a result file skipped for an expired URL.
func (m *Metrics) RecordExpiredToken(ctx context.Context) {
	if m == nil {
		return
	}
	m.expiredTokens.Add(ctx, 1)
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.httpRequests.Add(ctx, 1, attrs)
	m.httpDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}
