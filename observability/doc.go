// Package observability wires OpenTelemetry tracing and metrics for the
// batch orchestrator, the platform client and the HTTP surface.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg.Tracer("speechkit", version, env))
//	defer tp.Shutdown(ctx)
//
//	ctx, end := observability.Observe(ctx, metrics, observability.SpanMerge)
//	defer func() { end(err) }()
//
// Metrics:
//
//	mc := cfg.Meter("speechkit", version, env)
//	mp, err := observability.InitMeter(ctx, &mc)
//	metrics, err := observability.NewMetrics(observability.Meter("speechkit"))
//	metrics.RecordJobSubmitted(ctx, "ok")
//
// A nil *Metrics is valid and records nothing.
package observability
