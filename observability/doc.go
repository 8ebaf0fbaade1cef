// Package observability provides OpenTelemetry tracing and metrics for join
// runs.
//
// Telemetry is off unless enabled in configuration; the global no-op
// providers then make every span and instrument free.
//
//	shutdown, err := observability.Init(ctx, cfg.Telemetry)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("gojoin"))
//	rc := observability.NewRunContext("gojoin", metrics)
//	ctx, span := rc.StartSpan(ctx, observability.SpanJoinRun)
//	defer rc.End(ctx, span, record, err)
package observability
