package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/logger"
)

// Run statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RunContext tracks the span and metrics of one join run.
type RunContext struct {
	ServiceName string
	StartTime   time.Time
	Metrics     *Metrics
}

// NewRunContext creates a run context.
// If metrics is nil, metric recording is silently skipped.
func NewRunContext(serviceName string, metrics *Metrics) *RunContext {
	return &RunContext{
		ServiceName: serviceName,
		StartTime:   time.Now(),
		Metrics:     metrics,
	}
}

// StartSpan starts the run span, tagged with the run ID carried by ctx.
func (rc *RunContext) StartSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(attribute.String(AttrServiceName, rc.ServiceName))
	if id := logger.RunIDFromContext(ctx); id != "" {
		span.SetAttributes(attribute.String(AttrRunID, id))
	}
	span.SetAttributes(attrs...)
	return ctx, span
}

// End closes the span and records the run. rec.Duration and rec.Status are
// filled in from the run context and err.
func (rc *RunContext) End(ctx context.Context, span trace.Span, rec RunRecord, err error) {
	rec.Duration = rc.Duration()
	rec.Status = StatusOK

	if err != nil {
		rec.Status = StatusError
		code := string(errors.Wrap(err).Code)
		span.RecordError(err)
		span.SetStatus(codes.Error, errors.Diagnostic(err))
		span.SetAttributes(
			attribute.String(AttrErrorCode, code),
			attribute.String(AttrErrorMessage, errors.Diagnostic(err)),
		)
		if rc.Metrics != nil {
			rc.Metrics.RecordError(ctx, code)
		}
	}

	span.SetAttributes(
		attribute.String(AttrStatus, rec.Status),
		attribute.Int64(AttrDurationMs, rec.Duration.Milliseconds()),
	)
	span.End()

	if rc.Metrics != nil {
		rc.Metrics.Record(ctx, rec)
	}
}

// Duration returns the elapsed time since the run started.
func (rc *RunContext) Duration() time.Duration {
	return time.Since(rc.StartTime)
}
