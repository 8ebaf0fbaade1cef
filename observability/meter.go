package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/gojoin/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *Config) (*sdkmetric.MeterProvider, error) {
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

	logger.Get("telemetry").Debug("meter initialized", logger.Fields(
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

// Metric names.
const (
	MetricLinesRead    = "join.lines.read"
	MetricRowsPaired   = "join.rows.paired"
	MetricRowsUnpaired = "join.rows.unpaired"
	MetricGroups       = "join.groups"
	MetricDuration     = "join.duration"
	MetricErrors       = "join.errors"
)

// RunRecord is the outcome of one join run as reported to metrics.
// Per-side arrays are indexed by side minus one.
type RunRecord struct {
	LinesRead [2]int64
	Paired    int64
	Unpaired  [2]int64
	Groups    int64
	Duration  time.Duration
	Status    string
}

// Metrics holds the join instruments.
type Metrics struct {
	linesRead    metric.Int64Counter
	rowsPaired   metric.Int64Counter
	rowsUnpaired metric.Int64Counter
	groups       metric.Int64Counter
	duration     metric.Float64Histogram
	errorTotal   metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	linesRead, err := meter.Int64Counter(MetricLinesRead,
		metric.WithDescription("Input lines read, by side"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricLinesRead, err)
	}

	rowsPaired, err := meter.Int64Counter(MetricRowsPaired,
		metric.WithDescription("Joined output rows"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRowsPaired, err)
	}

	rowsUnpaired, err := meter.Int64Counter(MetricRowsUnpaired,
		metric.WithDescription("Unpaired output rows, by side"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRowsUnpaired, err)
	}

	groups, err := meter.Int64Counter(MetricGroups,
		metric.WithDescription("Keys present on both sides"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricGroups, err)
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Duration of join runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDuration, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Failed join runs by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrors, err)
	}

	return &Metrics{
		linesRead:    linesRead,
		rowsPaired:   rowsPaired,
		rowsUnpaired: rowsUnpaired,
		groups:       groups,
		duration:     duration,
		errorTotal:   errorTotal,
	}, nil
}

// Record adds the totals of one run.
func (m *Metrics) Record(ctx context.Context, r RunRecord) {
	for i := range r.LinesRead {
		side := metric.WithAttributes(attribute.String("side", strconv.Itoa(i+1)))
		m.linesRead.Add(ctx, r.LinesRead[i], side)
		m.rowsUnpaired.Add(ctx, r.Unpaired[i], side)
	}
	m.rowsPaired.Add(ctx, r.Paired)
	m.groups.Add(ctx, r.Groups)
	m.duration.Record(ctx, r.Duration.Seconds(), metric.WithAttributes(
		attribute.String("status", r.Status),
	))
}

// RecordError counts a failed run by error code.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
	))
}
