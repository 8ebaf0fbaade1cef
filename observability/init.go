package observability

import (
	"context"
	stderrors "errors"
)

// ShutdownFunc flushes and stops the telemetry providers.
type ShutdownFunc func(context.Context) error

// Init installs OTLP trace and metric providers when cfg.Enabled is set.
// Otherwise the global no-op providers stay in place and the returned
// shutdown does nothing.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	tp, err := InitTracer(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, &cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
