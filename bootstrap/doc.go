// Package bootstrap runs one gojoin invocation with a uniform lifecycle.
//
// An App owns the loaded configuration, the logger, the run ID and the
// telemetry providers. RunTask starts telemetry, runs the OnStart hooks,
// executes the task under a context canceled on SIGINT or SIGTERM, then
// runs the OnStop hooks and flushes telemetry within the graceful timeout.
//
//	app, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    return err
//	}
//	app.OnStop(func(context.Context) error { return src.Close() })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := join.NewEngine(settings, src1, src2, out,
//	        join.WithMetrics(app.Metrics)).Run(ctx)
//	    return err
//	})
package bootstrap
