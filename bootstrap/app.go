package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/gojoin/config"
	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/logger"
	"github.com/kbukum/gojoin/observability"
)

// App represents one gojoin run with uniform lifecycle management.
type App struct {
	Name    string
	Version string
	RunID   string
	Cfg     *config.Config
	Logger  *logger.Logger
	// Metrics is set once RunTask has started telemetry.
	Metrics *observability.Metrics

	gracefulTimeout time.Duration
	shutdown        observability.ShutdownFunc

	onStart []Hook
	onStop  []Hook
}

// NewApp creates an application from a loaded config.
// It applies defaults, validates the config, and initializes the logger.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := resolveOptions(opts)
	app := &App{
		Name:            cfg.Name,
		Version:         o.version,
		RunID:           o.runID,
		Cfg:             cfg,
		gracefulTimeout: o.gracefulTimeout,
	}
	if app.RunID == "" {
		app.RunID = uuid.NewString()
	}

	// Logger: use custom if provided, otherwise init from config.
	if o.logger != nil {
		app.Logger = o.logger
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(&cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	// Component loggers registered earlier derive from the replaced logger.
	logger.Reset()
	return app, nil
}

// Context returns ctx carrying the run ID.
func (a *App) Context(ctx context.Context) context.Context {
	return logger.ContextWithRunID(ctx, a.RunID)
}

// RunTask executes task with the full lifecycle. The task's context carries
// the run ID and is canceled on SIGINT or SIGTERM. The task's error wins over
// a shutdown error.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	ctx = a.Context(ctx)
	if err := a.startup(ctx); err != nil {
		if stopErr := a.stop(); stopErr != nil {
			a.Logger.WithContext(ctx).Warn("shutdown after failed startup", logger.ErrorFields("shutdown", stopErr))
		}
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.WithContext(taskCtx).Info("received signal, canceling join", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)
	if errors.HasCode(taskErr, errors.ErrCodeInterrupted) {
		a.Logger.WithContext(ctx).Info("join interrupted")
	}

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// startup starts telemetry and runs the OnStart hooks.
func (a *App) startup(ctx context.Context) error {
	log := a.Logger.WithContext(ctx)
	log.Debug("starting", logger.Fields("name", a.Name, "version", a.Version))

	telemetry := a.Cfg.Telemetry
	if telemetry.ServiceVersion == "" {
		telemetry.ServiceVersion = a.Version
	}
	shutdown, err := observability.Init(ctx, telemetry)
	if err != nil {
		return errors.Wrap(err)
	}
	a.shutdown = shutdown

	metrics, err := observability.NewMetrics(observability.Meter(a.Name))
	if err != nil {
		return errors.Wrap(err)
	}
	a.Metrics = metrics

	return runHooks(ctx, "start", a.onStart)
}

// stop runs the OnStop hooks and flushes telemetry within the graceful
// timeout. It is safe to call more than once.
func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(a.Context(context.Background()), a.gracefulTimeout)
	defer cancel()
	log := a.Logger.WithContext(ctx)

	var shutdownErr error
	if err := runHooks(ctx, "stop", a.onStop); err != nil {
		log.WithError(err).Error("OnStop hook failed")
		shutdownErr = err
	}
	a.onStop = nil

	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			log.Warn("telemetry shutdown failed", logger.ErrorFields("telemetry", err))
			if shutdownErr == nil {
				shutdownErr = errors.Wrap(err)
			}
		}
		a.shutdown = nil
	}

	log.Debug("shutdown complete")
	return shutdownErr
}
