package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback that runs around the task.
type Hook func(ctx context.Context) error

// OnStart registers hooks that run, in order, after telemetry starts and
// before the task. The first failing hook stops the run.
func (a *App) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop registers hooks that run after the task, or after a failed start,
// before telemetry is flushed. They run at most once.
func (a *App) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

func runHooks(ctx context.Context, phase string, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("%s hook %d: %w", phase, i+1, err)
		}
	}
	return nil
}
