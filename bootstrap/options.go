package bootstrap

import (
	"time"

	"github.com/kbukum/gojoin/logger"
)

const (
	defaultVersion         = "dev"
	defaultGracefulTimeout = 5 * time.Second
)

// Option configures an App in NewApp.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	version         string
	runID           string
	gracefulTimeout time.Duration
}

func resolveOptions(opts []Option) appOptions {
	o := appOptions{version: defaultVersion, gracefulTimeout: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger installs l as the App's logger and the global logger. Without
// it the logger is built from the config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithVersion sets the version reported in logs and telemetry. Empty keeps
// "dev".
func WithVersion(v string) Option {
	return func(o *appOptions) {
		if v != "" {
			o.version = v
		}
	}
}

// WithRunID sets the run correlation ID. Empty means a random UUID.
func WithRunID(id string) Option {
	return func(o *appOptions) { o.runID = id }
}

// WithGracefulTimeout bounds the stop hooks and the telemetry flush.
// Non-positive values keep the default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		if d > 0 {
			o.gracefulTimeout = d
		}
	}
}
