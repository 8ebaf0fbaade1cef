// Package logger provides structured logging for gojoin using zerolog.
//
// Diagnostics go to stderr by default so they never interleave with join
// output on stdout. It supports JSON and console formats, log level
// configuration, and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	logger.RegisterDefaults("join", "cli")
//	log := logger.Get("join")
//	log.Debug("join finished", logger.Fields("paired", n))
package logger
