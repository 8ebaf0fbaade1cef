// Package validation checks gojoin configuration values.
//
// Struct tag validation uses the go-playground validator; programmatic
// validation collects field errors for rules that do not fit a tag.
// Both report a single INVALID_INPUT AppError listing every failure.
//
// # Struct Tag Validation
//
//	type TelemetryConfig struct {
//	    SampleRate float64 `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Merge("telemetry", cfg.Telemetry.Validate()).
//	    Custom(size > 0, "input.buffer_size", "must be a positive size").
//	    Validate()
//
// Merge nests the field errors of a section under its prefix, so a nested
// "sample_rate" failure is reported as "telemetry.sample_rate".
package validation
