package config

import (
	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/field"
	"github.com/kbukum/gojoin/join"
	"github.com/kbukum/gojoin/logger"
	"github.com/kbukum/gojoin/observability"
	"github.com/kbukum/gojoin/source"
	"github.com/kbukum/gojoin/util"
	"github.com/kbukum/gojoin/validation"
)

// DefaultBufferSize is the default input reader buffer.
const DefaultBufferSize = "64KB"

// Config is the complete configuration of one gojoin invocation.
type Config struct {
	Name      string               `yaml:"name" mapstructure:"name"`
	// RunID correlates logs and spans of this run; empty means generate one.
	RunID     string               `yaml:"run_id" mapstructure:"run_id"`
	Logging   logger.Config        `yaml:"logging" mapstructure:"logging"`
	Join      JoinConfig           `yaml:"join" mapstructure:"join"`
	Input     InputConfig          `yaml:"input" mapstructure:"input"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`

	// Inputs are the two input designators from the command line.
	Inputs []string `yaml:"-" mapstructure:"-"`
}

// JoinConfig holds the join options as given, before parsing.
type JoinConfig struct {
	// Field is the 1-based join field for both inputs.
	Field string `yaml:"field" mapstructure:"field"`
	// Field1 and Field2 are the 1-based join fields of each input.
	Field1 string `yaml:"field1" mapstructure:"field1"`
	Field2 string `yaml:"field2" mapstructure:"field2"`
	// Unpaired is "1" or "2" to also print unpairable lines of that input.
	Unpaired   string `yaml:"unpaired" mapstructure:"unpaired"`
	IgnoreCase bool   `yaml:"ignore_case" mapstructure:"ignore_case"`
	// Separator is the field separator; empty means whole-line mode when
	// SeparatorSet is true.
	Separator    string `yaml:"separator" mapstructure:"separator"`
	SeparatorSet bool   `yaml:"-" mapstructure:"-"`
	CheckOrder   bool   `yaml:"check_order" mapstructure:"check_order"`
}

// InputConfig configures input reading.
type InputConfig struct {
	// BufferSize is the reader buffer per input, e.g. "64KB" or "1MB".
	BufferSize string `yaml:"buffer_size" mapstructure:"buffer_size"`
}

// Bytes returns the buffer size in bytes.
func (c InputConfig) Bytes() int {
	return int(util.ParseSize(c.BufferSize, source.DefaultBufferSize))
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "gojoin"
	}
	c.Logging.ApplyDefaults()
	if c.Input.BufferSize == "" {
		c.Input.BufferSize = DefaultBufferSize
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks the configuration. Join options are checked by Settings,
// which reports them with their own error codes.
func (c *Config) Validate() error {
	v := validation.New().
		Merge("logging", c.Logging.Validate()).
		Merge("telemetry", c.Telemetry.Validate()).
		Custom(util.ParseSize(c.Input.BufferSize, -1) > 0, "input.buffer_size", "must be a positive size such as 64KB")
	if err := v.Validate(); err != nil {
		return err
	}
	if len(c.Inputs) == 2 && c.Inputs[0] == source.Stdin && c.Inputs[1] == source.Stdin {
		return errors.ConfigConflict("both files cannot be standard input")
	}
	return nil
}

// Settings parses the join options into engine settings.
func (c *Config) Settings() (join.Settings, error) {
	s := join.DefaultSettings()
	var err error

	if s.Unpaired, err = join.ParseSide(c.Join.Unpaired); err != nil {
		return s, err
	}
	s.IgnoreCase = c.Join.IgnoreCase
	s.CheckOrder = c.Join.CheckOrder

	shared, err := join.ParseFieldNumber(c.Join.Field)
	if err != nil {
		return s, err
	}
	field1, err := join.ParseFieldNumber(c.Join.Field1)
	if err != nil {
		return s, err
	}
	field2, err := join.ParseFieldNumber(c.Join.Field2)
	if err != nil {
		return s, err
	}
	if s.Key1, err = join.ResolveKey(shared, field1); err != nil {
		return s, err
	}
	if s.Key2, err = join.ResolveKey(shared, field2); err != nil {
		return s, err
	}

	if s.Separator, err = field.ParseSeparator(c.Join.Separator, c.Join.SeparatorSet); err != nil {
		return s, err
	}
	return s, nil
}
