package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/observability"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "GOJOIN"

// Configuration keys.
const (
	KeyField       = "join.field"
	KeyField1      = "join.field1"
	KeyField2      = "join.field2"
	KeyUnpaired    = "join.unpaired"
	KeyIgnoreCase  = "join.ignore_case"
	KeySeparator   = "join.separator"
	KeyCheckOrder  = "join.check_order"
	KeyLogLevel    = "logging.level"
	KeyLogFormat   = "logging.format"
	KeyBufferSize  = "input.buffer_size"
	KeyTelemetryOn = "telemetry.enabled"
	KeyRunID       = "run_id"
)

// defaults seeds viper so every key is known before environment binding.
// The separator has no default: whether it was set at all is significant.
func defaults(name string) map[string]any {
	telemetry := observability.DefaultConfig(name)
	return map[string]any{
		"name":                       name,
		KeyRunID:                     "",
		KeyField:                     "",
		KeyField1:                    "",
		KeyField2:                    "",
		KeyUnpaired:                  "",
		KeyIgnoreCase:                false,
		KeyCheckOrder:                false,
		KeyLogLevel:                  "warn",
		KeyLogFormat:                 "console",
		"logging.output":             "stderr",
		"logging.no_color":           false,
		"logging.timestamp":          false,
		"logging.caller":             false,
		KeyBufferSize:                DefaultBufferSize,
		KeyTelemetryOn:               telemetry.Enabled,
		"telemetry.service_name":     telemetry.ServiceName,
		"telemetry.service_version":  telemetry.ServiceVersion,
		"telemetry.environment":      telemetry.Environment,
		"telemetry.endpoint":         telemetry.Endpoint,
		"telemetry.insecure":         telemetry.Insecure,
		"telemetry.sample_rate":      telemetry.SampleRate,
		"telemetry.interval":         telemetry.Interval,
		"telemetry.shutdown_timeout": telemetry.ShutdownTimeout,
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"field":       KeyField,
	"field1":      KeyField1,
	"field2":      KeyField2,
	"unpaired":    KeyUnpaired,
	"ignore-case": KeyIgnoreCase,
	"separator":   KeySeparator,
	"check-order": KeyCheckOrder,
	"log-level":   KeyLogLevel,
}

// knownKeys lists every configuration key, including those without a default.
func knownKeys(defaults map[string]any) []string {
	keys := make([]string, 0, len(defaults)+1)
	for k := range defaults {
		keys = append(keys, k)
	}
	keys = append(keys, KeySeparator)
	slices.Sort(keys)
	return keys
}

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Getwd() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
	// Explicit is set when ConfigFile was given rather than discovered.
	Explicit bool
}

// ResolveFiles finds config and env files for a tool.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(name string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
		Explicit:   opts.ConfigFile != "",
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.findConfigFile(name)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.findEnvFile(name)
	}

	return resolved
}

// findConfigFile searches the working directory for a config file.
func (cr *Resolver) findConfigFile(name string) string {
	var searchPaths []string
	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		searchPaths = append(searchPaths,
			fmt.Sprintf("./.%s.%s", name, ext),
			fmt.Sprintf("./%s.%s", name, ext),
			fmt.Sprintf("./config/%s.%s", name, ext),
		)
	}

	for _, path := range searchPaths {
		if cr.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for a tool-specific .env file. A bare .env is only
// used when given explicitly.
func (cr *Resolver) findEnvFile(name string) string {
	envFile := fmt.Sprintf(".env.%s", name)
	for _, basePath := range []string{".", "./config"} {
		fullPath := fmt.Sprintf("%s/%s", basePath, envFile)
		if cr.FileSystem.Exists(fullPath) {
			return fullPath
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
	Flags      *pflag.FlagSet
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load builds the configuration of one invocation. Flags in fs that were
// set on the command line take precedence over every other source; the
// positional arguments of fs become Config.Inputs. fs may be nil.
func Load(name string, fs *pflag.FlagSet, opts ...LoaderOption) (*Config, error) {
	lc := LoaderConfig{Flags: fs}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(name, lc)

	cfg := &Config{}
	v, err := loadFromResolvedFiles(name, cfg, files, lc)
	if err != nil {
		return nil, err
	}
	cfg.Join.SeparatorSet = v.IsSet(KeySeparator)
	if fs != nil {
		cfg.Inputs = fs.Args()
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(name string, cfg any, files ResolvedFiles, lc LoaderConfig) (*viper.Viper, error) {
	v := viper.New()
	seeds := defaults(name)
	for k, val := range seeds {
		v.SetDefault(k, val)
	}

	// 1. Config file (base configuration)
	if files.ConfigFile != "" {
		if !lc.FileSystem.Exists(files.ConfigFile) {
			if files.Explicit {
				return nil, errors.IOFault(files.ConfigFile, fmt.Errorf("no such file or directory"))
			}
		} else {
			v.SetConfigFile(files.ConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.InvalidInput("config file", fmt.Sprintf("%s: %v", files.ConfigFile, err)).WithCause(err)
			}
		}
	}

	// 2. .env file, then GOJOIN_ environment variables
	if files.EnvFile != "" {
		if !lc.FileSystem.Exists(files.EnvFile) {
			if lc.EnvFile != "" {
				return nil, errors.IOFault(files.EnvFile, fmt.Errorf("no such file or directory"))
			}
		} else if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return nil, errors.InvalidInput("env file", fmt.Sprintf("%s: %v", files.EnvFile, err)).WithCause(err)
		}
	}
	v.AllowEmptyEnv(true)
	if err := autoBindEnvVars(v, knownKeys(seeds)); err != nil {
		return nil, errors.Internal(err)
	}

	// 3. Command-line flags
	if lc.Flags != nil {
		for flagName, key := range flagKeys {
			if f := lc.Flags.Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Internal(err)
				}
			}
		}
	}

	// 4. Unmarshal into config struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.InvalidInput("configuration", fmt.Sprintf("failed to decode for %s: %v", name, err)).WithCause(err)
	}

	return v, nil
}

// autoBindEnvVars binds GOJOIN_ environment variables to the known key they
// name. An underscore in a variable may stand for either a nesting dot or
// an underscore within a key, so every reading is tried against keys.
func autoBindEnvVars(v *viper.Viper, keys []string) error {
	prefix := EnvPrefix + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}

		for _, variant := range generateEnvKeyVariants(strings.TrimPrefix(pair[0], prefix)) {
			if slices.Contains(keys, variant) {
				if err := v.BindEnv(variant, pair[0]); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	JOIN_IGNORE_CASE -> [join_ignore_case, join.ignore.case, join.ignore_case]
//	TELEMETRY_SAMPLE_RATE -> [telemetry_sample_rate, telemetry.sample.rate, telemetry.sample_rate]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Generate progressive nesting patterns
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
