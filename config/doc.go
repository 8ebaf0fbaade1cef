// Package config loads and validates gojoin configuration.
//
// Values come, lowest precedence first, from built-in defaults, a
// configuration file (YAML, JSON or TOML), a .env file, GOJOIN_ environment
// variables and command-line flags.
//
// # Usage
//
//	cfg, err := config.Load("gojoin", flags, config.WithConfigFile(path))
//	if err == nil {
//	    err = cfg.Validate()
//	}
//	settings, err := cfg.Settings()
//
// Environment variables use the GOJOIN_ prefix with underscore-separated
// paths (e.g., GOJOIN_JOIN_IGNORE_CASE=true, GOJOIN_LOGGING_LEVEL=debug).
package config
