// Package config loads runtime configuration for fath2boinc.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-c, -config string   path to the JSON config file
//	-log-format string   auto, text or json (auto picks text on a terminal)
//	-log-level string    debug, info, warn or error
//	-history string      SQLite run ledger path; empty disables it
//
// Flags must come before the three positional paths:
//
//	fath2boinc [flags] <local data path> <f@h data path> <boinc data path>
//
// Any other argument count is reported as common.ErrUsage.
//
// # JSON schema
//
// The file may carry // and /* */ comments and trailing commas. Keys that
// are left out keep their default; unknown keys are an error:
//
//	{
//	  "log_format": "json",
//	  "log_level": "info",
//	  "history_dsn": "/var/lib/fath2boinc/history.db"
//	}
//
// Primary API
//
//   - type Config                          - log settings, history path and the three run paths
//   - func LoadConfig(args) (*Config, error) - applies defaults, JSON, then flags
//   - func (*Config) LoadDefaults()        - sets defaults
//   - const Usage                          - one-line synopsis for usage errors
//
// Note: This package does not read environment variables.
package config
