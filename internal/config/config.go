package config

import "github.com/dmitrijs2005/fath2boinc/internal/logging"

// Usage is the one-line synopsis printed on a usage error.
const Usage = "USAGE: fath2boinc [-c config] [-log-format auto|text|json] [-log-level level] [-history path] <local data path> <f@h data path> <boinc data path>"

// Config holds runtime settings and the three paths of a run.
//
// HistoryDSN names a local SQLite file; empty disables the run ledger.
type Config struct {
	LogFormat  string
	LogLevel   string
	HistoryDSN string

	CheckpointPath string
	SummaryPath    string
	OutputPath     string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.LogFormat = logging.FormatAuto
	c.LogLevel = "info"
	c.HistoryDSN = ""
}

// LoadConfig builds a Config from defaults, the optional JSON file and the
// command line (args excludes the program name).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
