package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/fath2boinc/internal/common"
)

// parseFlags applies flag overrides and takes the three positional paths.
//
//	-c, -config string   config file (already consumed by parseJson)
//	-log-format string   auto, text or json
//	-log-level string    debug, info, warn or error
//	-history string      SQLite run ledger path
func parseFlags(cfg *Config, args []string) error {
	var configPath string

	fs := flag.NewFlagSet("fath2boinc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&configPath, "config", "", "config file")
	fs.StringVar(&configPath, "c", "", "config file (short)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: auto, text or json")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.HistoryDSN, "history", cfg.HistoryDSN, "SQLite run history path (empty disables)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", common.ErrUsage, err)
	}

	pos := fs.Args()
	if len(pos) != 3 {
		return fmt.Errorf("%w: expected 3 paths, got %d", common.ErrUsage, len(pos))
	}
	cfg.CheckpointPath, cfg.SummaryPath, cfg.OutputPath = pos[0], pos[1], pos[2]
	return nil
}
