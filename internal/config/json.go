package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/fath2boinc/internal/flagx"
)

// JsonConfig is the on-disk shape of the config file. Keys left out keep
// their earlier value.
type JsonConfig struct {
	LogFormat  string `json:"log_format"`
	LogLevel   string `json:"log_level"`
	HistoryDSN string `json:"history_dsn"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.HistoryDSN != "" {
		cfg.HistoryDSN = jc.HistoryDSN
	}
	return nil
}
