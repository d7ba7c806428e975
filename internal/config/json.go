package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pgkeystore/internal/flagx"
	"github.com/dmitrijs2005/pgkeystore/internal/timex"
)

// JSONConfig is the on-disk shape of the configuration file. Durations accept
// both "10s" strings and integer nanoseconds.
type JSONConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	LogLevel       string         `json:"log_level"`
	ConnectTimeout timex.Duration `json:"connect_timeout"`
	SchemaMode     string         `json:"schema_mode"`
}

// parseJSON overlays values from the file named by -c / -config. Fields
// absent from the file keep their current value.
func parseJSON(config *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.ConnectTimeout.Duration != 0 {
		config.ConnectTimeout = c.ConnectTimeout.Duration
	}
	if c.SchemaMode != "" {
		config.SchemaMode = c.SchemaMode
	}

	return nil
}
