package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/pgkeystore/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   PostgreSQL DSN
//	-l string   log level
//	-t int      connect timeout, seconds
//	-m string   schema mode: bootstrap or migrate
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-t", "-m"})

	fs := flag.NewFlagSet("keystore-init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	timeout := fs.Int("t", int(config.ConnectTimeout.Seconds()), "connect timeout (in seconds)")
	fs.StringVar(&config.SchemaMode, "m", config.SchemaMode, "schema mode (bootstrap|migrate)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.ConnectTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
