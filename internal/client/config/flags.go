package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags known here are parsed; the rest of args is ignored so other
// layers can own their own flags.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-d", "-p", "-l"})

	fs := flag.NewFlagSet("arcanedex", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the ArcaneDex API")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "catalog page size")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}
