package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Date          string
	Book          string
	Driver        string
	DBPath        string
	SessionCmd    string
	Port          uint
	DisableNotify bool
	Debug         bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context, now time.Time) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Date:          ctx.String("date"),
			Book:          ctx.String("book"),
			Driver:        ctx.String("storage-driver"),
			DBPath:        ctx.String("db-path"),
			SessionCmd:    ctx.String("session-cmd"),
			Port:          ctx.Uint("port"),
			DisableNotify: ctx.Bool("disable-notification"),
			Debug:         ctx.Bool("debug"),
		}

		return applyCLIOptions(c, opts, now)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if opts.Driver != "" {
		c.Storage.Driver = strings.ToLower(strings.TrimSpace(opts.Driver))
	}

	if opts.DBPath != "" {
		c.Storage.Path = opts.DBPath
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Port != 0 {
		c.Server.Port = opts.Port
	}

	c.CLI.BookRef = strings.TrimSpace(opts.Book)
	c.CLI.Debug = opts.Debug
	c.CLI.Date = now

	if opts.Date != "" {
		date, err := timeutil.FromStr(opts.Date, now)
		if err != nil {
			return errInvalidDate.Fmt(opts.Date).Wrap(err)
		}

		c.CLI.Date = date
	}

	return nil
}
