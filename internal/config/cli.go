package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Backend       string
	SpreadsheetID string
	StopCmd       string
	DryRun        bool
	NoNotify      bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Flags take precedence over the config file.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Backend:       ctx.String("backend"),
			SpreadsheetID: ctx.String("spreadsheet"),
			StopCmd:       ctx.String("stop-cmd"),
			DryRun:        ctx.Bool("dry-run"),
			NoNotify:      ctx.Bool("disable-notification"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.Backend != "" {
		c.Store.Backend = Backend(opts.Backend)
	}

	if opts.SpreadsheetID != "" {
		c.Store.SpreadsheetID = opts.SpreadsheetID
	}

	if opts.StopCmd != "" {
		c.Settings.StopCmd = opts.StopCmd
	}

	if opts.NoNotify {
		c.Notifications.Enabled = false
	}

	c.CLI.DryRun = opts.DryRun
}
