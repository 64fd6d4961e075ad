package config

import (
	"fmt"
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Store         StoreConfig        `mapstructure:"store"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`
		PathToConfig  string             `mapstructure:"-"`
	}

	// StoreConfig selects and configures the sheet store backend
	StoreConfig struct {
		Backend         Backend       `mapstructure:"backend"`
		SpreadsheetID   string        `mapstructure:"spreadsheet_id"`
		CredentialsFile string        `mapstructure:"credentials_file"`
		TasksSheet      string        `mapstructure:"tasks_sheet"`
		SessionsSheet   string        `mapstructure:"sessions_sheet"`
		Path            string        `mapstructure:"path"`
		Timeout         time.Duration `mapstructure:"timeout"`
	}

	// SettingsConfig holds timer behaviour settings
	SettingsConfig struct {
		StopCmd        string `mapstructure:"stop_cmd"`
		Exclusive      bool   `mapstructure:"exclusive"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// LogConfig holds log file settings
	LogConfig struct {
		Level      string `mapstructure:"level"`
		Path       string `mapstructure:"path"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// CLIConfig holds values that only come from command-line flags
	CLIConfig struct {
		DryRun bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error

	// Backend names a sheet store implementation
	Backend string
)

const Version = "v0.3.0"

const (
	BackendSheets Backend = "sheets"
	BackendLocal  Backend = "local"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// WithDefaultPaths returns an Option that fills file locations that were not
// configured explicitly.
func WithDefaultPaths(dbPath, logPath string) Option {
	return func(c *Config) error {
		if c.Store.Path == "" {
			c.Store.Path = dbPath
		}

		if c.Log.Path == "" {
			c.Log.Path = logPath
		}

		return nil
	}
}

func (b Backend) String() string {
	return string(b)
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"backend=%s spreadsheet=%s path=%s",
		c.Store.Backend,
		c.Store.SpreadsheetID,
		c.Store.Path,
	)
}
