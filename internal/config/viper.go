package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	keyBackend         = "store.backend"
	keySpreadsheetID   = "store.spreadsheet_id"
	keyCredentialsFile = "store.credentials_file"
	keyTasksSheet      = "store.tasks_sheet"
	keySessionsSheet   = "store.sessions_sheet"
	keyStorePath       = "store.path"
	keyStoreTimeout    = "store.timeout"
	keyExclusive       = "settings.exclusive"
	keyStopCmd         = "settings.stop_cmd"
	keyTwentyFourHour  = "settings.24hr_clock"
	keyNotifications   = "notifications.enabled"
	keyDarkTheme       = "display.dark_theme"
	keyLogLevel        = "log.level"
	keyLogPath         = "log.path"
	keyLogMaxSize      = "log.max_size"
	keyLogMaxBackups   = "log.max_backups"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. The file is created with default values if it does not
// exist yet. Values already present on the Config (e.g. from the first-run
// prompt) are written to the new file.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		c.PathToConfig = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyBackend, string(BackendLocal))
	v.SetDefault(keySpreadsheetID, "")
	v.SetDefault(keyCredentialsFile, "")
	v.SetDefault(keyTasksSheet, "Tasks")
	v.SetDefault(keySessionsSheet, "Sessions")
	v.SetDefault(keyStorePath, "")
	v.SetDefault(keyStoreTimeout, "15s")
	v.SetDefault(keyExclusive, true)
	v.SetDefault(keyStopCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyNotifications, false)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogPath, "")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)

	if c.Store.Backend != "" {
		v.Set(keyBackend, string(c.Store.Backend))
	}

	if c.Store.SpreadsheetID != "" {
		v.Set(keySpreadsheetID, c.Store.SpreadsheetID)
	}

	if c.Store.CredentialsFile != "" {
		v.Set(keyCredentialsFile, c.Store.CredentialsFile)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	return v.Unmarshal(c)
}
