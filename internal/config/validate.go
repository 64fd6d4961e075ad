package config

import (
	"strings"
	"time"
)

var (
	minStoreTimeout = 1 * time.Second
	maxStoreTimeout = 5 * time.Minute

	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateStore(); err != nil {
		return err
	}

	return c.validateLog()
}

func (c *Config) validateStore() error {
	s := &c.Store

	switch s.Backend {
	case BackendLocal:
		if strings.TrimSpace(s.Path) == "" {
			return errMissingSetting.Fmt("store.path", s.Backend)
		}
	case BackendSheets:
		if strings.TrimSpace(s.SpreadsheetID) == "" {
			return errMissingSetting.Fmt("store.spreadsheet_id", s.Backend)
		}

		if strings.TrimSpace(s.CredentialsFile) == "" {
			return errMissingSetting.Fmt("store.credentials_file", s.Backend)
		}
	default:
		return errUnknownBackend.Fmt(s.Backend)
	}

	if strings.TrimSpace(s.TasksSheet) == "" {
		return errEmptySheetName.Fmt("tasks")
	}

	if strings.TrimSpace(s.SessionsSheet) == "" {
		return errEmptySheetName.Fmt("sessions")
	}

	if s.Timeout < minStoreTimeout || s.Timeout > maxStoreTimeout {
		return errInvalidTimeout.Fmt(minStoreTimeout, maxStoreTimeout)
	}

	return nil
}

func (c *Config) validateLog() error {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))

	for _, l := range logLevels {
		if l == level {
			return nil
		}
	}

	return errInvalidLogLevel.Fmt(c.Log.Level)
}
