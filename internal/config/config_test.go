package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tempo/internal/config"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig(configPath, dbPath, logPath string) *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Backend:       config.BackendLocal,
			TasksSheet:    "Tasks",
			SessionsSheet: "Sessions",
			Path:          dbPath,
			Timeout:       15 * time.Second,
		},
		Settings: config.SettingsConfig{
			Exclusive: true,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
		Log: config.LogConfig{
			Level:      "info",
			Path:       logPath,
			MaxSize:    10,
			MaxBackups: 3,
		},
		PathToConfig: configPath,
	}
}

func TestViperWriteConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")
	dbPath := filepath.Join(tmpDir, "tempo.db")
	logPath := filepath.Join(tmpDir, "tempo.log")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithDefaultPaths(dbPath, logPath),
	)
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(configPath, dbPath, logPath), cfg)

	_, err = os.Stat(configPath)
	require.NoError(t, err, "default config should be written to disk")

	// Reading the written file back must give the same result.
	again, err := config.New(
		config.WithViperConfig(configPath),
		config.WithDefaultPaths(dbPath, logPath),
	)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join("testdata", "sheets_config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithDefaultPaths("/data/tempo.db", "/data/tempo.log"),
	)
	require.NoError(t, err)

	want := &config.Config{
		Store: config.StoreConfig{
			Backend:         config.BackendSheets,
			SpreadsheetID:   "1AbCdEfGh",
			CredentialsFile: "/etc/tempo/sa.json",
			TasksSheet:      "Work",
			SessionsSheet:   "Log",
			Path:            "/data/tempo.db",
			Timeout:         30 * time.Second,
		},
		Settings: config.SettingsConfig{
			StopCmd:        "notify-send done",
			TwentyFourHour: true,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Log: config.LogConfig{
			Level:      "debug",
			Path:       "/data/tempo.log",
			MaxSize:    5,
			MaxBackups: 1,
		},
		PathToConfig: configPath,
	}

	assert.Equal(t, want, cfg)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return defaultConfig("config.yml", "tempo.db", "tempo.log")
	}

	cases := []struct {
		Name   string
		Modify func(c *config.Config)
	}{
		{
			Name: "unknown backend",
			Modify: func(c *config.Config) {
				c.Store.Backend = "postgres"
			},
		},
		{
			Name: "sheets backend without spreadsheet",
			Modify: func(c *config.Config) {
				c.Store.Backend = config.BackendSheets
				c.Store.CredentialsFile = "sa.json"
			},
		},
		{
			Name: "sheets backend without credentials",
			Modify: func(c *config.Config) {
				c.Store.Backend = config.BackendSheets
				c.Store.SpreadsheetID = "abc"
			},
		},
		{
			Name: "empty sessions sheet",
			Modify: func(c *config.Config) {
				c.Store.SessionsSheet = " "
			},
		},
		{
			Name: "timeout too short",
			Modify: func(c *config.Config) {
				c.Store.Timeout = time.Millisecond
			},
		},
		{
			Name: "bad log level",
			Modify: func(c *config.Config) {
				c.Log.Level = "verbose"
			},
		},
	}

	require.NoError(t, valid().Validate())

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			c := valid()
			tc.Modify(c)
			assert.Error(t, c.Validate())
		})
	}
}
