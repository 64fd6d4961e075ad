package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
████████╗███████╗███╗   ███╗██████╗  ██████╗
╚══██╔══╝██╔════╝████╗ ████║██╔══██╗██╔═══██╗
   ██║   █████╗  ██╔████╔██║██████╔╝██║   ██║
   ██║   ██╔══╝  ██║╚██╔╝██║██╔═══╝ ██║   ██║
   ██║   ███████╗██║ ╚═╝ ██║██║     ╚██████╔╝
   ╚═╝   ╚══════╝╚═╝     ╚═╝╚═╝      ╚═════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Backend         string
	SpreadsheetID   string
	CredentialsFile string
}

// WithPromptConfig returns an Option that asks where data should be stored
// the first time tempo runs. It does nothing once the config file exists.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Tempo for the first time.
Choose where your tasks and sessions are stored.
Edit the config file with 'tempo edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Store tasks and sessions in").
				Options(
					huh.NewOption("A local file", string(BackendLocal)).
						Selected(true),
					huh.NewOption("A Google Sheets spreadsheet", string(BackendSheets)),
				).
				Value(&opts.Backend),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Spreadsheet ID").
				Description("The long identifier in the spreadsheet URL").
				Value(&opts.SpreadsheetID),
			huh.NewInput().
				Title("Service account credentials file").
				Value(&opts.CredentialsFile),
		).WithHideFunc(func() bool {
			return opts.Backend != string(BackendSheets)
		}),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Store.Backend = Backend(opts.Backend)
	c.Store.SpreadsheetID = opts.SpreadsheetID
	c.Store.CredentialsFile = opts.CredentialsFile
}
