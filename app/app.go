// Package app is the tempo command-line interface.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tempo/internal/config"
)

const (
	envNoColor      = "NO_COLOR"
	envTempoNoColor = "TEMPO_NO_COLOR"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func taskCommand(name, usage, argsUsage string, action func(*cli.Context, *env) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: argsUsage,
		Action:    withEnv(action),
	}
}

// Get retrieves the tempo app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "tempo",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Tempo is a time tracker for the command-line. Create tasks, start and
		stop their timers and see where your time goes. Tasks and sessions are
		kept in a Google Sheets spreadsheet or a local file.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a task. Prompts for the details when NAME is omitted",
				ArgsUsage: "[NAME]",
				Flags:     []cli.Flag{categoryFlag},
				Action:    withEnv(addAction),
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List active tasks with their timer status and total time",
				Flags:   []cli.Flag{allFlag, archivedFlag, jsonFlag},
				Action:  withEnv(listAction),
			},
			taskCommand("rename", "Rename a task", "ID NAME", renameAction),
			taskCommand(
				"categorize",
				"Change the category of a task. Omit CATEGORY to clear it",
				"ID [CATEGORY]",
				categorizeAction,
			),
			taskCommand("archive", "Hide a task from the task list. Its sessions still count in stats", "ID", archiveAction),
			taskCommand("unarchive", "Restore an archived task", "ID", unarchiveAction),
			{
				Name:      "start",
				Usage:     "Start the timer of a task",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{sinceFlag},
				Action:    withEnv(startAction),
			},
			taskCommand("stop", "Stop the timer of a task. ID may be omitted when one timer is running", "[ID]", stopAction),
			taskCommand("toggle", "Start the timer of a task if it is idle and stop it otherwise", "ID", toggleAction),
			{
				Name:   "status",
				Usage:  "Print the running timers",
				Flags:  []cli.Flag{jsonFlag},
				Action: withEnv(statusAction),
			},
			{
				Name: "stats",
				Usage: `
				Show where your time went, grouped by category and by day. Defaults
				to a reporting period of 7 days`,
				Flags:  []cli.Flag{periodFlag, startFlag, endFlag, jsonFlag},
				Action: withEnv(statsAction),
			},
			{
				Name:   "export",
				Usage:  "Export recorded sessions as CSV",
				Flags:  []cli.Flag{outputFlag},
				Action: withEnv(exportAction),
			},
			taskCommand("watch", "Open a live view of your tasks. Press space to start or stop the selected task", "", watchAction),
			taskCommand("refresh", "Reload tasks and sessions from the store", "", refreshAction),
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			backendFlag,
			spreadsheetFlag,
			dryRunFlag,
			disableNotificationFlag,
			stopCmdFlag,
			noColorFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/tempo/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TEMPO_NO_COLOR is set
	if _, exists := os.LookupEnv(envTempoNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting tempo")

	return nil
}
