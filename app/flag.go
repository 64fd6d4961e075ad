package app

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tempo/internal/timeutil"
)

var (
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Override the store backend for this invocation (sheets or local)",
	}

	spreadsheetFlag = &cli.StringFlag{
		Name:  "spreadsheet",
		Usage: "Override the Google Sheets spreadsheet ID",
	}

	dryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Keep all changes in memory. Nothing is written to the store",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a timer is stopped",
	}

	stopCmdFlag = &cli.StringFlag{
		Name:    "stop-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each timer is stopped",
	}

	categoryFlag = &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "Group the task under a category",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Start the timer in the past (e.g. '20 mins ago')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Include archived tasks",
	}

	archivedFlag = &cli.BoolFlag{
		Name:  "archived",
		Usage: "Only show archived tasks",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: " + periods(),
		Value:   string(timeutil.Period7Days),
	}

	startFlag = &cli.StringFlag{
		Name:    "start",
		Aliases: []string{"s"},
		Usage:   "Start date of the reporting period (e.g. 2024-03-01)",
	}

	endFlag = &cli.StringFlag{
		Name:    "end",
		Aliases: []string{"e"},
		Usage:   "End date of the reporting period (e.g. 2024-03-31)",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the CSV to a file instead of the standard output",
	}
)

func periods() string {
	names := make([]string, 0, len(timeutil.PeriodCollection))
	for _, p := range timeutil.PeriodCollection {
		names = append(names, string(p))
	}

	return strings.Join(names, ", ")
}
