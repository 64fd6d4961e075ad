package app

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tempo/export"
	"github.com/ayoisaiah/tempo/internal/config"
	"github.com/ayoisaiah/tempo/internal/osutil"
	"github.com/ayoisaiah/tempo/internal/pathutil"
	"github.com/ayoisaiah/tempo/internal/timeutil"
	"github.com/ayoisaiah/tempo/stats"
)

// reportingPeriod resolves the --period, --start and --end flags. Explicit
// dates take precedence over the period.
func reportingPeriod(ctx *cli.Context, now time.Time) (start, end time.Time, err error) {
	now = now.In(time.Local)

	startStr, endStr := ctx.String("start"), ctx.String("end")

	if startStr == "" && endStr == "" {
		period := timeutil.Period(ctx.String("period"))

		if !slices.Contains(timeutil.PeriodCollection, period) {
			return start, end, errInvalidPeriod.Fmt(period, periods())
		}

		start, end = timeutil.PeriodRange(period, now)

		return start, end, nil
	}

	end = timeutil.RoundToEnd(now)

	if startStr != "" {
		start, err = timeutil.ParseDate(startStr, time.Local)
		if err != nil {
			return start, end, err
		}

		start = timeutil.RoundToStart(start)
	}

	if endStr != "" {
		end, err = timeutil.ParseDate(endStr, time.Local)
		if err != nil {
			return start, end, err
		}

		end = timeutil.RoundToEnd(end)
	}

	if end.Before(start) {
		return start, end, errInvalidDateRange
	}

	return start, end, nil
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context, e *env) error {
	start, end, err := reportingPeriod(ctx, e.now())
	if err != nil {
		return err
	}

	r := stats.NewReport(
		e.repo.Sessions(),
		e.repo.ListTasks(""),
		start,
		end,
		time.Local,
	)

	if ctx.Bool("json") {
		b, err := r.ToJSON()
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	r.Render(config.Stdout)

	return nil
}

var createExportFile = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(
		path,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
		osutil.FilePermission,
	)
}

// exportAction handles the export command which writes every recorded
// session as CSV.
func exportAction(ctx *cli.Context, e *env) error {
	tasks, sessions := e.repo.ListTasks(""), e.repo.Sessions()

	path := ctx.String("output")
	if path == "" {
		return export.Write(config.Stdout, tasks, sessions)
	}

	f, err := createExportFile(path)
	if err != nil {
		return err
	}

	err = export.Write(f, tasks, sessions)
	if err != nil {
		_ = f.Close()
		return err
	}

	if err = f.Close(); err != nil {
		return errCloseExport.Fmt(path).Wrap(err)
	}

	pterm.Success.Printfln("Exported sessions to %s", path)

	return nil
}

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editConfigAction handles the edit-config command which opens the tempo
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	cmd := exec.Command(editor, pathutil.Must().ConfigFilePath())

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}
