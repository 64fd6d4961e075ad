package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tempo/internal/config"
	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/timeutil"
	"github.com/ayoisaiah/tempo/internal/ui"
	"github.com/ayoisaiah/tempo/repository"
	"github.com/ayoisaiah/tempo/tui"
)

func (e *env) timeFormat() string {
	if e.cfg.Settings.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

// startAction handles the start command. With --since the timer is
// back-dated.
func startAction(ctx *cli.Context, e *env) error {
	task, err := taskArg(ctx, e)
	if err != nil {
		return err
	}

	var at time.Time

	if since := strings.TrimSpace(ctx.String("since")); since != "" {
		at, err = timeutil.FromStr(since, e.now())
		if err != nil {
			return err
		}
	}

	sess, err := e.engine.StartAt(ctx.Context, task.ID, at)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Started %s at %s",
		ui.Highlight(task.Name),
		sess.StartTime.Local().Format(e.timeFormat()),
	)

	return nil
}

// stopTarget returns the task to stop. Without an argument the only running
// timer is picked. A running session whose task row no longer exists is
// matched on its task id so it can still be stopped.
func stopTarget(ctx *cli.Context, e *env) (models.Task, error) {
	running := e.engine.Running()

	if ctx.Args().Present() {
		task, err := taskArg(ctx, e)
		if errors.Is(err, repository.ErrTaskNotFound) {
			return orphanTask(running, ctx.Args().First(), err)
		}

		return task, err
	}

	switch len(running) {
	case 0:
		return models.Task{}, errNothingRunning
	case 1:
		return sessionTask(e, running[0].TaskID)
	default:
		return models.Task{}, errSeveralRunning.Fmt(len(running))
	}
}

// sessionTask returns the task a session belongs to. A task row removed from
// the sheet by hand yields a stand-in named after its id.
func sessionTask(e *env, taskID string) (models.Task, error) {
	task, err := e.repo.Task(taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return models.Task{ID: taskID, Name: taskID}, nil
	}

	return task, err
}

// orphanTask matches prefix against the task ids of running sessions.
// notFound is returned when none matches.
func orphanTask(
	running []models.Session,
	prefix string,
	notFound error,
) (models.Task, error) {
	prefix = strings.TrimSpace(prefix)

	var matches []string

	for _, s := range running {
		if prefix != "" && strings.HasPrefix(s.TaskID, prefix) &&
			!slices.Contains(matches, s.TaskID) {
			matches = append(matches, s.TaskID)
		}
	}

	if len(matches) == 0 {
		return models.Task{}, notFound
	}

	if len(matches) > 1 {
		return models.Task{}, repository.ErrAmbiguousID.Fmt(prefix, len(matches))
	}

	match := matches[0]

	return models.Task{ID: match, Name: match}, nil
}

// stopAction handles the stop command.
func stopAction(ctx *cli.Context, e *env) error {
	task, err := stopTarget(ctx, e)
	if err != nil {
		return err
	}

	sess, err := e.engine.Stop(ctx.Context, task.ID)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Stopped %s after %s",
		ui.Highlight(task.Name),
		ui.Green(timeutil.Clock(sess.Duration)),
	)

	return nil
}

// toggleAction handles the toggle command.
func toggleAction(ctx *cli.Context, e *env) error {
	task, err := taskArg(ctx, e)
	if err != nil {
		return err
	}

	sess, running, err := e.engine.Toggle(ctx.Context, task.ID)
	if err != nil {
		return err
	}

	if running {
		pterm.Success.Printfln("Started %s", ui.Highlight(task.Name))
		return nil
	}

	pterm.Success.Printfln(
		"Stopped %s after %s",
		ui.Highlight(task.Name),
		ui.Green(timeutil.Clock(sess.Duration)),
	)

	return nil
}

type statusItem struct {
	StartTime      time.Time `json:"start_time"`
	TaskID         string    `json:"task_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
}

// statusAction handles the status command and prints the running timers.
func statusAction(ctx *cli.Context, e *env) error {
	now := e.now()

	running := e.engine.Running()
	items := make([]statusItem, 0, len(running))

	for _, s := range running {
		task, err := sessionTask(e, s.TaskID)
		if err != nil {
			return err
		}

		items = append(items, statusItem{
			TaskID:         task.ID,
			Name:           task.Name,
			Category:       task.Category,
			StartTime:      s.StartTime,
			ElapsedSeconds: int64(s.Elapsed(now).Seconds()),
		})
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(items)
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	if len(items) == 0 {
		fmt.Fprintln(config.Stdout, "No timer is running")
		return nil
	}

	for _, item := range items {
		category := ""
		if item.Category != "" {
			category = " [" + ui.Cyan(item.Category) + "]"
		}

		fmt.Fprintf(
			config.Stdout,
			"%s%s: %s (since %s)\n",
			item.Name,
			category,
			ui.Green(timeutil.Clock(time.Duration(item.ElapsedSeconds)*time.Second)),
			item.StartTime.Local().Format(e.timeFormat()),
		)
	}

	return nil
}

// watchAction handles the watch command which opens the live task view.
func watchAction(ctx *cli.Context, e *env) error {
	return tui.Run(ctx.Context, e.repo, e.engine, e.cfg.Display.DarkTheme)
}
