package app

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/ui"
	"github.com/ayoisaiah/tempo/repository"
)

const shortIDLen = 8

// shortID is the id prefix shown to users. Any unique prefix is accepted
// wherever a task id is expected.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}

	return id[:shortIDLen]
}

// promptTask asks for the details of a new task. It is replaced in tests.
var promptTask = func(category string) (name, cat string, err error) {
	cat = category

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return repository.ErrEmptyName
					}

					return nil
				}),
			huh.NewInput().
				Title("Category").
				Description("Optional, used to group tasks in reports").
				Value(&cat),
		),
	)

	err = form.Run()

	return name, cat, err
}

// taskArg resolves the task named by the first argument.
func taskArg(ctx *cli.Context, e *env) (models.Task, error) {
	prefix := strings.TrimSpace(ctx.Args().First())
	if prefix == "" {
		return models.Task{}, errMissingArg.Fmt("task id", ctx.Command.Name+" "+ctx.Command.ArgsUsage)
	}

	return e.repo.FindTask(prefix)
}

// addAction handles the add command which creates a task.
func addAction(ctx *cli.Context, e *env) error {
	name := strings.Join(ctx.Args().Slice(), " ")
	category := ctx.String("category")

	if strings.TrimSpace(name) == "" {
		var err error

		name, category, err = promptTask(category)
		if err != nil {
			return err
		}
	}

	task, err := e.repo.CreateTask(ctx.Context, name, strings.TrimSpace(category))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Added %s (%s)", ui.Highlight(task.Name), shortID(task.ID))

	return nil
}

// renameAction handles the rename command.
func renameAction(ctx *cli.Context, e *env) error {
	task, err := taskArg(ctx, e)
	if err != nil {
		return err
	}

	name := strings.Join(ctx.Args().Tail(), " ")

	task, err = e.repo.UpdateTask(ctx.Context, task.ID, repository.TaskUpdate{
		Name: &name,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Renamed %s to %s", shortID(task.ID), ui.Highlight(task.Name))

	return nil
}

// categorizeAction handles the categorize command. An omitted category
// clears it.
func categorizeAction(ctx *cli.Context, e *env) error {
	task, err := taskArg(ctx, e)
	if err != nil {
		return err
	}

	category := strings.TrimSpace(strings.Join(ctx.Args().Tail(), " "))

	task, err = e.repo.UpdateTask(ctx.Context, task.ID, repository.TaskUpdate{
		Category: &category,
	})
	if err != nil {
		return err
	}

	if task.Category == "" {
		pterm.Success.Printfln("Removed the category of %s", ui.Highlight(task.Name))
		return nil
	}

	pterm.Success.Printfln("Moved %s to %s", ui.Highlight(task.Name), ui.Cyan(task.Category))

	return nil
}

// archiveAction handles the archive command. A running timer is stopped
// first so its session is kept.
func archiveAction(ctx *cli.Context, e *env) error {
	task, err := taskArg(ctx, e)
	if err != nil {
		return err
	}

	if _, ok := e.repo.OpenSession(task.ID); ok {
		if _, err := e.engine.Stop(ctx.Context, task.ID); err != nil {
			return err
		}
	}

	if err := e.repo.ArchiveTask(ctx.Context, task.ID); err != nil {
		return err
	}

	pterm.Success.Printfln("Archived %s", ui.Highlight(task.Name))

	return nil
}

// unarchiveAction handles the unarchive command.
func unarchiveAction(ctx *cli.Context, e *env) error {
	task, err := taskArg(ctx, e)
	if err != nil {
		return err
	}

	if err := e.repo.UnarchiveTask(ctx.Context, task.ID); err != nil {
		return err
	}

	pterm.Success.Printfln("Restored %s", ui.Highlight(task.Name))

	return nil
}

// refreshAction handles the refresh command which reloads both tables from
// the store.
func refreshAction(ctx *cli.Context, e *env) error {
	if err := e.repo.Refresh(ctx.Context); err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Loaded %d tasks and %d sessions",
		len(e.repo.ListTasks("")),
		len(e.repo.Sessions()),
	)

	return nil
}
