package app

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tempo/internal/config"
	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/ui"
	"github.com/ayoisaiah/tempo/view"
)

const noTasksMsg = "No tasks found. Add one with `tempo add NAME`"

type listItem struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Status       models.Status `json:"status"`
	Timer        view.Status   `json:"timer"`
	TotalSeconds int64         `json:"total_seconds"`
}

// listAction handles the list command and prints the tasks with their timer
// status and recorded time.
func listAction(ctx *cli.Context, e *env) error {
	filter := models.Active

	switch {
	case ctx.Bool("all"):
		filter = ""
	case ctx.Bool("archived"):
		filter = models.Archived
	}

	tasks := e.repo.ListTasks(filter)
	m := view.Build(tasks, e.repo.Sessions(), e.now())

	if ctx.Bool("json") {
		items := make([]listItem, 0, len(tasks))

		for i, r := range m.Rows {
			items = append(items, listItem{
				ID:           r.ID,
				Name:         r.Name,
				Category:     r.Category,
				Status:       tasks[i].Status,
				Timer:        r.Status,
				TotalSeconds: int64(r.Total.Seconds()),
			})
		}

		b, err := json.Marshal(items)
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	if len(tasks) == 0 {
		pterm.Info.Println(noTasksMsg)
		return nil
	}

	ui.PrintTaskTable(config.Stdout, tasks, m, shortIDLen)

	return nil
}
