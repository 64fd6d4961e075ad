package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/timeutil"
	"github.com/ayoisaiah/tempo/view"
)

var taskTableHeader = []string{"#", "ID", "NAME", "CATEGORY", "STATUS", "TOTAL"}

// TimerStatus colours the timer state of a task.
func TimerStatus(s view.Status) string {
	switch s {
	case view.Running:
		return Green(s)
	case view.Paused:
		return Yellow(s)
	default:
		return string(s)
	}
}

// PrintTaskTable writes the rows of m as a boxed table with a closing total
// row. tasks must be in the order m was built from. IDs are cut to idWidth
// characters.
func PrintTaskTable(w io.Writer, tasks []models.Task, m view.Model, idWidth int) {
	data := make([][]string, 0, len(m.Rows)+2)
	data = append(data, taskTableHeader)

	for i, r := range m.Rows {
		name := r.Name
		if i < len(tasks) && tasks[i].Archived() {
			name += Red(" (archived)")
		}

		id := r.ID
		if idWidth > 0 && len(id) > idWidth {
			id = id[:idWidth]
		}

		data = append(data, []string{
			strconv.Itoa(r.Index),
			id,
			name,
			r.Category,
			TimerStatus(r.Status),
			r.Clock(),
		})
	}

	data = append(data, []string{
		"", "", "", "", Highlight("TOTAL"), Highlight(timeutil.Clock(m.Total)),
	})

	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(w, str)
}
