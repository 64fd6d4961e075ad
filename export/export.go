// Package export writes recorded sessions as CSV.
package export

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/ayoisaiah/tempo/internal/apperr"
	"github.com/ayoisaiah/tempo/internal/models"
)

var errWriteCSV = &apperr.Error{
	Message: "unable to write CSV export",
}

// Header is the first record of every export.
var Header = []string{
	"session_id",
	"task",
	"category",
	"start_time",
	"end_time",
	"duration_seconds",
}

// Write writes one record per finished session to w ordered by start time.
// Sessions of unknown tasks keep an empty task name and category.
func Write(w io.Writer, tasks []models.Task, sessions []models.Session) error {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	done := make([]models.Session, 0, len(sessions))

	for i := range sessions {
		if !sessions[i].Running() {
			done = append(done, sessions[i])
		}
	}

	slices.SortStableFunc(done, func(a, b models.Session) int {
		return a.StartTime.Compare(b.StartTime)
	})

	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return errWriteCSV.Wrap(err)
	}

	for _, s := range done {
		task := byID[s.TaskID]

		record := []string{
			s.ID,
			task.Name,
			task.Category,
			s.StartTime.UTC().Format(time.RFC3339),
			s.EndTime.UTC().Format(time.RFC3339),
			strconv.FormatInt(int64(s.Duration/time.Second), 10),
		}

		if err := cw.Write(record); err != nil {
			return errWriteCSV.Wrap(err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return errWriteCSV.Wrap(err)
	}

	return nil
}
