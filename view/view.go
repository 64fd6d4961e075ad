// Package view derives the rows shown for each task from the current tasks
// and sessions. It has no side effects; callers rebuild the model after
// every mutation and on every tick.
package view

import (
	"time"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/timeutil"
)

// Status describes the timer state of a task.
type Status string

const (
	// Running tasks have an open session.
	Running Status = "Running"
	// Paused tasks have recorded time but no open session.
	Paused Status = "Paused"
	// Pending tasks have never been timed.
	Pending Status = "Pending"
)

type Row struct {
	Started  time.Time
	ID       string
	Name     string
	Category string
	Status   Status
	Index    int
	Total    time.Duration
	Elapsed  time.Duration
}

// Clock returns the total as HH:MM:SS.
func (r Row) Clock() string {
	return timeutil.Clock(r.Total)
}

// Model is the derived state of the task list.
type Model struct {
	Rows  []Row
	Total time.Duration
}

// Running returns the rows whose timers are running.
func (m Model) Running() []Row {
	var out []Row

	for _, r := range m.Rows {
		if r.Status == Running {
			out = append(out, r)
		}
	}

	return out
}

// Build derives one row per task in the given order. Totals include the
// live elapsed time of running sessions measured at now.
func Build(tasks []models.Task, sessions []models.Session, now time.Time) Model {
	type tally struct {
		started time.Time
		total   time.Duration
		elapsed time.Duration
		count   int
		open    bool
	}

	tallies := make(map[string]*tally, len(tasks))
	for i := range tasks {
		tallies[tasks[i].ID] = &tally{}
	}

	for i := range sessions {
		s := sessions[i]

		t, ok := tallies[s.TaskID]
		if !ok {
			continue
		}

		d := s.Elapsed(now)

		t.total += d
		t.count++

		if s.Running() {
			t.open = true
			t.started = s.StartTime
			t.elapsed = d
		}
	}

	m := Model{Rows: make([]Row, 0, len(tasks))}

	for i := range tasks {
		task := tasks[i]
		t := tallies[task.ID]

		status := Pending

		switch {
		case t.open:
			status = Running
		case t.count > 0:
			status = Paused
		}

		m.Rows = append(m.Rows, Row{
			Index:    i + 1,
			ID:       task.ID,
			Name:     task.Name,
			Category: task.Category,
			Status:   status,
			Total:    t.total,
			Elapsed:  t.elapsed,
			Started:  t.started,
		})

		m.Total += t.total
	}

	return m
}
