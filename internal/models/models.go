// Package models defines the tasks and sessions tracked by tempo and their
// tabular row representation
package models

import (
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	Active   Status = "active"
	Archived Status = "archived"
)

// Valid reports whether s is a known task status.
func (s Status) Valid() bool {
	return s == Active || s == Archived
}

// Task is something time can be tracked against.
type Task struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Status    Status    `json:"status"`
}

// Archived reports whether the task has been archived.
func (t *Task) Archived() bool {
	return t.Status == Archived
}

// Session is a single timed interval of one task. EndTime is zero while the
// session is running.
type Session struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	ID        string        `json:"id"`
	TaskID    string        `json:"task_id"`
	Duration  time.Duration `json:"duration"`
}

// Running reports whether the session has not been stopped yet.
func (s *Session) Running() bool {
	return s.EndTime.IsZero()
}

// Elapsed returns the time covered by the session. For a running session it
// is measured up to now. Negative spans caused by clock skew count as zero.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if !s.Running() {
		return s.Duration
	}

	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}

	return d
}

// Finish stops the session at end and fixes its duration.
func (s *Session) Finish(end time.Time) {
	s.EndTime = end

	s.Duration = end.Sub(s.StartTime)
	if s.Duration < 0 {
		s.Duration = 0
	}
}
