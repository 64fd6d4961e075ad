package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/ayoisaiah/tempo/internal/apperr"
)

// Row is a single record of a table in the sheet store.
type Row []string

var (
	// TaskHeader lists the columns of the Tasks table.
	TaskHeader = Row{"id", "name", "category", "status", "created_at"}
	// SessionHeader lists the columns of the Sessions table.
	SessionHeader = Row{"id", "task_id", "start_time", "end_time", "duration"}
)

var (
	errRowLength = &apperr.Error{
		Message: "%s row has %d columns, expected %d",
	}

	errRowField = &apperr.Error{
		Message: "%s row %q: invalid %s",
	}
)

// ID returns the value of the id column.
func (r Row) ID() string {
	if len(r) == 0 {
		return ""
	}

	return strings.TrimSpace(r[0])
}

func (r Row) col(i int) string {
	if i >= len(r) {
		return ""
	}

	return strings.TrimSpace(r[i])
}

// pad extends rows that the sheet returned without trailing empty cells.
func pad(r Row, n int) Row {
	for len(r) < n {
		r = append(r, "")
	}

	return r
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.RFC3339, s)
}

// ToRow converts a task to its row representation.
func (t *Task) ToRow() Row {
	return Row{
		t.ID,
		t.Name,
		t.Category,
		string(t.Status),
		formatTime(t.CreatedAt),
	}
}

// TaskFromRow parses a row of the Tasks table.
func TaskFromRow(r Row) (Task, error) {
	if len(r) > len(TaskHeader) {
		return Task{}, errRowLength.Fmt("task", len(r), len(TaskHeader))
	}

	r = pad(r, len(TaskHeader))

	id := r.col(0)
	if id == "" {
		return Task{}, errRowField.Fmt("task", id, "id")
	}

	status := Status(strings.ToLower(r.col(3)))
	if status == "" {
		status = Active
	}

	if !status.Valid() {
		return Task{}, errRowField.Fmt("task", id, "status")
	}

	created, err := parseTime(r.col(4))
	if err != nil {
		return Task{}, errRowField.Fmt("task", id, "created_at").Wrap(err)
	}

	return Task{
		ID:        id,
		Name:      r.col(1),
		Category:  r.col(2),
		Status:    status,
		CreatedAt: created,
	}, nil
}

// ToRow converts a session to its row representation. The duration column
// is empty while the session is running.
func (s *Session) ToRow() Row {
	duration := ""
	if !s.Running() {
		duration = strconv.FormatInt(int64(s.Duration/time.Second), 10)
	}

	return Row{
		s.ID,
		s.TaskID,
		formatTime(s.StartTime),
		formatTime(s.EndTime),
		duration,
	}
}

// SessionFromRow parses a row of the Sessions table. A missing duration is
// derived from the start and end times.
func SessionFromRow(r Row) (Session, error) {
	if len(r) > len(SessionHeader) {
		return Session{}, errRowLength.Fmt(
			"session",
			len(r),
			len(SessionHeader),
		)
	}

	r = pad(r, len(SessionHeader))

	sess := Session{
		ID:     r.col(0),
		TaskID: r.col(1),
	}

	if sess.ID == "" {
		return Session{}, errRowField.Fmt("session", sess.ID, "id")
	}

	if sess.TaskID == "" {
		return Session{}, errRowField.Fmt("session", sess.ID, "task_id")
	}

	var err error

	sess.StartTime, err = parseTime(r.col(2))
	if err != nil || sess.StartTime.IsZero() {
		return Session{}, errRowField.Fmt("session", sess.ID, "start_time")
	}

	sess.EndTime, err = parseTime(r.col(3))
	if err != nil {
		return Session{}, errRowField.Fmt("session", sess.ID, "end_time").
			Wrap(err)
	}

	if sess.Running() {
		return sess, nil
	}

	if d := r.col(4); d != "" {
		secs, err := strconv.ParseInt(d, 10, 64)
		if err != nil || secs < 0 {
			return Session{}, errRowField.Fmt("session", sess.ID, "duration")
		}

		sess.Duration = time.Duration(secs) * time.Second

		return sess, nil
	}

	sess.Finish(sess.EndTime)

	return sess, nil
}
