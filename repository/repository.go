// Package repository mirrors the Tasks and Sessions tables of the sheet store
// in memory. Every mutation is written to the store before the mirror is
// updated, so the mirror never shows unsynced changes as persisted.
package repository

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/store"
)

// TaskUpdate holds the task fields to change. Nil fields are left as is.
type TaskUpdate struct {
	Name     *string
	Category *string
}

// Repository is the in-memory mirror of the sheet store.
type Repository struct {
	db       store.DB
	now      func() time.Time
	newID    func() string
	tasks    []models.Task
	sessions []models.Session
	mu       sync.RWMutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDs sets the generator used for new task and session ids.
func WithIDs(newID func() string) Option {
	return func(r *Repository) {
		r.newID = newID
	}
}

// New creates a Repository backed by db and loads both tables.
func New(ctx context.Context, db store.DB, opts ...Option) (*Repository, error) {
	r := &Repository{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.Refresh(ctx); err != nil {
		return nil, err
	}

	return r, nil
}

// Refresh discards the mirror and reloads both tables from the store. Rows
// that cannot be decoded are logged and skipped.
func (r *Repository) Refresh(ctx context.Context) error {
	taskRows, err := r.db.ReadAll(ctx, store.Tasks)
	if err != nil {
		return ErrSync.Fmt("read", store.Tasks).Wrap(err)
	}

	sessRows, err := r.db.ReadAll(ctx, store.Sessions)
	if err != nil {
		return ErrSync.Fmt("read", store.Sessions).Wrap(err)
	}

	tasks := make([]models.Task, 0, len(taskRows))

	for _, row := range taskRows {
		t, err := models.TaskFromRow(row)
		if err != nil {
			slog.Warn("skipping task row", slog.Any("error", err))
			continue
		}

		tasks = append(tasks, t)
	}

	sessions := make([]models.Session, 0, len(sessRows))

	for _, row := range sessRows {
		s, err := models.SessionFromRow(row)
		if err != nil {
			slog.Warn("skipping session row", slog.Any("error", err))
			continue
		}

		sessions = append(sessions, s)
	}

	slices.SortStableFunc(sessions, func(a, b models.Session) int {
		return a.StartTime.Compare(b.StartTime)
	})

	r.mu.Lock()
	r.tasks = tasks
	r.sessions = sessions
	r.mu.Unlock()

	slog.Debug(
		"mirror refreshed",
		slog.Int("tasks", len(tasks)),
		slog.Int("sessions", len(sessions)),
	)

	return nil
}

// ListTasks returns the tasks with the given status, or every task when
// status is empty, in natural order of their names.
func (r *Repository) ListTasks(status models.Status) []models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, 0, len(r.tasks))

	for _, t := range r.tasks {
		if status == "" || t.Status == status {
			tasks = append(tasks, t)
		}
	}

	slices.SortStableFunc(tasks, func(a, b models.Task) int {
		if a.Name != b.Name {
			if natural.Less(a.Name, b.Name) {
				return -1
			}

			return 1
		}

		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return tasks
}

// Task returns the task with the given id.
func (r *Repository) Task(id string) (models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.taskIndex(id)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound.Fmt(id)
	}

	return r.tasks[i], nil
}

// FindTask resolves a full id or a unique id prefix.
func (r *Repository) FindTask(prefix string) (models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix = strings.TrimSpace(prefix)

	var matches []models.Task

	for _, t := range r.tasks {
		if t.ID == prefix {
			return t, nil
		}

		if prefix != "" && strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return models.Task{}, ErrTaskNotFound.Fmt(prefix)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, ErrAmbiguousID.Fmt(prefix, len(matches))
	}
}

// CreateTask adds an active task.
func (r *Repository) CreateTask(
	ctx context.Context,
	name, category string,
) (models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Task{}, ErrEmptyName
	}

	t := models.Task{
		ID:        r.newID(),
		Name:      name,
		Category:  strings.TrimSpace(category),
		Status:    models.Active,
		CreatedAt: r.now().UTC().Truncate(time.Second),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Append(ctx, store.Tasks, t.ToRow()); err != nil {
		return models.Task{}, ErrSync.Fmt("create task", t.ID).Wrap(err)
	}

	r.tasks = append(r.tasks, t)

	slog.Info(
		"task created",
		slog.String("id", t.ID),
		slog.String("category", t.Category),
	)

	return t, nil
}

// UpdateTask renames or re-categorises a task.
func (r *Repository) UpdateTask(
	ctx context.Context,
	id string,
	upd TaskUpdate,
) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.taskIndex(id)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound.Fmt(id)
	}

	t := r.tasks[i]

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return models.Task{}, ErrEmptyName
		}

		t.Name = name
	}

	if upd.Category != nil {
		t.Category = strings.TrimSpace(*upd.Category)
	}

	if t == r.tasks[i] {
		return t, nil
	}

	return t, r.saveTask(ctx, i, t, "update task")
}

// ArchiveTask hides a task from the active list. Its sessions are kept.
func (r *Repository) ArchiveTask(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, models.Archived)
}

// UnarchiveTask makes an archived task active again.
func (r *Repository) UnarchiveTask(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, models.Active)
}

func (r *Repository) setStatus(
	ctx context.Context,
	id string,
	status models.Status,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.taskIndex(id)
	if i < 0 {
		return ErrTaskNotFound.Fmt(id)
	}

	t := r.tasks[i]
	if t.Status == status {
		return nil
	}

	t.Status = status

	return r.saveTask(ctx, i, t, "set status")
}

// saveTask writes t to the store and then replaces the mirrored task at i.
// The caller must hold the write lock.
func (r *Repository) saveTask(
	ctx context.Context,
	i int,
	t models.Task,
	action string,
) error {
	if err := r.db.Update(ctx, store.Tasks, t.ToRow()); err != nil {
		return ErrSync.Fmt(action, t.ID).Wrap(err)
	}

	r.tasks[i] = t

	slog.Info(
		"task saved",
		slog.String("action", action),
		slog.String("id", t.ID),
	)

	return nil
}

func (r *Repository) taskIndex(id string) int {
	return slices.IndexFunc(r.tasks, func(t models.Task) bool {
		return t.ID == id
	})
}

// Sessions returns every session ordered by start time.
func (r *Repository) Sessions() []models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.sessions)
}

// SessionsFor returns the sessions of one task ordered by start time.
func (r *Repository) SessionsFor(taskID string) []models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Session

	for _, s := range r.sessions {
		if s.TaskID == taskID {
			out = append(out, s)
		}
	}

	return out
}

// OpenSession returns the running session of a task, if any.
func (r *Repository) OpenSession(taskID string) (models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.TaskID == taskID && s.Running() {
			return s, true
		}
	}

	return models.Session{}, false
}

// Running returns every running session.
func (r *Repository) Running() []models.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Session

	for _, s := range r.sessions {
		if s.Running() {
			out = append(out, s)
		}
	}

	return out
}

// NewSessionID returns a fresh session id.
func (r *Repository) NewSessionID() string {
	return r.newID()
}

// AppendSession records a new session. The session must reference a known
// task.
func (r *Repository) AppendSession(
	ctx context.Context,
	sess models.Session,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taskIndex(sess.TaskID) < 0 {
		return ErrTaskNotFound.Fmt(sess.TaskID)
	}

	if err := r.db.Append(ctx, store.Sessions, sess.ToRow()); err != nil {
		return ErrSync.Fmt("append session", sess.ID).Wrap(err)
	}

	i := slices.IndexFunc(r.sessions, func(s models.Session) bool {
		return s.StartTime.After(sess.StartTime)
	})
	if i < 0 {
		i = len(r.sessions)
	}

	r.sessions = slices.Insert(r.sessions, i, sess)

	slog.Debug(
		"session appended",
		slog.String("id", sess.ID),
		slog.String("task_id", sess.TaskID),
	)

	return nil
}

// FinalizeSession overwrites a recorded session, typically to set its end
// time once the timer stops.
func (r *Repository) FinalizeSession(
	ctx context.Context,
	sess models.Session,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.sessions, func(s models.Session) bool {
		return s.ID == sess.ID
	})
	if i < 0 {
		return ErrSessionNotFound.Fmt(sess.ID)
	}

	if err := r.db.Update(ctx, store.Sessions, sess.ToRow()); err != nil {
		return ErrSync.Fmt("finalize session", sess.ID).Wrap(err)
	}

	r.sessions[i] = sess

	slog.Debug(
		"session finalized",
		slog.String("id", sess.ID),
		slog.Duration("duration", sess.Duration),
	)

	return nil
}
