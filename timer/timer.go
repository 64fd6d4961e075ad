// Package timer starts and stops the timers of tasks. A task is either idle
// or running; a running task has exactly one session without an end time.
package timer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/tempo/internal/models"
)

// Store is the part of the repository the engine depends on.
type Store interface {
	Task(id string) (models.Task, error)
	OpenSession(taskID string) (models.Session, bool)
	Running() []models.Session
	SessionsFor(taskID string) []models.Session
	NewSessionID() string
	AppendSession(ctx context.Context, sess models.Session) error
	FinalizeSession(ctx context.Context, sess models.Session) error
}

// Hook runs after a session is stopped.
type Hook func(ctx context.Context, task models.Task, sess models.Session)

// Engine applies start and stop transitions. Transitions are serialised.
type Engine struct {
	store     Store
	now       func() time.Time
	hooks     []Hook
	exclusive bool
	mu        sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to timestamp transitions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithExclusive makes starting a timer stop every other running timer first.
func WithExclusive(exclusive bool) Option {
	return func(e *Engine) {
		e.exclusive = exclusive
	}
}

// WithHooks registers hooks that run after every stop.
func WithHooks(hooks ...Hook) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks...)
	}
}

// New returns an engine operating on s.
func New(s Store, opts ...Option) *Engine {
	e := &Engine{
		store: s,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// timestamps are stored with second precision
func (e *Engine) clock() time.Time {
	return e.now().UTC().Truncate(time.Second)
}

// Start starts the timer of a task now.
func (e *Engine) Start(ctx context.Context, taskID string) (models.Session, error) {
	return e.StartAt(ctx, taskID, time.Time{})
}

// StartAt starts the timer of a task at the given time, which may lie in
// the past. A zero time means now.
func (e *Engine) StartAt(
	ctx context.Context,
	taskID string,
	at time.Time,
) (models.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.store.Task(taskID)
	if err != nil {
		return models.Session{}, err
	}

	if task.Archived() {
		return models.Session{}, ErrTaskArchived.Fmt(task.Name)
	}

	if _, ok := e.store.OpenSession(taskID); ok {
		return models.Session{}, ErrAlreadyRunning.Fmt(task.Name)
	}

	now := e.clock()

	start := now
	if !at.IsZero() {
		start = at.UTC().Truncate(time.Second)
	}

	if start.After(now) {
		return models.Session{}, errStartInFuture.Fmt(start.Format(time.RFC3339))
	}

	if e.exclusive {
		for _, s := range e.store.Running() {
			if _, err := e.stop(ctx, s.TaskID); err != nil {
				return models.Session{}, err
			}
		}
	}

	sess := models.Session{
		ID:        e.store.NewSessionID(),
		TaskID:    taskID,
		StartTime: start,
	}

	if err := e.store.AppendSession(ctx, sess); err != nil {
		return models.Session{}, err
	}

	slog.Info(
		"timer started",
		slog.String("task_id", taskID),
		slog.String("session_id", sess.ID),
		slog.Time("start_time", start),
	)

	return sess, nil
}

// Stop stops the running timer of a task and records the session.
func (e *Engine) Stop(ctx context.Context, taskID string) (models.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stop(ctx, taskID)
}

func (e *Engine) stop(ctx context.Context, taskID string) (models.Session, error) {
	task, taskErr := e.store.Task(taskID)

	sess, ok := e.store.OpenSession(taskID)
	if !ok {
		if taskErr != nil {
			return models.Session{}, taskErr
		}

		return models.Session{}, ErrNoActiveSession.Fmt(task.Name)
	}

	// the task row may have been removed from the sheet by hand
	if taskErr != nil {
		slog.Warn(
			"stopping session of unknown task",
			slog.String("task_id", taskID),
			slog.String("session_id", sess.ID),
		)

		task = models.Task{ID: taskID, Name: taskID}
	}

	sess.Finish(e.clock())

	if err := e.store.FinalizeSession(ctx, sess); err != nil {
		return models.Session{}, err
	}

	slog.Info(
		"timer stopped",
		slog.String("task_id", taskID),
		slog.String("session_id", sess.ID),
		slog.Duration("duration", sess.Duration),
	)

	for _, h := range e.hooks {
		h(ctx, task, sess)
	}

	return sess, nil
}

// Toggle stops the timer of a task if it is running and starts it otherwise.
// The boolean reports whether the timer is running afterwards.
func (e *Engine) Toggle(
	ctx context.Context,
	taskID string,
) (models.Session, bool, error) {
	if _, ok := e.store.OpenSession(taskID); ok {
		sess, err := e.Stop(ctx, taskID)
		return sess, false, err
	}

	sess, err := e.Start(ctx, taskID)

	return sess, err == nil, err
}

// Running returns every running session.
func (e *Engine) Running() []models.Session {
	return e.store.Running()
}

// Elapsed returns how long the timer of a task has been running at now, or
// zero if it is idle.
func (e *Engine) Elapsed(taskID string, now time.Time) time.Duration {
	sess, ok := e.store.OpenSession(taskID)
	if !ok {
		return 0
	}

	return sess.Elapsed(now)
}

// Total returns the time recorded against a task including the running
// session measured up to now.
func (e *Engine) Total(taskID string, now time.Time) time.Duration {
	var total time.Duration

	for _, s := range e.store.SessionsFor(taskID) {
		total += s.Elapsed(now)
	}

	return total
}
