package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/repository"
	"github.com/ayoisaiah/tempo/store"
)

var (
	now        = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	errNetwork = errors.New("network unreachable")
)

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

func newRepo(t *testing.T, db store.DB) *repository.Repository {
	t.Helper()

	r, err := repository.New(
		context.Background(),
		db,
		repository.WithClock(func() time.Time { return now }),
		repository.WithIDs(sequentialIDs()),
	)
	require.NoError(t, err)

	return r
}

func TestCreateTask(t *testing.T) {
	db := store.NewMemory()
	r := newRepo(t, db)
	ctx := context.Background()

	task, err := r.CreateTask(ctx, "  Writing ", "Docs")
	require.NoError(t, err)

	assert.Equal(t, models.Task{
		ID:        "id-01",
		Name:      "Writing",
		Category:  "Docs",
		Status:    models.Active,
		CreatedAt: now,
	}, task)

	rows, err := db.ReadAll(ctx, store.Tasks)
	require.NoError(t, err)
	assert.Equal(t, []models.Row{task.ToRow()}, rows)

	_, err = r.CreateTask(ctx, "   ", "Docs")
	assert.ErrorIs(t, err, repository.ErrEmptyName)
}

func TestListTasksNaturalOrder(t *testing.T) {
	r := newRepo(t, store.NewMemory())
	ctx := context.Background()

	for _, name := range []string{"Task 10", "Task 2", "Task 1"} {
		_, err := r.CreateTask(ctx, name, "")
		require.NoError(t, err)
	}

	var names []string
	for _, task := range r.ListTasks("") {
		names = append(names, task.Name)
	}

	assert.Equal(t, []string{"Task 1", "Task 2", "Task 10"}, names)
}

func TestArchiveTask(t *testing.T) {
	r := newRepo(t, store.NewMemory())
	ctx := context.Background()

	keep, err := r.CreateTask(ctx, "Review", "Docs")
	require.NoError(t, err)

	old, err := r.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	require.NoError(t, r.ArchiveTask(ctx, old.ID))
	// archiving twice is a no-op
	require.NoError(t, r.ArchiveTask(ctx, old.ID))

	active := r.ListTasks(models.Active)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)

	archived := r.ListTasks(models.Archived)
	require.Len(t, archived, 1)
	assert.Equal(t, old.ID, archived[0].ID)

	require.NoError(t, r.UnarchiveTask(ctx, old.ID))
	assert.Len(t, r.ListTasks(models.Active), 2)

	assert.ErrorIs(t, r.ArchiveTask(ctx, "nope"), repository.ErrTaskNotFound)
}

func TestUpdateTask(t *testing.T) {
	db := store.NewMemory()
	r := newRepo(t, db)
	ctx := context.Background()

	task, err := r.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	name, category := "Editing", "Blog"

	got, err := r.UpdateTask(ctx, task.ID, repository.TaskUpdate{
		Name:     &name,
		Category: &category,
	})
	require.NoError(t, err)
	assert.Equal(t, "Editing", got.Name)
	assert.Equal(t, "Blog", got.Category)

	// the store reflects the change after a reload
	require.NoError(t, r.Refresh(ctx))

	reloaded, err := r.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)

	empty := ""
	_, err = r.UpdateTask(ctx, task.ID, repository.TaskUpdate{Name: &empty})
	assert.ErrorIs(t, err, repository.ErrEmptyName)

	_, err = r.UpdateTask(ctx, "nope", repository.TaskUpdate{})
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestFailedWriteLeavesMirrorUntouched(t *testing.T) {
	db := store.NewMemory()
	r := newRepo(t, db)
	ctx := context.Background()

	task, err := r.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	db.Fail = func(store.Op, store.Table) error {
		return errNetwork
	}

	_, err = r.CreateTask(ctx, "Review", "Docs")
	assert.ErrorIs(t, err, repository.ErrSync)
	assert.ErrorIs(t, err, errNetwork)
	assert.Len(t, r.ListTasks(""), 1)

	err = r.ArchiveTask(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrSync)

	got, err := r.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Active, got.Status)

	err = r.AppendSession(ctx, models.Session{
		ID:        "s1",
		TaskID:    task.ID,
		StartTime: now,
	})
	assert.ErrorIs(t, err, repository.ErrSync)
	assert.Empty(t, r.Sessions())

	// a manual retry succeeds once the store is reachable again
	db.Fail = nil

	require.NoError(t, r.ArchiveTask(ctx, task.ID))
}

func TestRefreshFailure(t *testing.T) {
	db := store.NewMemory()
	db.Fail = func(store.Op, store.Table) error {
		return store.ErrAuth
	}

	_, err := repository.New(context.Background(), db)
	assert.ErrorIs(t, err, repository.ErrSync)
	assert.ErrorIs(t, err, store.ErrAuth)
}

func TestRefreshSkipsBadRows(t *testing.T) {
	db := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, db.Append(ctx, store.Tasks, models.Row{"t1", "Writing", "Docs"}))
	require.NoError(t, db.Append(ctx, store.Tasks, models.Row{"t2", "Bad", "", "deleted"}))
	require.NoError(t, db.Append(ctx, store.Sessions, models.Row{
		"s2", "t1", "2024-03-04T11:00:00Z", "2024-03-04T12:00:00Z", "3600",
	}))
	require.NoError(t, db.Append(ctx, store.Sessions, models.Row{
		"s1", "t1", "2024-03-04T09:00:00Z", "2024-03-04T10:00:00Z", "3600",
	}))
	require.NoError(t, db.Append(ctx, store.Sessions, models.Row{"s3", "t1", "soon"}))

	r := newRepo(t, db)

	assert.Len(t, r.ListTasks(""), 1)

	sessions := r.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "s1", sessions[0].ID, "sessions are ordered by start time")
}

func TestSessions(t *testing.T) {
	r := newRepo(t, store.NewMemory())
	ctx := context.Background()

	task, err := r.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	later := models.Session{ID: "s2", TaskID: task.ID, StartTime: now.Add(time.Hour)}
	earlier := models.Session{ID: "s1", TaskID: task.ID, StartTime: now}

	require.NoError(t, r.AppendSession(ctx, later))
	require.NoError(t, r.AppendSession(ctx, earlier))

	got := r.SessionsFor(task.ID)
	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)

	assert.Len(t, r.Running(), 2)

	open, ok := r.OpenSession(task.ID)
	require.True(t, ok)
	assert.Equal(t, "s1", open.ID)

	earlier.Finish(now.Add(30 * time.Minute))
	require.NoError(t, r.FinalizeSession(ctx, earlier))

	open, ok = r.OpenSession(task.ID)
	require.True(t, ok)
	assert.Equal(t, "s2", open.ID)

	err = r.AppendSession(ctx, models.Session{ID: "s3", TaskID: "ghost", StartTime: now})
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)

	err = r.FinalizeSession(ctx, models.Session{ID: "ghost"})
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestFindTask(t *testing.T) {
	r := newRepo(t, store.NewMemory())
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		_, err := r.CreateTask(ctx, fmt.Sprintf("Task %d", i), "")
		require.NoError(t, err)
	}

	got, err := r.FindTask("id-11")
	require.NoError(t, err)
	assert.Equal(t, "Task 10", got.Name)

	_, err = r.FindTask("id-0")
	assert.ErrorIs(t, err, repository.ErrAmbiguousID)

	_, err = r.FindTask("zzz")
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)

	_, err = r.FindTask("")
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}
