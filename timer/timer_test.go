package timer_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/testutil"
	"github.com/ayoisaiah/tempo/repository"
	"github.com/ayoisaiah/tempo/stats"
	"github.com/ayoisaiah/tempo/store"
	"github.com/ayoisaiah/tempo/timer"
)

func setup(
	t *testing.T,
	opts ...timer.Option,
) (*repository.Repository, *timer.Engine, *testutil.Clock) {
	t.Helper()

	return setupWithStore(t, store.NewMemory(), opts...)
}

func setupWithStore(
	t *testing.T,
	db store.DB,
	opts ...timer.Option,
) (*repository.Repository, *timer.Engine, *testutil.Clock) {
	t.Helper()

	c := &testutil.Clock{T: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}

	repo, err := repository.New(
		context.Background(),
		db,
		repository.WithClock(c.Now),
		repository.WithIDs(ids),
	)
	require.NoError(t, err)

	opts = append([]timer.Option{timer.WithClock(c.Now)}, opts...)

	return repo, timer.New(repo, opts...), c
}

func TestStartStopOneHour(t *testing.T) {
	repo, engine, c := setup(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	sess, err := engine.Start(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, sess.Running())

	c.Advance(time.Hour)

	assert.Equal(t, time.Hour, engine.Elapsed(task.ID, c.Now()))

	sess, err = engine.Stop(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 3600*time.Second, sess.Duration)
	assert.False(t, sess.Running())

	assert.Equal(t, map[string]time.Duration{
		"Docs": 3600 * time.Second,
	}, stats.ByCategory(repo.Sessions(), repo.ListTasks("")))
}

func TestStartTwice(t *testing.T) {
	repo, engine, c := setup(t, timer.WithExclusive(true))
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	first, err := engine.Start(ctx, task.ID)
	require.NoError(t, err)

	c.Advance(5 * time.Minute)

	_, err = engine.Start(ctx, task.ID)
	assert.ErrorIs(t, err, timer.ErrAlreadyRunning)

	open, ok := repo.OpenSession(task.ID)
	require.True(t, ok)
	assert.Equal(t, first.StartTime, open.StartTime)
	assert.Len(t, repo.Sessions(), 1)
}

func TestStopIdleTask(t *testing.T) {
	repo, engine, _ := setup(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	_, err = engine.Stop(ctx, task.ID)
	assert.ErrorIs(t, err, timer.ErrNoActiveSession)

	_, err = engine.Stop(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestStopImmediatelyAfterStart(t *testing.T) {
	repo, engine, _ := setup(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "")
	require.NoError(t, err)

	_, err = engine.Start(ctx, task.ID)
	require.NoError(t, err)

	sess, err := engine.Stop(ctx, task.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sess.Duration, time.Duration(0))
}

func TestStopClockSkew(t *testing.T) {
	db := store.NewMemory()
	repo, engine, c := setupWithStore(t, db)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	_, err = engine.Start(ctx, task.ID)
	require.NoError(t, err)

	c.Advance(-time.Hour)

	sess, err := engine.Stop(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), sess.Duration)
	assert.False(t, sess.Running())

	rows, err := db.ReadAll(ctx, store.Sessions)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0", rows[0][4])

	stored, err := models.SessionFromRow(rows[0])
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), stored.Duration)
}

// seedOrphan stores task t1 and a session started at 08:30 for a task whose
// row no longer exists.
func seedOrphan(t *testing.T) *store.Memory {
	t.Helper()

	ctx := context.Background()
	db := store.NewMemory()

	task := models.Task{
		ID:        "t1",
		Name:      "Writing",
		Category:  "Docs",
		Status:    models.Active,
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, db.Append(ctx, store.Tasks, task.ToRow()))
	require.NoError(t, db.Append(ctx, store.Sessions, models.Row{
		"s0", "gone", "2024-03-04T08:30:00Z", "", "",
	}))

	return db
}

func TestExclusiveStartStopsSessionOfMissingTask(t *testing.T) {
	repo, engine, _ := setupWithStore(t, seedOrphan(t), timer.WithExclusive(true))
	ctx := context.Background()

	require.Len(t, engine.Running(), 1)

	_, err := engine.Start(ctx, "t1")
	require.NoError(t, err)

	running := engine.Running()
	require.Len(t, running, 1)
	assert.Equal(t, "t1", running[0].TaskID)

	orphan := repo.SessionsFor("gone")
	require.Len(t, orphan, 1)
	assert.False(t, orphan[0].Running())
	assert.Equal(t, 30*time.Minute, orphan[0].Duration)
}

func TestStopSessionOfMissingTask(t *testing.T) {
	repo, _, _ := setupWithStore(t, seedOrphan(t))
	ctx := context.Background()

	var got models.Task

	engine := timer.New(repo,
		timer.WithClock(func() time.Time {
			return time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
		}),
		timer.WithHooks(func(_ context.Context, task models.Task, _ models.Session) {
			got = task
		}),
	)

	sess, err := engine.Stop(ctx, "gone")
	require.NoError(t, err)
	assert.Equal(t, "s0", sess.ID)
	assert.Equal(t, 30*time.Minute, sess.Duration)
	assert.Equal(t, "gone", got.ID)
	assert.Empty(t, engine.Running())

	_, err = engine.Stop(ctx, "gone")
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestNoTwoOpenSessions(t *testing.T) {
	repo, engine, c := setup(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	steps := []func() error{
		func() error { _, err := engine.Start(ctx, task.ID); return err },
		func() error { _, err := engine.Start(ctx, task.ID); return err },
		func() error { _, err := engine.Stop(ctx, task.ID); return err },
		func() error { _, err := engine.Stop(ctx, task.ID); return err },
		func() error { _, _, err := engine.Toggle(ctx, task.ID); return err },
		func() error { _, err := engine.Start(ctx, task.ID); return err },
		func() error { _, _, err := engine.Toggle(ctx, task.ID); return err },
		func() error { _, _, err := engine.Toggle(ctx, task.ID); return err },
	}

	for _, step := range steps {
		_ = step()

		c.Advance(time.Minute)

		open := 0

		for _, s := range repo.SessionsFor(task.ID) {
			if s.Running() {
				open++
			}
		}

		assert.LessOrEqual(t, open, 1)
	}
}

func TestExclusive(t *testing.T) {
	for _, exclusive := range []bool{true, false} {
		t.Run(fmt.Sprintf("exclusive=%t", exclusive), func(t *testing.T) {
			repo, engine, c := setup(t, timer.WithExclusive(exclusive))
			ctx := context.Background()

			a, err := repo.CreateTask(ctx, "Writing", "Docs")
			require.NoError(t, err)

			b, err := repo.CreateTask(ctx, "Review", "Docs")
			require.NoError(t, err)

			_, err = engine.Start(ctx, a.ID)
			require.NoError(t, err)

			c.Advance(10 * time.Minute)

			_, err = engine.Start(ctx, b.ID)
			require.NoError(t, err)

			if exclusive {
				require.Len(t, engine.Running(), 1)
				assert.Equal(t, b.ID, engine.Running()[0].TaskID)
				assert.Equal(t, 10*time.Minute, engine.Total(a.ID, c.Now()))
			} else {
				assert.Len(t, engine.Running(), 2)
			}
		})
	}
}

func TestStartAt(t *testing.T) {
	repo, engine, c := setup(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	sess, err := engine.StartAt(ctx, task.ID, c.Now().Add(-20*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, c.Now().Add(-20*time.Minute), sess.StartTime)
	assert.Equal(t, 20*time.Minute, engine.Elapsed(task.ID, c.Now()))

	_, err = engine.Stop(ctx, task.ID)
	require.NoError(t, err)

	_, err = engine.StartAt(ctx, task.ID, c.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Empty(t, engine.Running())
}

func TestToggleAndTotal(t *testing.T) {
	repo, engine, c := setup(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	_, running, err := engine.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, running)

	c.Advance(30 * time.Minute)

	_, running, err = engine.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, running)

	c.Advance(time.Hour)

	_, _, err = engine.Toggle(ctx, task.ID)
	require.NoError(t, err)

	c.Advance(15 * time.Minute)

	assert.Equal(t, 45*time.Minute, engine.Total(task.ID, c.Now()))
	assert.Equal(t, 15*time.Minute, engine.Elapsed(task.ID, c.Now()))
}

func TestArchivedTaskCannotStart(t *testing.T) {
	repo, engine, _ := setup(t)
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)
	require.NoError(t, repo.ArchiveTask(ctx, task.ID))

	_, err = engine.Start(ctx, task.ID)
	assert.ErrorIs(t, err, timer.ErrTaskArchived)
}

func TestHooksRunAfterStop(t *testing.T) {
	var got []models.Session

	hook := func(_ context.Context, _ models.Task, sess models.Session) {
		got = append(got, sess)
	}

	repo, engine, c := setup(t, timer.WithHooks(hook))
	ctx := context.Background()

	task, err := repo.CreateTask(ctx, "Writing", "Docs")
	require.NoError(t, err)

	_, err = engine.Start(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	c.Advance(time.Minute)

	sess, err := engine.Stop(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Session{sess}, got)
}
