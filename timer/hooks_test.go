package timer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tempo/internal/models"
)

func TestNotifyHook(t *testing.T) {
	var title, msg string

	orig := notify

	notify = func(t, m, _ string) error {
		title, msg = t, m
		return errors.New("no notification daemon")
	}

	t.Cleanup(func() {
		notify = orig
	})

	NotifyHook()(
		context.Background(),
		models.Task{Name: "Writing"},
		models.Session{Duration: 90 * time.Minute},
	)

	assert.Equal(t, "Timer stopped", title)
	assert.Equal(t, "01:30:00 recorded for Writing", msg)
}

func TestCommandHook(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	out := filepath.Join(t.TempDir(), "out.txt")

	hook, err := CommandHook(`sh -c 'printf "%s %s" "$TEMPO_TASK" "$TEMPO_DURATION" > "$0"' ` + out)
	require.NoError(t, err)

	hook(
		context.Background(),
		models.Task{Name: "Writing", Category: "Docs"},
		models.Session{ID: "s1", Duration: time.Hour},
	)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Writing 3600", string(b))
}

func TestCommandHookErrors(t *testing.T) {
	_, err := CommandHook(`echo "unterminated`)
	assert.ErrorIs(t, err, errSessionCmd)

	hook, err := CommandHook("   ")
	require.NoError(t, err)
	assert.Nil(t, hook)
}
