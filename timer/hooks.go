package timer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/timeutil"
)

var notify = beeep.Notify

// NotifyHook shows a desktop notification when a session is recorded.
func NotifyHook() Hook {
	return func(_ context.Context, task models.Task, sess models.Session) {
		msg := fmt.Sprintf(
			"%s recorded for %s",
			timeutil.Clock(sess.Duration),
			task.Name,
		)

		if err := notify("Timer stopped", msg, ""); err != nil {
			slog.Error("desktop notification failed", slog.Any("error", err))
		}
	}
}

// CommandHook runs the given shell command after each session. The task and
// session are exposed to the command through TEMPO_* environment variables.
func CommandHook(sessionCmd string) (Hook, error) {
	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return nil, errSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	return func(ctx context.Context, task models.Task, sess models.Session) {
		cmd := exec.CommandContext(ctx, name, args...)

		cmd.Env = append(os.Environ(),
			"TEMPO_TASK="+task.Name,
			"TEMPO_CATEGORY="+task.Category,
			"TEMPO_SESSION_ID="+sess.ID,
			fmt.Sprintf("TEMPO_DURATION=%d", int64(sess.Duration.Seconds())),
		)

		if out, err := cmd.CombinedOutput(); err != nil {
			slog.Error(
				"stop command failed",
				slog.String("cmd", sessionCmd),
				slog.String("output", string(out)),
				slog.Any("error", err),
			)
		}
	}, nil
}
