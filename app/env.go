package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tempo/internal/config"
	"github.com/ayoisaiah/tempo/internal/logging"
	"github.com/ayoisaiah/tempo/internal/pathutil"
	"github.com/ayoisaiah/tempo/internal/ui"
	"github.com/ayoisaiah/tempo/repository"
	"github.com/ayoisaiah/tempo/store"
	"github.com/ayoisaiah/tempo/timer"
)

// env holds everything a command needs to act on tasks and timers.
type env struct {
	cfg     *config.Config
	db      store.DB
	repo    *repository.Repository
	engine  *timer.Engine
	now     func() time.Time
	closers []io.Closer
}

func (e *env) Close() error {
	var errs []error

	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}

	return errors.Join(errs...)
}

// newEnv is replaced in tests.
var newEnv = loadEnv

// loadEnv reads the config file, installs the logger and connects to the
// configured store.
func loadEnv(ctx *cli.Context) (*env, error) {
	if err := pathutil.Initialize(); err != nil {
		return nil, err
	}

	paths := pathutil.Must()

	cfg, err := config.New(
		config.WithPromptConfig(paths.ConfigFilePath()),
		config.WithViperConfig(paths.ConfigFilePath()),
		config.WithDefaultPaths(paths.DBFilePath(), paths.LogFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	logCloser := logging.Setup(cfg.Log)

	slog.DebugContext(ctx.Context, "config loaded", slog.String("config", cfg.String()))

	db, err := openStore(ctx.Context, cfg)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}

	e, err := buildEnv(ctx.Context, cfg, db, time.Now)
	if err != nil {
		_ = db.Close()
		_ = logCloser.Close()

		return nil, err
	}

	e.closers = append([]io.Closer{logCloser}, e.closers...)

	return e, nil
}

// openStore connects to the backend named in the config. Dry runs never
// touch a real store.
func openStore(ctx context.Context, cfg *config.Config) (store.DB, error) {
	if cfg.CLI.DryRun {
		return store.NewMemory(), nil
	}

	if cfg.Store.Backend == config.BackendSheets {
		c, err := store.NewSheetsClient(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	c, err := store.NewBoltClient(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// buildEnv loads the repository from db and sets up the timer engine.
func buildEnv(
	ctx context.Context,
	cfg *config.Config,
	db store.DB,
	now func() time.Time,
) (*env, error) {
	repo, err := repository.New(ctx, db, repository.WithClock(now))
	if err != nil {
		return nil, err
	}

	var hooks []timer.Hook

	if cfg.Notifications.Enabled {
		hooks = append(hooks, timer.NotifyHook())
	}

	if cfg.Settings.StopCmd != "" {
		hook, err := timer.CommandHook(cfg.Settings.StopCmd)
		if err != nil {
			return nil, err
		}

		if hook != nil {
			hooks = append(hooks, hook)
		}
	}

	engine := timer.New(
		repo,
		timer.WithClock(now),
		timer.WithExclusive(cfg.Settings.Exclusive),
		timer.WithHooks(hooks...),
	)

	return &env{
		cfg:     cfg,
		db:      db,
		repo:    repo,
		engine:  engine,
		now:     now,
		closers: []io.Closer{db},
	}, nil
}

// withEnv wraps an action that needs the store.
func withEnv(action func(*cli.Context, *env) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		e, err := newEnv(ctx)
		if err != nil {
			return err
		}

		defer func() {
			if err := e.Close(); err != nil {
				slog.ErrorContext(ctx.Context, "close failed", slog.Any("error", err))
			}
		}()

		return action(ctx, e)
	}
}
