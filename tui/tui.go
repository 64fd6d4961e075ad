// Package tui is the live task view. It re-renders every second and lets the
// user start and stop the timer of the selected task.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/view"
)

// Source provides the tasks and sessions to display.
type Source interface {
	ListTasks(status models.Status) []models.Task
	Sessions() []models.Session
	Refresh(ctx context.Context) error
}

// Toggler starts or stops the timer of a task.
type Toggler interface {
	Toggle(ctx context.Context, taskID string) (models.Session, bool, error)
}

type tickMsg time.Time

// Model is the bubbletea model of the watch view.
type Model struct {
	ctx    context.Context
	src    Source
	timer  Toggler
	now    func() time.Time
	err    error
	styles styles
	keys   keymap
	help   help.Model
	view   view.Model
	cursor int
}

// New returns a watch view over the active tasks of src.
func New(
	ctx context.Context,
	src Source,
	timer Toggler,
	darkTheme bool,
) *Model {
	m := &Model{
		ctx:    ctx,
		src:    src,
		timer:  timer,
		now:    time.Now,
		styles: newStyles(darkTheme),
		keys:   defaultKeymap,
		help:   help.New(),
	}

	m.rebuild()

	return m
}

// Run blocks until the user quits the view or ctx is cancelled.
func Run(ctx context.Context, src Source, timer Toggler, darkTheme bool) error {
	p := tea.NewProgram(
		New(ctx, src, timer, darkTheme),
		tea.WithContext(ctx),
	)

	_, err := p.Run()

	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) rebuild() {
	m.view = view.Build(
		m.src.ListTasks(models.Active),
		m.src.Sessions(),
		m.now(),
	)

	if m.cursor >= len(m.view.Rows) {
		m.cursor = max(len(m.view.Rows)-1, 0)
	}
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) toggleSelected() {
	if len(m.view.Rows) == 0 {
		return
	}

	row := m.view.Rows[m.cursor]

	_, running, err := m.timer.Toggle(m.ctx, row.ID)
	if err != nil {
		slog.Error("toggle failed", slog.String("task_id", row.ID), slog.Any("error", err))
	} else {
		slog.Debug("toggled", slog.String("task_id", row.ID), slog.Bool("running", running))
	}

	m.err = err
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.rebuild()
		return m, tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.down):
			if m.cursor < len(m.view.Rows)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.toggle):
			m.toggleSelected()

		case key.Matches(msg, m.keys.refresh):
			m.err = m.src.Refresh(m.ctx)
		}

		m.rebuild()
	}

	return m, nil
}

func (m *Model) status(r view.Row) string {
	label := fmt.Sprintf("%-7s", r.Status)

	switch r.Status {
	case view.Running:
		return m.styles.running.Render(label)
	case view.Paused:
		return m.styles.paused.Render(label)
	default:
		return m.styles.pending.Render(label)
	}
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.styles.title.Render("Tasks"))
	s.WriteString("\n\n")

	if len(m.view.Rows) == 0 {
		s.WriteString(m.styles.dim.Render("No active tasks. Add one with `tempo add`."))
		s.WriteString("\n")
	}

	for i, r := range m.view.Rows {
		cursor := "  "
		name := r.Name

		if i == m.cursor {
			cursor = m.styles.selected.Render("> ")
			name = m.styles.selected.Render(name)
		}

		category := ""
		if r.Category != "" {
			category = m.styles.dim.Render(" [" + r.Category + "]")
		}

		fmt.Fprintf(
			&s,
			"%s%2d. %s  %s  %s%s\n",
			cursor,
			r.Index,
			m.status(r),
			r.Clock(),
			name,
			category,
		)
	}

	if m.err != nil {
		s.WriteString("\n" + m.styles.err.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + m.help.View(m.keys))

	return m.styles.base.Render(s.String())
}
