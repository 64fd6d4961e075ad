package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	base     lipgloss.Style
	title    lipgloss.Style
	selected lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	pending  lipgloss.Style
	dim      lipgloss.Style
	err      lipgloss.Style
}

func newStyles(dark bool) styles {
	accent, text, dim := lipgloss.Color("#89B4FA"), lipgloss.Color("#CDD6F4"), lipgloss.Color("#A6ADC8")
	if !dark {
		accent, text, dim = lipgloss.Color("#1E66F5"), lipgloss.Color("#4C4F69"), lipgloss.Color("#6C6F85")
	}

	return styles{
		base:     lipgloss.NewStyle().Padding(1, 2),
		title:    lipgloss.NewStyle().Foreground(text).Bold(true),
		selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		running:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		paused:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		pending:  lipgloss.NewStyle().Foreground(dim),
		dim:      lipgloss.NewStyle().Foreground(dim).Faint(true),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}
