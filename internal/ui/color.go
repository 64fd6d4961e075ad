// Package ui holds the terminal colours and tables shared by the CLI and the
// stats report.
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variants of each colour so they stay readable
// on dark terminals.
var DarkTheme bool

func pick(light, dark pterm.Color, a any) string {
	if DarkTheme {
		return dark.Sprint(a)
	}

	return light.Sprint(a)
}

func Green(a any) string {
	return pick(pterm.FgGreen, pterm.FgLightGreen, a)
}

func Yellow(a any) string {
	return pick(pterm.FgYellow, pterm.FgLightYellow, a)
}

func Cyan(a any) string {
	return pick(pterm.FgCyan, pterm.FgLightCyan, a)
}

func Blue(a any) string {
	return pick(pterm.FgBlue, pterm.FgLightBlue, a)
}

func Red(a any) string {
	return pick(pterm.FgRed, pterm.FgLightRed, a)
}

// Highlight emphasises names in messages.
func Highlight(a any) string {
	return pick(pterm.FgBlack, pterm.FgLightWhite, a)
}
