// Package ui holds the terminal colours and tables shared by the commands
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme switches to the light variant of each colour.
var DarkTheme bool

func paint(a any, normal, light pterm.Color) string {
	if DarkTheme {
		return light.Sprint(a)
	}

	return normal.Sprint(a)
}

func Green(a any) string {
	return paint(a, pterm.FgGreen, pterm.FgLightGreen)
}

func Blue(a any) string {
	return paint(a, pterm.FgBlue, pterm.FgLightBlue)
}

func Red(a any) string {
	return paint(a, pterm.FgRed, pterm.FgLightRed)
}
