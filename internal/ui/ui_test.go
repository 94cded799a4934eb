package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestPrintTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer

	PrintTable([][]string{
		{"ID", "TITLE"},
		{"0190a1b2", "Kindred"},
	}, &buf)

	out := buf.String()

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Kindred")
	assert.Contains(t, out, "0190a1b2")
}

func TestColoursKeepText(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	for _, dark := range []bool{false, true} {
		DarkTheme = dark

		assert.Equal(t, "42m", Green("42m"))
		assert.Equal(t, "Summary", Blue("Summary"))
		assert.Equal(t, "abandoned", Red("abandoned"))
	}

	DarkTheme = false
}
