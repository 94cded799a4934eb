// Package report prints the outcome of a command to the terminal
package report

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/osutil"
)

// Degraded warns that a collection could not be read and an empty one is
// used in its place.
func Degraded(err error) {
	if err == nil {
		return
	}

	pterm.Warning.Printfln("%v. Starting with an empty collection", err)
}

// Error prints err with a hint for storage faults.
func Error(err error) {
	pterm.Error.Println(err)

	if apperr.IsPersistence(err) {
		pterm.Info.Println("Check that no other readtime process is running")
	}
}

// Quit prints err and exits with a failure status.
func Quit(err error) {
	Error(err)
	os.Exit(int(osutil.ExitError))
}
