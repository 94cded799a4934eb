package timer

import (
	"context"
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/static"
)

var errSessionCmd = &apperr.Error{
	Message: "unable to parse settings.cmd option",
	Kind:    apperr.KindValidation,
}

// runSessionCmd executes the command configured to run after a saved
// session.
func runSessionCmd(ctx context.Context, sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	//nolint:gosec // the command comes from the user's own config file
	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)

	return cmd.Run()
}

// notify sends a desktop notification.
func notify(title, msg string) error {
	// the icon path is empty if the file is not installed
	return beeep.Notify(title, msg, static.IconPath())
}
