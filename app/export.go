package app

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/export"
	"github.com/ayoisaiah/readtime/internal/config"
)

func exportAction(ctx *cli.Context) (err error) {
	format := export.Format(strings.ToLower(ctx.String("format")))

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	// applies any pending rollover before the state is read back
	if _, err = e.goalState(); err != nil {
		return err
	}

	snap, err := export.Collect(e.ctx, e.db)
	if err != nil {
		return err
	}

	return export.Write(config.Stdout, snap, format)
}
