package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/stats"
)

// statsAction reports the week ending on --date. With --serve it starts the
// statistics server instead.
func statsAction(ctx *cli.Context) (err error) {
	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	state, err := e.goalState()
	if err != nil {
		return err
	}

	if ctx.Bool("serve") {
		sctx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
		defer stop()

		pterm.Info.Printfln(
			"Serving statistics on http://localhost:%d (Ctrl-C to stop)",
			e.cfg.Server.Port,
		)

		// the database stays locked while serving, so nothing else can
		// change the goal read above
		return stats.Serve(sctx, e.cfg.Server.Port, stats.Source{
			Sessions: e.log.All,
			Titles:   e.catalog.Titles,
			GoalMinutes: func() float64 {
				return state.DailyGoalMinutes
			},
			Now: time.Now,
		})
	}

	report := stats.NewReport(
		e.log.All(),
		e.cfg.CLI.Date,
		state.DailyGoalMinutes,
		e.catalog.Titles(),
	)

	if ctx.Bool("json") {
		b, err := json.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	stats.Render(config.Stdout, report.Week, report.Books)

	return nil
}
