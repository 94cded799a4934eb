package app

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/goal"
	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/internal/ui"
	"github.com/ayoisaiah/readtime/stats"
)

// goalAction prints today's progress.
func goalAction(ctx *cli.Context) (err error) {
	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	state, err := e.goalState()
	if err != nil {
		return err
	}

	progress := goal.Progress(state)

	fmt.Fprintf(config.Stdout,
		"Today: %s of %s (%s)\n",
		ui.Green(timeutil.FormatClock(state.AccumulatedSecondsToday)),
		stats.FormatMinutes(state.DailyGoalMinutes),
		ui.Green(fmt.Sprintf("%d%%", timeutil.Round(progress*100))),
	)

	if goal.Reached(state) {
		pterm.Success.Println("Daily goal reached")
	}

	return nil
}

// goalSetAction changes the daily goal. Today's reading time is kept.
func goalSetAction(ctx *cli.Context) (err error) {
	if err = requireArgs(ctx, 1); err != nil {
		return err
	}

	minutes, err := strconv.ParseFloat(ctx.Args().First(), 64)
	if err != nil {
		return errNotANumber.Fmt(ctx.Args().First())
	}

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	state, err := e.goalState()
	if err != nil {
		return err
	}

	state, err = goal.SetGoal(state, minutes)
	if err != nil {
		return err
	}

	if err = e.db.SaveGoalState(e.ctx, state); err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Daily goal set to %s",
		stats.FormatMinutes(state.DailyGoalMinutes),
	)

	return nil
}
