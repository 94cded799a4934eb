package app

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/internal/ui"
)

// bookProgressAction moves a book to the given page.
func bookProgressAction(ctx *cli.Context) (err error) {
	if err = requireArgs(ctx, 2); err != nil {
		return err
	}

	page, err := strconv.Atoi(ctx.Args().Get(1))
	if err != nil {
		return errNotANumber.Fmt(ctx.Args().Get(1))
	}

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	book, err := e.catalog.Resolve(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	if err = e.catalog.UpdateProgress(e.ctx, book.ID, page); err != nil {
		return err
	}

	pterm.Success.Printfln(
		"%s: page %s of %d",
		book.Title,
		ui.Green(page),
		book.TotalPages,
	)

	return nil
}

// bookNoteAction attaches the remaining arguments as a note.
func bookNoteAction(ctx *cli.Context) (err error) {
	if ctx.NArg() < 2 {
		return errArgs.Fmt(ctx.Command.UsageText)
	}

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	book, err := e.catalog.Resolve(ctx.Args().First())
	if err != nil {
		return err
	}

	_, err = e.catalog.AddNote(
		e.ctx,
		book.ID,
		strings.Join(ctx.Args().Tail(), " "),
	)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Note added to %s", book.Title)

	return nil
}
