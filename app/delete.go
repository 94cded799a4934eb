package app

import (
	"bufio"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/internal/models"
)

// bookRemoveAction removes a book from the catalog. It requests
// confirmation before proceeding unless --yes is set. Sessions recorded for
// the book stay in the log.
func bookRemoveAction(ctx *cli.Context) (err error) {
	if err = requireArgs(ctx, 1); err != nil {
		return err
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

	printBooksTable(config.Stdout, []models.Book{book})

	if !ctx.Bool("yes") {
		warning := pterm.Warning.Sprint(
			"The book above will be removed. Press ENTER to proceed",
		)

		fmt.Fprint(config.Stdout, warning)

		reader := bufio.NewReader(config.Stdin)

		_, _ = reader.ReadString('\n')
	}

	if err = e.catalog.Remove(e.ctx, book.ID); err != nil {
		return err
	}

	pterm.Success.Printfln("Removed %s", book.Title)

	return nil
}
