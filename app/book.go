package app

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/catalog"
	"github.com/ayoisaiah/readtime/internal/models"
)

// bookAddAction adds a book. The page count comes from --pages or is read
// from the file passed to --pdf.
func bookAddAction(ctx *cli.Context) (err error) {
	total := ctx.Int("pages")

	if pdfPath := ctx.Path("pdf"); pdfPath != "" {
		if total != 0 {
			return errPageCount
		}

		total, err = catalog.PageCount(pdfPath)
		if err != nil {
			return err
		}
	}

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	book, err := e.catalog.Add(e.ctx, models.Book{
		Title:         ctx.String("title"),
		Author:        ctx.String("author"),
		TotalPages:    total,
		CurrentPage:   ctx.Int("page"),
		CoverImageRef: ctx.String("cover"),
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Added %s by %s (%d pages) with id %s",
		book.Title,
		book.Author,
		book.TotalPages,
		shortID(book.ID),
	)

	return nil
}

// bookSearchAction prints the books matching the query.
func bookSearchAction(ctx *cli.Context) (err error) {
	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	books := e.catalog.Search(strings.Join(ctx.Args().Slice(), " "))

	if ctx.Bool("json") {
		return printJSON(books)
	}

	return listBooks(books)
}
