package app

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/catalog"
	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/internal/ui"
	"github.com/ayoisaiah/readtime/stats"
)

const (
	noBooksMsg    = "No books yet. Add one with `readtime book add`"
	noSessionsMsg = "No reading sessions found for the specified period"
	shortIDLen    = 8
)

var (
	errSortOrder = &apperr.Error{
		Message: "unknown sort order %q: must be one of %s",
		Kind:    apperr.KindValidation,
	}

	errPeriod = &apperr.Error{
		Message: "unknown period %q: must be one of %s",
		Kind:    apperr.KindValidation,
	}
)

// shortID is the id prefix shown in tables. Any unique prefix is accepted
// wherever a book is expected.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}

	return id[:shortIDLen]
}

func periodNames() string {
	names := make([]string, len(timeutil.PeriodCollection))
	for i, p := range timeutil.PeriodCollection {
		names[i] = string(p)
	}

	return strings.Join(names, ", ")
}

func printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Fprintln(config.Stdout, string(b))

	return nil
}

// printBooksTable prints a book table to the command-line.
func printBooksTable(w io.Writer, books []models.Book) {
	tableBody := make([][]string, len(books))

	for i := range books {
		book := books[i]

		progress := fmt.Sprintf("%d%%", timeutil.Round(book.PercentRead()*100))
		if book.CurrentPage >= book.TotalPages {
			progress = ui.Green("finished")
		}

		tableBody[i] = []string{
			shortID(book.ID),
			book.Title,
			book.Author,
			fmt.Sprintf("%d/%d", book.CurrentPage, book.TotalPages),
			progress,
			fmt.Sprintf("%d", len(book.Notes)),
			book.DateAdded.Format("Jan 02, 2006"),
		}
	}

	tableBody = append([][]string{
		{"ID", "TITLE", "AUTHOR", "PAGE", "PROGRESS", "NOTES", "ADDED"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listBooks prints out a table of books.
func listBooks(books []models.Book) error {
	if len(books) == 0 {
		pterm.Info.Println(noBooksMsg)
		return nil
	}

	printBooksTable(config.Stdout, books)

	return nil
}

func bookListAction(ctx *cli.Context) (err error) {
	order := catalog.SortOrder(strings.ToLower(ctx.String("sort")))
	if !slices.Contains(catalog.SortOrders, order) {
		return errSortOrder.Fmt(order, "added, title, progress")
	}

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	books := e.catalog.Sorted(order)

	if ctx.Bool("json") {
		return printJSON(books)
	}

	return listBooks(books)
}

// printSessionsTable prints a session table to the command-line.
func printSessionsTable(
	w io.Writer,
	sessions []models.ReadingSession,
	titles map[string]string,
) {
	tableBody := make([][]string, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		title, ok := titles[sess.BookID]
		if !ok {
			title = ui.Red(stats.UnknownBook)
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			sess.Timestamp.Local().Format("Jan 02, 2006 03:04 PM"),
			title,
			timeutil.FormatClock(sess.DurationSeconds),
		}
	}

	tableBody = append([][]string{
		{"#", "SAVED AT", "BOOK", "DURATION"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// logAction prints the sessions saved within a period.
func logAction(ctx *cli.Context) (err error) {
	period := timeutil.Period(strings.ToLower(ctx.String("period")))
	if !slices.Contains(timeutil.PeriodCollection, period) {
		return errPeriod.Fmt(period, periodNames())
	}

	e, err := openEngine(ctx, false)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	start, end := timeutil.PeriodRange(period, e.cfg.CLI.Date)

	sessions := slices.Collect(e.log.SessionsInRange(start, end))

	if ctx.Bool("json") {
		if sessions == nil {
			sessions = []models.ReadingSession{}
		}

		return printJSON(sessions)
	}

	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(config.Stdout, sessions, e.catalog.Titles())

	return nil
}
