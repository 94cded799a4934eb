package app

import (
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/catalog"
	"github.com/ayoisaiah/readtime/export"
	"github.com/ayoisaiah/readtime/internal/timeutil"
)

var (
	bookFlag = &cli.StringFlag{
		Name:    "book",
		Aliases: []string{"b"},
		Usage:   "The book to read, by id, id prefix or title. Defaults to the last book added",
	}

	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to the config file",
		EnvVars: []string{"READTIME_CONFIG"},
	}

	storageDriverFlag = &cli.StringFlag{
		Name:  "storage-driver",
		Usage: "Database backend: bolt or sqlite",
	}

	dbPathFlag = &cli.StringFlag{
		Name:  "db-path",
		Usage: "Path to the database file",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug logs",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when the daily goal is reached",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each saved session",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print JSON instead of a table",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "The last day of the reporting week (e.g. 'yesterday', '2026-10-01')",
	}

	serveFlag = &cli.BoolFlag{
		Name:  "serve",
		Usage: "Serve the statistics over HTTP instead of printing them",
	}

	statsPortFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "Specify the port for the statistics server",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Reporting period: " + periodNames(),
		Value:   string(timeutil.Period7Days),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Export format: json or yaml",
		Value:   string(export.FormatJSON),
	}

	titleFlag = &cli.StringFlag{
		Name:     "title",
		Required: true,
	}

	authorFlag = &cli.StringFlag{
		Name:     "author",
		Required: true,
	}

	pagesFlag = &cli.IntFlag{
		Name:  "pages",
		Usage: "Number of pages in the book",
	}

	pdfFlag = &cli.PathFlag{
		Name:  "pdf",
		Usage: "Read the page count from a PDF file",
	}

	pageFlag = &cli.IntFlag{
		Name:  "page",
		Usage: "The page you are on",
	}

	coverFlag = &cli.StringFlag{
		Name:  "cover",
		Usage: "A reference to the cover image",
	}

	sortFlag = &cli.StringFlag{
		Name:  "sort",
		Usage: "Sort order: added, title or progress",
		Value: string(catalog.SortAdded),
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}

	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "An identity provider token",
	}

	userIDFlag = &cli.StringFlag{
		Name:  "user-id",
		Usage: "The user id to sign in as",
	}

	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Display name",
	}

	emailFlag = &cli.StringFlag{
		Name: "email",
	}
)
