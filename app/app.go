package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

func bookCommand() *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Manage the books you are reading",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a book to the catalog",
				UsageText: "readtime book add --title TITLE --author AUTHOR (--pages N | --pdf FILE)",
				Flags: []cli.Flag{
					titleFlag,
					authorFlag,
					pagesFlag,
					pdfFlag,
					pageFlag,
					coverFlag,
				},
				Action: bookAddAction,
			},
			{
				Name:   "list",
				Usage:  "List the books in the catalog",
				Flags:  []cli.Flag{sortFlag, jsonFlag},
				Action: bookListAction,
			},
			{
				Name:      "search",
				Usage:     "Find books by title or author",
				UsageText: "readtime book search QUERY",
				Flags:     []cli.Flag{jsonFlag},
				Action:    bookSearchAction,
			},
			{
				Name:      "progress",
				Usage:     "Set the page you are on",
				UsageText: "readtime book progress BOOK PAGE",
				Action:    bookProgressAction,
			},
			{
				Name:      "note",
				Usage:     "Attach a note to a book",
				UsageText: "readtime book note BOOK TEXT",
				Action:    bookNoteAction,
			},
			{
				Name:      "remove",
				Usage:     "Remove a book from the catalog",
				UsageText: "readtime book remove BOOK",
				Flags:     []cli.Flag{yesFlag},
				Action:    bookRemoveAction,
			},
		},
	}
}

func accountCommand() *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Show or change the signed-in account",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the signed-in account",
				Action: accountShowAction,
			},
			{
				Name:   "signin",
				Usage:  "Sign in with an identity token or a user id",
				Flags:  []cli.Flag{tokenFlag, userIDFlag, nameFlag, emailFlag},
				Action: accountSignInAction,
			},
			{
				Name:   "signout",
				Usage:  "Forget the signed-in account",
				Action: accountSignOutAction,
			},
		},
		Action: accountShowAction,
	}
}

// Get retrieves the readtime app instance.
func Get() *cli.App {
	readtimeApp := &cli.App{
		Name: "readtime",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		readtime tracks the time you spend reading against a daily goal and
		keeps a log of every session, with weekly statistics.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			bookCommand(),
			{
				Name:   "log",
				Usage:  "List saved reading sessions",
				Flags:  []cli.Flag{periodFlag, jsonFlag},
				Action: logAction,
			},
			{
				Name: "stats",
				Usage: `
				Weekly reading statistics for the seven days ending on --date.
				Defaults to today`,
				Flags: []cli.Flag{
					dateFlag,
					jsonFlag,
					serveFlag,
					statsPortFlag,
				},
				Action: statsAction,
			},
			{
				Name:   "goal",
				Usage:  "Show today's progress against the daily goal",
				Action: goalAction,
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "Change the daily goal",
						UsageText: "readtime goal set MINUTES",
						Action:    goalSetAction,
					},
				},
			},
			accountCommand(),
			{
				Name:   "export",
				Usage:  "Write everything readtime stores to stdout",
				Flags:  []cli.Flag{formatFlag},
				Action: exportAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			bookFlag,
			configFlag,
			storageDriverFlag,
			dbPathFlag,
			sessionCmdFlag,
			disableNotificationFlag,
			noColorFlag,
			debugFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return readtimeApp
}
