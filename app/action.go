package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/catalog"
	"github.com/ayoisaiah/readtime/goal"
	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/internal/osutil"
	"github.com/ayoisaiah/readtime/internal/pathutil"
	"github.com/ayoisaiah/readtime/internal/static"
	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/timer"
)

const (
	envUpdateNotifier  = "READTIME_UPDATE_NOTIFIER"
	envNoColor         = "NO_COLOR"
	envReadtimeNoColor = "READTIME_NO_COLOR"
)

var logCloser io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// checkForUpdates alerts the user if there is
// an updated version of readtime from the one currently installed.
func checkForUpdates(app *cli.App) {
	spinner, _ := pterm.DefaultSpinner.Start("Checking for updates...")
	c := http.Client{Timeout: 10 * time.Second}

	resp, err := c.Get("https://github.com/ayoisaiah/readtime/releases/latest")
	if err != nil {
		pterm.Error.Println("HTTP Error: Failed to check for update")
		return
	}

	defer resp.Body.Close()

	var version string

	_, err = fmt.Sscanf(
		resp.Request.URL.String(),
		"https://github.com/ayoisaiah/readtime/releases/tag/%s",
		&version,
	)
	if err != nil {
		pterm.Error.Println("Failed to get latest version")
		return
	}

	if version == app.Version {
		text := pterm.Sprintf(
			"Congratulations, you are using the latest version of %s",
			app.Name,
		)
		spinner.Success(text)
	} else {
		pterm.Warning.Prefix = pterm.Prefix{
			Text:  "UPDATE AVAILABLE",
			Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
		}
		pterm.Warning.Printfln("A new release of readtime is available: %s at %s", version, resp.Request.URL.String())
	}
}

// closeEngine closes e and reports the first error.
func closeEngine(e *engine, err *error) {
	if cerr := e.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// defaultAction opens the reading timer for the selected book, or the book
// added last.
func defaultAction(ctx *cli.Context) (err error) {
	e, err := openEngine(ctx, true)
	if err != nil {
		return err
	}

	defer closeEngine(e, &err)

	state, err := e.goalState()
	if err != nil {
		return err
	}

	var bookID string

	if ref := e.cfg.CLI.BookRef; ref != "" {
		book, err := e.catalog.Resolve(ref)
		if err != nil {
			return err
		}

		bookID = book.ID
	} else if books := e.catalog.Sorted(catalog.SortAdded); len(books) > 0 {
		bookID = books[len(books)-1].ID
	}

	events, unsubscribe := e.bus.Subscribe(16)
	defer unsubscribe()

	clock := timeutil.SystemClock{}

	_, err = timer.Run(ctx.Context, &timer.Options{
		Tracker: goal.NewTracker(e.catalog, e.log, e.bus, clock),
		Books:   e.catalog,
		Goals:   e.db,
		Events:  events,
		Config:  e.cfg,
		Clock:   clock,
		State:   state,
		BookID:  bookID,
	})

	return err
}

// editConfigAction handles the edit-config command which opens the readtime
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	// writes the defaults when the file does not exist yet
	if _, err := loadConfig(ctx, false); err != nil {
		return err
	}

	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, configPath(ctx))

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	logCloser = setupLogging(pathutil.LogFilePath(), ctx.Bool("debug"))

	if err := static.Install(); err != nil {
		slog.WarnContext(ctx.Context, "unable to install static files",
			slog.Any("error", err),
		)
	}

	slog.DebugContext(ctx.Context, "starting readtime",
		slog.Any("args", ctx.Args().Slice()),
	)

	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/readtime/releases/%s\n",
			c.App.Version,
		)

		if _, found := os.LookupEnv(envUpdateNotifier); found {
			checkForUpdates(c.App)
		}
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if READTIME_NO_COLOR is set
	if _, exists := os.LookupEnv(envReadtimeNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting readtime")

	if logCloser == nil {
		return nil
	}

	err := logCloser.Close()
	logCloser = nil

	return err
}

// requireArgs checks the number of positional arguments.
func requireArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() != n {
		return errArgs.Fmt(ctx.Command.UsageText)
	}

	return nil
}

func printf(format string, a ...any) {
	fmt.Fprintf(config.Stdout, format, a...)
}
