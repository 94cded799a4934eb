package app

import (
	"context"
	"errors"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/readtime/catalog"
	"github.com/ayoisaiah/readtime/events"
	"github.com/ayoisaiah/readtime/goal"
	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/pathutil"
	"github.com/ayoisaiah/readtime/internal/ui"
	"github.com/ayoisaiah/readtime/report"
	"github.com/ayoisaiah/readtime/sessionlog"
	"github.com/ayoisaiah/readtime/store"
)

// writeBuffer is the number of saves the background writer queues.
const writeBuffer = 64

// engine is the loaded reading engine for one command.
type engine struct {
	ctx     context.Context
	cfg     *config.Config
	db      *store.AsyncWriter
	bus     *events.Bus
	catalog *catalog.Catalog
	log     *sessionlog.Log
}

func configPath(ctx *cli.Context) string {
	if p := ctx.String("config"); p != "" {
		return p
	}

	return pathutil.ConfigFilePath()
}

// loadConfig builds the config from the file and the flags. The first-run
// prompt only appears when interactive is true.
func loadConfig(ctx *cli.Context, interactive bool) (*config.Config, error) {
	path := configPath(ctx)

	var opts []config.Option

	if interactive {
		opts = append(opts, config.WithPromptConfig(path))
	}

	opts = append(opts,
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx, time.Now()),
	)

	return config.New(opts...)
}

// openEngine loads the catalog and the session log from the configured
// database.
func openEngine(ctx *cli.Context, interactive bool) (*engine, error) {
	cfg, err := loadConfig(ctx, interactive)
	if err != nil {
		return nil, err
	}

	client, err := store.Open(ctx.Context, cfg.Storage.Driver, cfg.DBPath())
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	e := &engine{
		ctx: ctx.Context,
		cfg: cfg,
		db:  store.NewAsyncWriter(client, writeBuffer),
		bus: events.NewBus(),
	}

	e.catalog, err = catalog.Load(ctx.Context, e.db, catalog.WithPublisher(e.bus))
	if err != nil {
		return nil, errors.Join(err, e.Close())
	}

	report.Degraded(e.catalog.Warning())

	e.log, err = sessionlog.Load(ctx.Context, e.db, nil)
	if err != nil {
		return nil, errors.Join(err, e.Close())
	}

	report.Degraded(e.log.Warning())

	return e, nil
}

// goalState loads today's goal state.
func (e *engine) goalState() (models.DailyGoalState, error) {
	return goal.LoadState(
		e.ctx,
		e.db,
		e.bus,
		time.Now(),
		e.cfg.Goal.DefaultMinutes,
	)
}

// Close waits for pending writes and closes the database.
func (e *engine) Close() error {
	return e.db.Close()
}
