// Package timer runs the interactive reading timer
package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"golang.org/x/time/rate"

	"github.com/ayoisaiah/readtime/events"
	"github.com/ayoisaiah/readtime/goal"
	"github.com/ayoisaiah/readtime/internal/config"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/store"
)

const (
	tickInterval     = time.Second
	rolloverInterval = time.Minute
	// saveInterval bounds how often the goal state is written while reading.
	saveInterval = 15 * time.Second

	padding  = 2
	maxWidth = 60
)

// Books is the part of the catalog the timer reads from.
type Books interface {
	Get(bookID string) (models.Book, error)
	ValidatePage(bookID string, page int) error
}

// Options configures a timer Model.
type Options struct {
	Tracker *goal.Tracker
	Books   Books
	Goals   store.GoalStore
	// Events is a bus subscription. It may be nil.
	Events <-chan events.Event
	Config *config.Config
	Clock  timeutil.Clock
	State  models.DailyGoalState
	BookID string
}

// Model is the bubbletea model for a reading session.
type Model struct {
	ctx       context.Context
	tracker   *goal.Tracker
	books     Books
	goals     store.GoalStore
	events    <-chan events.Event
	cfg       *config.Config
	clock     timeutil.Clock
	pageForm  *huh.Form
	err       error
	lastTick  time.Time
	saver     rate.Sometimes
	book      models.Book
	state     models.DailyGoalState
	help      help.Model
	progress  progress.Model
	status    string
	pageInput string
	// notified is the date the goal-reached notification was last sent.
	notified string
	// gen identifies the running 1s tick loop. Ticks from an older loop are
	// dropped.
	gen int
}

// New returns a Model for opts. The book is looked up once here and again
// whenever its progress changes.
func New(ctx context.Context, opts *Options) *Model {
	if opts.Clock == nil {
		opts.Clock = timeutil.SystemClock{}
	}

	if opts.Config == nil {
		opts.Config = config.Defaults()
	}

	m := &Model{
		ctx:      ctx,
		tracker:  opts.Tracker,
		books:    opts.Books,
		goals:    opts.Goals,
		events:   opts.Events,
		cfg:      opts.Config,
		clock:    opts.Clock,
		state:    opts.State,
		saver:    rate.Sometimes{Interval: saveInterval},
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
	}

	m.progress.Width = maxWidth

	if opts.BookID != "" {
		book, err := m.books.Get(opts.BookID)
		if err != nil {
			m.err = err
		} else {
			m.book = book
		}
	}

	// no notification for a goal that was met before the timer opened
	if goal.Reached(m.state) {
		m.notified = m.state.LastResetDate
	}

	return m
}

// State is the current daily goal state.
func (m *Model) State() models.DailyGoalState {
	return m.state
}

// Err is the error the timer stopped on, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(rolloverCmd(), waitForEvent(m.events))
}

// persist queues the goal state for writing. Failures are shown in the view.
func (m *Model) persist() {
	if m.goals == nil {
		return
	}

	if err := m.goals.SaveGoalState(m.ctx, m.state); err != nil {
		slog.Error("unable to save goal state", slog.Any("error", err))
		m.err = err
	}
}

// Run opens the timer in the terminal and blocks until the user quits.
func Run(ctx context.Context, opts *Options) (models.DailyGoalState, error) {
	m := New(ctx, opts)

	p := tea.NewProgram(m, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return m.state, err
	}

	return m.state, nil
}
