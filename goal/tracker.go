package goal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ayoisaiah/readtime/events"
	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
)

// Status is the state of the reading timer.
type Status int

const (
	Idle Status = iota
	Active
)

func (s Status) String() string {
	if s == Active {
		return "active"
	}

	return "idle"
}

// Books is the part of the catalog the tracker needs.
type Books interface {
	Get(bookID string) (models.Book, error)
	ValidatePage(bookID string, page int) error
	UpdateProgress(ctx context.Context, bookID string, page int) error
}

// Sessions is where finished sessions are recorded.
type Sessions interface {
	Append(
		ctx context.Context,
		s models.ReadingSession,
	) (models.ReadingSession, error)
}

var (
	errAlreadyActive = &apperr.Error{
		Message: "a reading session is already running",
		Kind:    apperr.KindValidation,
	}

	errNotActive = &apperr.Error{
		Message: "no reading session is running",
		Kind:    apperr.KindValidation,
	}

	// ErrNotActive matches StopAndSave calls made while Idle.
	ErrNotActive = errNotActive
)

// Tracker is the reading timer state machine. The daily goal state is not
// held here: every operation takes the current state and returns the updated
// one, and the caller decides when to persist it.
type Tracker struct {
	books    Books
	sessions Sessions
	bus      events.Publisher
	clock    timeutil.Clock
	bookID   string
	status   Status
	// elapsed is the session-local reading time in seconds.
	elapsed float64
	// counted is how much of elapsed was added to today's total.
	counted float64
}

// NewTracker returns an Idle tracker. A nil publisher or clock falls back to
// events.Discard and the system clock.
func NewTracker(
	books Books,
	sessions Sessions,
	bus events.Publisher,
	clock timeutil.Clock,
) *Tracker {
	if bus == nil {
		bus = events.Discard
	}

	if clock == nil {
		clock = timeutil.SystemClock{}
	}

	return &Tracker{
		books:    books,
		sessions: sessions,
		bus:      bus,
		clock:    clock,
	}
}

func (t *Tracker) Status() Status {
	return t.status
}

func (t *Tracker) BookID() string {
	return t.bookID
}

// Elapsed is the reading time of the current session.
func (t *Tracker) Elapsed() time.Duration {
	return time.Duration(t.elapsed * float64(time.Second))
}

// Observe applies the day rollover check and nothing else.
func (t *Tracker) Observe(state models.DailyGoalState) models.DailyGoalState {
	state, reset := Rollover(state, t.clock.Now())
	if !reset {
		return state
	}

	t.counted = 0

	slog.Info("daily progress reset", slog.String("date", state.LastResetDate))

	t.bus.Publish(events.DailyProgressReset{Date: state.LastResetDate})

	return state
}

// Progress returns today's progress after the rollover check.
func (t *Tracker) Progress(
	state models.DailyGoalState,
) (models.DailyGoalState, float64) {
	state = t.Observe(state)

	return state, Progress(state)
}

// Start begins a session for bookID. Elapsed time always starts at zero;
// a paused session is not resumed.
func (t *Tracker) Start(
	state models.DailyGoalState,
	bookID string,
) (models.DailyGoalState, error) {
	state = t.Observe(state)

	if t.status == Active {
		return state, errAlreadyActive
	}

	if _, err := t.books.Get(bookID); err != nil {
		return state, err
	}

	t.status = Active
	t.bookID = bookID
	t.elapsed = 0
	t.counted = 0

	return state, nil
}

// Tick adds dt of reading time. It does nothing while Idle.
func (t *Tracker) Tick(
	state models.DailyGoalState,
	dt time.Duration,
) models.DailyGoalState {
	state = t.Observe(state)

	if t.status != Active || dt <= 0 {
		return state
	}

	secs := dt.Seconds()

	t.elapsed += secs
	t.counted += secs
	state.AccumulatedSecondsToday += secs

	return state
}

// Pause stops the timer without saving. Today's total keeps the time read.
func (t *Tracker) Pause(state models.DailyGoalState) models.DailyGoalState {
	state = t.Observe(state)
	t.status = Idle

	return state
}

// StopAndSave ends the session, moves the book to newPage and records the
// session. The session's time is already part of today's total. If the
// session cannot be recorded the book goes back to its previous page and the
// tracker stays Active, so the call can be retried.
func (t *Tracker) StopAndSave(
	ctx context.Context,
	state models.DailyGoalState,
	newPage int,
) (models.DailyGoalState, models.ReadingSession, error) {
	state = t.Observe(state)

	if t.status != Active {
		return state, models.ReadingSession{}, errNotActive
	}

	if err := t.books.ValidatePage(t.bookID, newPage); err != nil {
		return state, models.ReadingSession{}, err
	}

	book, err := t.books.Get(t.bookID)
	if err != nil {
		return state, models.ReadingSession{}, err
	}

	if err = t.books.UpdateProgress(ctx, t.bookID, newPage); err != nil {
		return state, models.ReadingSession{}, err
	}

	session, err := t.sessions.Append(ctx, models.ReadingSession{
		BookID:          t.bookID,
		DurationSeconds: t.elapsed,
		Timestamp:       t.clock.Now(),
	})
	if err != nil {
		if rerr := t.books.UpdateProgress(ctx, t.bookID, book.CurrentPage); rerr != nil {
			slog.ErrorContext(ctx, "unable to restore page after failed save",
				slog.String("book_id", t.bookID),
				slog.Any("error", rerr),
			)

			err = errors.Join(err, rerr)
		}

		return state, models.ReadingSession{}, err
	}

	t.status = Idle
	t.elapsed = 0
	t.counted = 0

	return state, session, nil
}

// Cancel discards the current session. Time it added to today's total is
// taken back.
func (t *Tracker) Cancel(state models.DailyGoalState) models.DailyGoalState {
	state = t.Observe(state)

	state.AccumulatedSecondsToday -= t.counted
	if state.AccumulatedSecondsToday < 0 {
		state.AccumulatedSecondsToday = 0
	}

	t.status = Idle
	t.elapsed = 0
	t.counted = 0

	return state
}
