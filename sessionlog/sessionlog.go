// Package sessionlog keeps the append-only record of reading sessions
package sessionlog

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/store"
)

var errDuration = &apperr.Error{
	Message: "session duration must be a non-negative number of seconds, got %v",
	Kind:    apperr.KindValidation,
}

// Log holds every saved reading session in insertion order.
type Log struct {
	db       store.SessionStore
	clock    timeutil.Clock
	warning  error
	sessions []models.ReadingSession
	mu       sync.RWMutex
}

// Load reads the stored sessions. Undecodable data yields an empty log and
// a warning, like catalog.Load.
func Load(
	ctx context.Context,
	db store.SessionStore,
	clock timeutil.Clock,
) (*Log, error) {
	if clock == nil {
		clock = timeutil.SystemClock{}
	}

	l := &Log{db: db, clock: clock}

	sessions, err := db.LoadSessions(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return nil, err
		}

		slog.WarnContext(ctx, "discarding unreadable session log",
			slog.Any("error", err),
		)

		l.warning = err
		sessions = []models.ReadingSession{}
	}

	l.sessions = sessions

	return l, nil
}

func (l *Log) Warning() error {
	return l.warning
}

// Append validates and stores a session. A zero timestamp is set to now.
func (l *Log) Append(
	ctx context.Context,
	s models.ReadingSession,
) (models.ReadingSession, error) {
	if math.IsNaN(s.DurationSeconds) || math.IsInf(s.DurationSeconds, 0) ||
		s.DurationSeconds < 0 {
		return models.ReadingSession{}, errDuration.Fmt(s.DurationSeconds)
	}

	if s.Timestamp.IsZero() {
		s.Timestamp = l.clock.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sessions := append(slices.Clone(l.sessions), s)

	if err := l.db.SaveSessions(ctx, sessions); err != nil {
		return models.ReadingSession{}, err
	}

	l.sessions = sessions

	slog.InfoContext(ctx, "reading session saved",
		slog.String("book_id", s.BookID),
		slog.Float64("seconds", s.DurationSeconds),
	)

	return s, nil
}

func (l *Log) snapshot() []models.ReadingSession {
	l.mu.RLock()
	defer l.mu.RUnlock()

	// appends always replace the slice, so sharing the backing array is safe
	return l.sessions[:len(l.sessions):len(l.sessions)]
}

// All yields every session in insertion order. Each iteration sees the log
// as it was when All was called.
func (l *Log) All() iter.Seq[models.ReadingSession] {
	return slices.Values(l.snapshot())
}

// SessionsInRange yields the sessions with start <= timestamp < end.
func (l *Log) SessionsInRange(
	start, end time.Time,
) iter.Seq[models.ReadingSession] {
	return InRange(l.All(), start, end)
}

// InRange filters seq to sessions with start <= timestamp < end.
func InRange(
	seq iter.Seq[models.ReadingSession],
	start, end time.Time,
) iter.Seq[models.ReadingSession] {
	return func(yield func(models.ReadingSession) bool) {
		for s := range seq {
			if s.Timestamp.Before(start) || !s.Timestamp.Before(end) {
				continue
			}

			if !yield(s) {
				return
			}
		}
	}
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.sessions)
}
