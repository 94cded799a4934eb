package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/ayoisaiah/readtime/internal/models"
)

type writeOp struct {
	write   func(ctx context.Context) error
	flushed chan struct{}
	name    string
}

// AsyncWriter is a Gateway whose saves are applied in order by a background
// goroutine, so callers on the UI loop never wait on storage. Loads flush the
// queue first so they always observe earlier saves. A failed write is
// returned by the next call that touches the writer, and a save made while
// that failure is pending is not applied.
type AsyncWriter struct {
	next   Gateway
	ops    chan writeOp
	done   chan struct{}
	err    error
	errMu  sync.Mutex
	mu     sync.RWMutex
	closed bool
}

// NewAsyncWriter starts the background writer for next. buffer bounds the
// number of queued saves before Save calls start to wait.
func NewAsyncWriter(next Gateway, buffer int) *AsyncWriter {
	w := &AsyncWriter{
		next: next,
		ops:  make(chan writeOp, buffer),
		done: make(chan struct{}),
	}

	go w.loop()

	return w
}

func (w *AsyncWriter) loop() {
	defer close(w.done)

	ctx := context.Background()

	for op := range w.ops {
		if op.write != nil {
			if err := op.write(ctx); err != nil {
				slog.Error("background write failed",
					slog.String("op", op.name),
					slog.Any("error", err),
				)

				w.errMu.Lock()
				w.err = err
				w.errMu.Unlock()
			}
		}

		if op.flushed != nil {
			close(op.flushed)
		}
	}
}

func (w *AsyncWriter) takeErr() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()

	err := w.err
	w.err = nil

	return err
}

func (w *AsyncWriter) enqueue(op writeOp) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return errClosed
	}

	w.ops <- op

	return nil
}

// Flush waits until every queued save has been applied.
func (w *AsyncWriter) Flush(ctx context.Context) error {
	flushed := make(chan struct{})

	if err := w.enqueue(writeOp{name: "flush", flushed: flushed}); err != nil {
		return err
	}

	select {
	case <-flushed:
	case <-ctx.Done():
		return ctx.Err()
	}

	return w.takeErr()
}

// save queues write. A failure left by an earlier write is returned instead,
// and write is dropped so the caller can keep its in-memory state unchanged.
func (w *AsyncWriter) save(name string, write func(ctx context.Context) error) error {
	if err := w.takeErr(); err != nil {
		return err
	}

	return w.enqueue(writeOp{name: name, write: write})
}

func (w *AsyncWriter) SaveBooks(_ context.Context, books []models.Book) error {
	snapshot := make([]models.Book, len(books))
	for i := range books {
		snapshot[i] = books[i].Clone()
	}

	return w.save(KeyBooks, func(ctx context.Context) error {
		return w.next.SaveBooks(ctx, snapshot)
	})
}

func (w *AsyncWriter) SaveSessions(
	_ context.Context,
	sessions []models.ReadingSession,
) error {
	snapshot := slices.Clone(sessions)

	return w.save(KeySessions, func(ctx context.Context) error {
		return w.next.SaveSessions(ctx, snapshot)
	})
}

func (w *AsyncWriter) SaveGoalState(
	_ context.Context,
	state models.DailyGoalState,
) error {
	return w.save(KeyGoalState, func(ctx context.Context) error {
		return w.next.SaveGoalState(ctx, state)
	})
}

func (w *AsyncWriter) SaveIdentity(_ context.Context, id models.Identity) error {
	return w.save(KeyIdentity, func(ctx context.Context) error {
		return w.next.SaveIdentity(ctx, id)
	})
}

func (w *AsyncWriter) ClearIdentity(_ context.Context) error {
	return w.save(KeyIdentity, func(ctx context.Context) error {
		return w.next.ClearIdentity(ctx)
	})
}

func (w *AsyncWriter) LoadBooks(ctx context.Context) ([]models.Book, error) {
	if err := w.Flush(ctx); err != nil {
		return nil, err
	}

	return w.next.LoadBooks(ctx)
}

func (w *AsyncWriter) LoadSessions(
	ctx context.Context,
) ([]models.ReadingSession, error) {
	if err := w.Flush(ctx); err != nil {
		return nil, err
	}

	return w.next.LoadSessions(ctx)
}

func (w *AsyncWriter) LoadGoalState(
	ctx context.Context,
) (models.DailyGoalState, error) {
	if err := w.Flush(ctx); err != nil {
		return models.DailyGoalState{}, err
	}

	return w.next.LoadGoalState(ctx)
}

func (w *AsyncWriter) LoadIdentity(ctx context.Context) (models.Identity, error) {
	if err := w.Flush(ctx); err != nil {
		return models.Identity{}, err
	}

	return w.next.LoadIdentity(ctx)
}

// Close drains the queue and closes the wrapped gateway.
func (w *AsyncWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}

	w.closed = true
	close(w.ops)
	w.mu.Unlock()

	<-w.done

	err := w.takeErr()

	if cerr := w.next.Close(); err == nil {
		err = cerr
	}

	return err
}
