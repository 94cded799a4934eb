package store

import (
	"context"

	"github.com/ayoisaiah/readtime/internal/models"
)

// BookStore persists the whole book collection.
type BookStore interface {
	// LoadBooks returns the stored books. A collection that cannot be decoded
	// yields an error matching ErrCorrupt.
	LoadBooks(ctx context.Context) ([]models.Book, error)
	// SaveBooks replaces the stored collection.
	SaveBooks(ctx context.Context, books []models.Book) error
}

// SessionStore persists the whole reading session log.
type SessionStore interface {
	LoadSessions(ctx context.Context) ([]models.ReadingSession, error)
	SaveSessions(ctx context.Context, sessions []models.ReadingSession) error
}

// GoalStore persists the daily goal state. A missing state loads as the zero
// value.
type GoalStore interface {
	LoadGoalState(ctx context.Context) (models.DailyGoalState, error)
	SaveGoalState(ctx context.Context, state models.DailyGoalState) error
}

// IdentityStore persists the signed-in identity.
type IdentityStore interface {
	// LoadIdentity returns ErrNoIdentity when nobody is signed in.
	LoadIdentity(ctx context.Context) (models.Identity, error)
	SaveIdentity(ctx context.Context, id models.Identity) error
	ClearIdentity(ctx context.Context) error
}

// Gateway is the storage interface consumed by the reading engine.
//
// Every save replaces the stored value wholesale with no version check, so
// the last writer wins. That is only safe while a single process owns the
// data, which the bolt backend enforces with a file lock.
type Gateway interface {
	BookStore
	SessionStore
	GoalStore
	IdentityStore
	// Close ends the database connection
	Close() error
}

// KV is the key-value backend beneath a Client. Get returns a nil slice and
// no error for a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
