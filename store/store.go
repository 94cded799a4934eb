// Package store persists books, reading sessions, the daily goal state and the
// signed-in identity as JSON values in a key-value backend
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
)

// Keys under which each collection is stored.
const (
	KeyBooks     = "savedBooks"
	KeySessions  = "readingSessions"
	KeyGoalState = "dailyGoalState"
	KeyIdentity  = "userIdentity"
)

// Backend drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Client encodes the engine's collections into a KV backend.
type Client struct {
	kv KV
}

// New wraps kv and upgrades any records written in the legacy format.
func New(ctx context.Context, kv KV) (*Client, error) {
	c := &Client{kv: kv}

	if err := c.migrate(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// Open opens the backend selected by driver at path.
func Open(ctx context.Context, driver, path string) (*Client, error) {
	var (
		kv  KV
		err error
	)

	switch driver {
	case DriverBolt, "":
		kv, err = OpenBolt(path)
	case DriverSQLite:
		kv, err = OpenSQLite(ctx, path)
	case DriverMemory:
		kv = NewMemory()
	default:
		return nil, errUnknownDriver.Fmt(driver)
	}

	if err != nil {
		return nil, err
	}

	c, err := New(ctx, kv)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	return c, nil
}

// Raw returns the stored bytes under key.
func (c *Client) Raw(ctx context.Context, key string) ([]byte, error) {
	b, err := c.kv.Get(ctx, key)
	if err != nil {
		return nil, errRead.Fmt(key).Wrap(err)
	}

	return b, nil
}

func (c *Client) Close() error {
	return c.kv.Close()
}

func load[T any](ctx context.Context, kv KV, key string, v *T) (bool, error) {
	b, err := kv.Get(ctx, key)
	if err != nil {
		return false, errRead.Fmt(key).Wrap(err)
	}

	if len(b) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(b, v); err != nil {
		return false, ErrCorrupt.Fmt(key).Wrap(err)
	}

	return true, nil
}

func save(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := kv.Put(ctx, key, b); err != nil {
		return errWrite.Fmt(key).Wrap(err)
	}

	return nil
}

func (c *Client) LoadBooks(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}

	if _, err := load(ctx, c.kv, KeyBooks, &books); err != nil {
		return nil, err
	}

	return books, nil
}

func (c *Client) SaveBooks(ctx context.Context, books []models.Book) error {
	if books == nil {
		books = []models.Book{}
	}

	return save(ctx, c.kv, KeyBooks, books)
}

func (c *Client) LoadSessions(
	ctx context.Context,
) ([]models.ReadingSession, error) {
	sessions := []models.ReadingSession{}

	if _, err := load(ctx, c.kv, KeySessions, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (c *Client) SaveSessions(
	ctx context.Context,
	sessions []models.ReadingSession,
) error {
	if sessions == nil {
		sessions = []models.ReadingSession{}
	}

	return save(ctx, c.kv, KeySessions, sessions)
}

func (c *Client) LoadGoalState(
	ctx context.Context,
) (models.DailyGoalState, error) {
	var state models.DailyGoalState

	if _, err := load(ctx, c.kv, KeyGoalState, &state); err != nil {
		return models.DailyGoalState{}, err
	}

	return state, nil
}

func (c *Client) SaveGoalState(
	ctx context.Context,
	state models.DailyGoalState,
) error {
	return save(ctx, c.kv, KeyGoalState, state)
}

func (c *Client) LoadIdentity(ctx context.Context) (models.Identity, error) {
	var id models.Identity

	found, err := load(ctx, c.kv, KeyIdentity, &id)
	if err != nil {
		return models.Identity{}, err
	}

	if !found || id.UserID == "" {
		return models.Identity{}, ErrNoIdentity
	}

	return id, nil
}

func (c *Client) SaveIdentity(ctx context.Context, id models.Identity) error {
	return save(ctx, c.kv, KeyIdentity, id)
}

func (c *Client) ClearIdentity(ctx context.Context) error {
	if err := c.kv.Delete(ctx, KeyIdentity); err != nil {
		return errWrite.Fmt(KeyIdentity).Wrap(err)
	}

	return nil
}

var (
	// ErrCorrupt matches load errors caused by undecodable stored data.
	ErrCorrupt = &apperr.Error{
		Message: "stored %s could not be decoded",
		Kind:    apperr.KindPersistence,
	}

	// ErrNoIdentity is returned by LoadIdentity when nobody is signed in.
	ErrNoIdentity = &apperr.Error{
		Message: "not signed in",
		Kind:    apperr.KindNotFound,
	}

	errRead = &apperr.Error{
		Message: "reading %s failed",
		Kind:    apperr.KindPersistence,
	}

	errWrite = &apperr.Error{
		Message: "writing %s failed",
		Kind:    apperr.KindPersistence,
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver %q: must be bolt or sqlite",
		Kind:    apperr.KindValidation,
	}

	errAlreadyRunning = &apperr.Error{
		Message: "is readtime already running? Only one instance can be active at a time",
		Kind:    apperr.KindPersistence,
	}

	errClosed = &apperr.Error{
		Message: "store is closed",
		Kind:    apperr.KindPersistence,
	}
)
