// Package catalog owns the user's books and their page progress
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ayoisaiah/readtime/events"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/store"
)

// Catalog is the in-memory book collection. Every mutation rewrites the whole
// collection through the store.
type Catalog struct {
	db      store.BookStore
	bus     events.Publisher
	clock   timeutil.Clock
	warning error
	books   []models.Book
	mu      sync.RWMutex
}

type Option func(*Catalog)

// WithClock sets the clock used to stamp new books and notes.
func WithClock(c timeutil.Clock) Option {
	return func(cat *Catalog) {
		cat.clock = c
	}
}

// WithPublisher sets where catalog events are sent.
func WithPublisher(p events.Publisher) Option {
	return func(cat *Catalog) {
		cat.bus = p
	}
}

// Load reads the stored books. A collection that cannot be decoded is
// replaced by an empty catalog and reported through Warning.
func Load(ctx context.Context, db store.BookStore, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		db:    db,
		bus:   events.Discard,
		clock: timeutil.SystemClock{},
	}

	for _, opt := range opts {
		opt(c)
	}

	books, err := db.LoadBooks(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return nil, err
		}

		slog.WarnContext(ctx, "discarding unreadable book collection",
			slog.Any("error", err),
		)

		c.warning = err
		books = []models.Book{}
	}

	c.books = books

	return c, nil
}

// Warning returns the decode error that caused the stored books to be
// discarded on load, if any.
func (c *Catalog) Warning() error {
	return c.warning
}

func validPage(page, total int) bool {
	return page >= 0 && page <= total
}

// Add validates book and appends it to the catalog.
func (c *Catalog) Add(ctx context.Context, book models.Book) (models.Book, error) {
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)

	if book.Title == "" {
		return models.Book{}, errEmptyTitle
	}

	if book.Author == "" {
		return models.Book{}, errEmptyAuthor
	}

	if book.TotalPages <= 0 {
		return models.Book{}, errTotalPages.Fmt(book.TotalPages)
	}

	if !validPage(book.CurrentPage, book.TotalPages) {
		return models.Book{}, errPageOutOfRange.Fmt(
			book.CurrentPage,
			book.TotalPages,
		)
	}

	if book.ID == "" {
		book.ID = uuid.NewString()
	}

	if book.DateAdded.IsZero() {
		book.DateAdded = c.clock.Now()
	}

	if book.Notes == nil {
		book.Notes = []models.Note{}
	}

	c.mu.Lock()

	if c.index(book.ID) != -1 {
		c.mu.Unlock()
		return models.Book{}, errDuplicateID.Fmt(book.ID)
	}

	books := append(slices.Clone(c.books), book.Clone())

	if err := c.db.SaveBooks(ctx, books); err != nil {
		c.mu.Unlock()
		return models.Book{}, err
	}

	c.books = books
	c.mu.Unlock()

	slog.InfoContext(ctx, "book added",
		slog.String("id", book.ID),
		slog.String("title", book.Title),
	)

	c.bus.Publish(events.BookAdded{BookID: book.ID})

	return book.Clone(), nil
}

// UpdateProgress sets the current page of a book. Pages outside
// 0..totalPages are rejected, never clamped.
func (c *Catalog) UpdateProgress(ctx context.Context, bookID string, page int) error {
	c.mu.Lock()

	i := c.index(bookID)
	if i == -1 {
		c.mu.Unlock()
		return errBookNotFound.Fmt(bookID)
	}

	if !validPage(page, c.books[i].TotalPages) {
		c.mu.Unlock()
		return errPageOutOfRange.Fmt(page, c.books[i].TotalPages)
	}

	books := slices.Clone(c.books)
	books[i].CurrentPage = page

	if err := c.db.SaveBooks(ctx, books); err != nil {
		c.mu.Unlock()
		return err
	}

	c.books = books
	c.mu.Unlock()

	slog.InfoContext(ctx, "reading progress updated",
		slog.String("id", bookID),
		slog.Int("page", page),
	)

	c.bus.Publish(events.ReadingProgressUpdated{BookID: bookID, Page: page})

	return nil
}

// ValidatePage reports the error UpdateProgress would return for page
// without changing anything.
func (c *Catalog) ValidatePage(bookID string, page int) error {
	book, err := c.Get(bookID)
	if err != nil {
		return err
	}

	if !validPage(page, book.TotalPages) {
		return errPageOutOfRange.Fmt(page, book.TotalPages)
	}

	return nil
}

// Remove deletes a book. Removing an unknown id is not an error.
func (c *Catalog) Remove(ctx context.Context, bookID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(bookID)
	if i == -1 {
		return nil
	}

	books := slices.Delete(slices.Clone(c.books), i, i+1)

	if err := c.db.SaveBooks(ctx, books); err != nil {
		return err
	}

	c.books = books

	slog.InfoContext(ctx, "book removed", slog.String("id", bookID))

	return nil
}

// AddNote appends a note to a book.
func (c *Catalog) AddNote(
	ctx context.Context,
	bookID, content string,
) (models.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Note{}, errEmptyNote
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.index(bookID)
	if i == -1 {
		return models.Note{}, errBookNotFound.Fmt(bookID)
	}

	note := models.Note{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: c.clock.Now(),
	}

	books := slices.Clone(c.books)
	books[i] = books[i].Clone()
	books[i].Notes = append(books[i].Notes, note)

	if err := c.db.SaveBooks(ctx, books); err != nil {
		return models.Note{}, err
	}

	c.books = books

	return note, nil
}

// List returns a copy of the books in insertion order.
func (c *Catalog) List() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Book, len(c.books))
	for i := range c.books {
		out[i] = c.books[i].Clone()
	}

	return out
}

// Get returns the book with the given id.
func (c *Catalog) Get(bookID string) (models.Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.index(bookID)
	if i == -1 {
		return models.Book{}, errBookNotFound.Fmt(bookID)
	}

	return c.books[i].Clone(), nil
}

// Titles maps book ids to titles.
func (c *Catalog) Titles() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m := make(map[string]string, len(c.books))
	for i := range c.books {
		m[c.books[i].ID] = c.books[i].Title
	}

	return m
}

// index must be called with the lock held.
func (c *Catalog) index(bookID string) int {
	return slices.IndexFunc(c.books, func(b models.Book) bool {
		return b.ID == bookID
	})
}
