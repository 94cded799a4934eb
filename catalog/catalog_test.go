package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ayoisaiah/readtime/catalog"
	"github.com/ayoisaiah/readtime/events"
	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/testutil"
	"github.com/ayoisaiah/readtime/store"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.events = append(r.events, e)
}

var epoch = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newCatalog(t *testing.T) (*catalog.Catalog, *store.Client, *recorder) {
	t.Helper()

	ctx := context.Background()

	db, err := store.New(ctx, store.NewMemory())
	require.NoError(t, err)

	rec := &recorder{}

	c, err := catalog.Load(
		ctx,
		db,
		catalog.WithClock(&testutil.FixedClock{T: epoch}),
		catalog.WithPublisher(rec),
	)
	require.NoError(t, err)

	return c, db, rec
}

func TestAdd(t *testing.T) {
	testCases := []struct {
		name  string
		book  models.Book
		valid bool
	}{
		{
			name:  "valid book",
			book:  models.Book{Title: " Dune ", Author: "Frank Herbert", TotalPages: 412},
			valid: true,
		},
		{
			name: "empty title",
			book: models.Book{Title: "  ", Author: "Frank Herbert", TotalPages: 412},
		},
		{
			name: "empty author",
			book: models.Book{Title: "Dune", TotalPages: 412},
		},
		{
			name: "zero pages",
			book: models.Book{Title: "Dune", Author: "Frank Herbert"},
		},
		{
			name: "negative pages",
			book: models.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: -4},
		},
		{
			name: "initial page past the end",
			book: models.Book{
				Title:       "Dune",
				Author:      "Frank Herbert",
				TotalPages:  10,
				CurrentPage: 11,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, db, rec := newCatalog(t)

			book, err := c.Add(context.Background(), tc.book)
			if !tc.valid {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
				assert.Empty(t, c.List())
				assert.Empty(t, rec.events)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Dune", book.Title)
			assert.NotEmpty(t, book.ID)
			assert.Equal(t, epoch, book.DateAdded)
			assert.NotNil(t, book.Notes)
			assert.Equal(t, []events.Event{events.BookAdded{BookID: book.ID}}, rec.events)

			stored, err := db.LoadBooks(context.Background())
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Equal(t, book.ID, stored[0].ID)
		})
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	c, _, _ := newCatalog(t)
	ctx := context.Background()

	book := models.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert", TotalPages: 10}

	_, err := c.Add(ctx, book)
	require.NoError(t, err)

	_, err = c.Add(ctx, book)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateProgress(t *testing.T) {
	c, db, rec := newCatalog(t)
	ctx := context.Background()

	book, err := c.Add(ctx, models.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 10})
	require.NoError(t, err)

	require.NoError(t, c.UpdateProgress(ctx, book.ID, 10))

	got, err := c.Get(book.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.CurrentPage)
	assert.Contains(t, rec.events, events.Event(
		events.ReadingProgressUpdated{BookID: book.ID, Page: 10},
	))

	err = c.UpdateProgress(ctx, book.ID, 11)
	require.ErrorIs(t, err, catalog.ErrPageOutOfRange)

	err = c.UpdateProgress(ctx, book.ID, -1)
	require.ErrorIs(t, err, catalog.ErrPageOutOfRange)

	err = c.UpdateProgress(ctx, "missing", 1)
	require.ErrorIs(t, err, catalog.ErrBookNotFound)
	assert.True(t, apperr.IsNotFound(err))

	stored, err := db.LoadBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stored[0].CurrentPage)
}

func TestUpdateProgressAcceptsExactlyTheValidRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()

		db, err := store.New(ctx, store.NewMemory())
		if err != nil {
			t.Fatal(err)
		}

		c, err := catalog.Load(ctx, db)
		if err != nil {
			t.Fatal(err)
		}

		total := rapid.IntRange(1, 2000).Draw(t, "total")
		current := rapid.IntRange(0, total).Draw(t, "current")
		page := rapid.IntRange(-50, total+50).Draw(t, "page")

		book, err := c.Add(ctx, models.Book{
			Title:       "t",
			Author:      "a",
			TotalPages:  total,
			CurrentPage: current,
		})
		if err != nil {
			t.Fatal(err)
		}

		err = c.UpdateProgress(ctx, book.ID, page)

		got, _ := c.Get(book.ID)

		if page >= 0 && page <= total {
			if err != nil {
				t.Fatalf("page %d of %d rejected: %v", page, total, err)
			}

			if got.CurrentPage != page {
				t.Fatalf("expected page %d, got %d", page, got.CurrentPage)
			}

			return
		}

		if !apperr.IsValidation(err) {
			t.Fatalf("page %d of %d: expected validation error, got %v", page, total, err)
		}

		if got.CurrentPage != current {
			t.Fatalf("rejected update changed page to %d", got.CurrentPage)
		}
	})
}

func TestRemoveIsIdempotent(t *testing.T) {
	c, db, _ := newCatalog(t)
	ctx := context.Background()

	a, err := c.Add(ctx, models.Book{Title: "A", Author: "x", TotalPages: 1})
	require.NoError(t, err)

	b, err := c.Add(ctx, models.Book{Title: "B", Author: "y", TotalPages: 1})
	require.NoError(t, err)

	require.NoError(t, c.Remove(ctx, a.ID))
	require.NoError(t, c.Remove(ctx, a.ID))
	require.NoError(t, c.Remove(ctx, "never-existed"))

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	stored, err := db.LoadBooks(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestListPreservesInsertionOrderAndIsACopy(t *testing.T) {
	c, _, _ := newCatalog(t)
	ctx := context.Background()

	for _, title := range []string{"Zeta", "Alpha", "Mu"} {
		_, err := c.Add(ctx, models.Book{Title: title, Author: "x", TotalPages: 5})
		require.NoError(t, err)
	}

	list := c.List()
	assert.Equal(t, "Zeta", list[0].Title)
	assert.Equal(t, "Alpha", list[1].Title)
	assert.Equal(t, "Mu", list[2].Title)

	list[0].Title = "changed"
	assert.Equal(t, "Zeta", c.List()[0].Title)
}

func TestAddNote(t *testing.T) {
	c, _, _ := newCatalog(t)
	ctx := context.Background()

	book, err := c.Add(ctx, models.Book{Title: "Dune", Author: "x", TotalPages: 5})
	require.NoError(t, err)

	note, err := c.AddNote(ctx, book.ID, "  fear is the mind-killer ")
	require.NoError(t, err)
	assert.Equal(t, "fear is the mind-killer", note.Content)
	assert.Equal(t, epoch, note.Timestamp)

	_, err = c.AddNote(ctx, book.ID, " ")
	assert.True(t, apperr.IsValidation(err))

	_, err = c.AddNote(ctx, "missing", "text")
	assert.True(t, apperr.IsNotFound(err))

	got, err := c.Get(book.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, note.ID, got.Notes[0].ID)
}

func TestSearchIgnoresCaseAndAccents(t *testing.T) {
	c, _, _ := newCatalog(t)
	ctx := context.Background()

	_, err := c.Add(ctx, models.Book{Title: "Germinal", Author: "Émile Zola", TotalPages: 5})
	require.NoError(t, err)

	_, err = c.Add(ctx, models.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 5})
	require.NoError(t, err)

	found := c.Search("EMILE")
	require.Len(t, found, 1)
	assert.Equal(t, "Germinal", found[0].Title)

	assert.Len(t, c.Search("dun"), 1)
	assert.Len(t, c.Search(""), 2)
	assert.Empty(t, c.Search("tolstoy"))
}

func TestSorted(t *testing.T) {
	c, _, _ := newCatalog(t)
	ctx := context.Background()

	books := []models.Book{
		{Title: "Vol 10", Author: "x", TotalPages: 10, CurrentPage: 1, DateAdded: epoch},
		{Title: "Vol 2", Author: "x", TotalPages: 10, CurrentPage: 9, DateAdded: epoch.Add(-time.Hour)},
		{Title: "vol 1", Author: "x", TotalPages: 10, CurrentPage: 5, DateAdded: epoch.Add(time.Hour)},
	}

	for _, b := range books {
		_, err := c.Add(ctx, b)
		require.NoError(t, err)
	}

	titles := func(bs []models.Book) []string {
		out := make([]string, len(bs))
		for i := range bs {
			out[i] = bs[i].Title
		}

		return out
	}

	assert.Equal(t, []string{"vol 1", "Vol 2", "Vol 10"}, titles(c.Sorted(catalog.SortTitle)))
	assert.Equal(t, []string{"Vol 2", "vol 1", "Vol 10"}, titles(c.Sorted(catalog.SortProgress)))
	assert.Equal(t, []string{"Vol 2", "Vol 10", "vol 1"}, titles(c.Sorted(catalog.SortAdded)))
	assert.Equal(t, []string{"Vol 10", "Vol 2", "vol 1"}, titles(c.List()))
}

func TestResolve(t *testing.T) {
	c, _, _ := newCatalog(t)
	ctx := context.Background()

	_, err := c.Add(ctx, models.Book{ID: "abc123", Title: "Dune", Author: "Frank Herbert", TotalPages: 5})
	require.NoError(t, err)

	_, err = c.Add(ctx, models.Book{ID: "abd456", Title: "Dune Messiah", Author: "Frank Herbert", TotalPages: 5})
	require.NoError(t, err)

	book, err := c.Resolve("abc123")
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	book, err = c.Resolve("abd")
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", book.Title)

	_, err = c.Resolve("ab")
	assert.True(t, apperr.IsValidation(err))

	book, err = c.Resolve("messiah")
	require.NoError(t, err)
	assert.Equal(t, "abd456", book.ID)

	_, err = c.Resolve("dune")
	assert.True(t, apperr.IsValidation(err))

	_, err = c.Resolve("nothing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestLoadDegradesOnCorruptData(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	require.NoError(t, kv.Put(ctx, store.KeyBooks, []byte(`{"broken"`)))

	db, err := store.New(ctx, kv)
	require.NoError(t, err)

	c, err := catalog.Load(ctx, db)
	require.NoError(t, err)

	assert.Empty(t, c.List())
	require.ErrorIs(t, c.Warning(), store.ErrCorrupt)
}

func TestPageCountRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := catalog.PageCount(path)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = catalog.PageCount(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
}

var errDiskHiccup = errors.New("disk hiccup")

// goalFailingKV fails goal state writes once release is closed, and closes
// reached when an identity is written.
type goalFailingKV struct {
	*store.MemoryKV
	release chan struct{}
	reached chan struct{}
}

func (k *goalFailingKV) Put(ctx context.Context, key string, value []byte) error {
	switch key {
	case store.KeyGoalState:
		<-k.release
		return errDiskHiccup
	case store.KeyIdentity:
		defer close(k.reached)
	}

	return k.MemoryKV.Put(ctx, key, value)
}

func TestAddAfterFailedBackgroundWrite(t *testing.T) {
	ctx := context.Background()

	kv := &goalFailingKV{
		MemoryKV: store.NewMemory(),
		release:  make(chan struct{}),
		reached:  make(chan struct{}),
	}

	db, err := store.New(ctx, kv)
	require.NoError(t, err)

	w := store.NewAsyncWriter(db, 4)
	defer w.Close()

	cat, err := catalog.Load(ctx, w, catalog.WithClock(&testutil.FixedClock{T: epoch}))
	require.NoError(t, err)

	require.NoError(t, w.SaveGoalState(ctx, models.DailyGoalState{DailyGoalMinutes: 30}))
	require.NoError(t, w.SaveIdentity(ctx, models.Identity{UserID: "u-1"}))

	close(kv.release)
	<-kv.reached

	dune := models.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 412}

	_, err = cat.Add(ctx, dune)
	require.ErrorIs(t, err, errDiskHiccup)

	stored, err := w.LoadBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, cat.List())
	assert.Empty(t, stored)

	_, err = cat.Add(ctx, dune)
	require.NoError(t, err)

	stored, err = w.LoadBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, cat.List(), 1)
	assert.Len(t, stored, 1)
}
