package catalog

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/maruel/natural"
	"golang.org/x/text/unicode/norm"

	"github.com/ayoisaiah/readtime/internal/models"
)

// SortOrder is a display ordering for books.
type SortOrder string

const (
	SortAdded    SortOrder = "added"
	SortTitle    SortOrder = "title"
	SortProgress SortOrder = "progress"
)

var SortOrders = []SortOrder{SortAdded, SortTitle, SortProgress}

// fold lowercases s and strips combining marks so that "Émile" matches
// "emile".
func fold(s string) string {
	var sb strings.Builder

	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return norm.NFC.String(sb.String())
}

// Search returns the books whose title or author contains query, ignoring
// case and accents. An empty query matches every book.
func (c *Catalog) Search(query string) []models.Book {
	q := fold(strings.TrimSpace(query))

	books := c.List()
	if q == "" {
		return books
	}

	return slices.DeleteFunc(books, func(b models.Book) bool {
		return !strings.Contains(fold(b.Title), q) &&
			!strings.Contains(fold(b.Author), q)
	})
}

// Sorted returns the books in the given display order. The catalog's own
// order is not affected.
func (c *Catalog) Sorted(order SortOrder) []models.Book {
	books := c.List()

	switch order {
	case SortTitle:
		slices.SortStableFunc(books, func(a, b models.Book) int {
			ta, tb := fold(a.Title), fold(b.Title)

			switch {
			case ta == tb:
				return 0
			case natural.Less(ta, tb):
				return -1
			default:
				return 1
			}
		})
	case SortProgress:
		slices.SortStableFunc(books, func(a, b models.Book) int {
			return cmp.Compare(b.PercentRead(), a.PercentRead())
		})
	case SortAdded:
		slices.SortStableFunc(books, func(a, b models.Book) int {
			return a.DateAdded.Compare(b.DateAdded)
		})
	}

	return books
}

// Resolve finds a single book by full id, unique id prefix or unique search
// match, in that order.
func (c *Catalog) Resolve(ref string) (models.Book, error) {
	ref = strings.TrimSpace(ref)

	if book, err := c.Get(ref); err == nil {
		return book, nil
	}

	books := c.List()

	byPrefix := slices.DeleteFunc(slices.Clone(books), func(b models.Book) bool {
		return ref == "" || !strings.HasPrefix(b.ID, ref)
	})

	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
	default:
		return models.Book{}, errAmbiguousBook.Fmt(ref, len(byPrefix))
	}

	matches := c.Search(ref)
	if ref == "" || len(matches) == 0 {
		return models.Book{}, errBookNotFound.Fmt(ref)
	}

	if len(matches) > 1 {
		return models.Book{}, errAmbiguousBook.Fmt(ref, len(matches))
	}

	return matches[0], nil
}
