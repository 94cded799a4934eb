package store

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ayoisaiah/readtime/internal/models"
)

// appleEpoch is the reference date used by the mobile app's default date
// encoding, which stored dates as seconds since 2001-01-01 UTC.
var appleEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

type legacyNote struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	Timestamp json.RawMessage `json:"timestamp"`
	Date      json.RawMessage `json:"date"`
}

type legacyBook struct {
	CoverImage    *string         `json:"coverImage"`
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	CoverImageRef string          `json:"coverImageRef"`
	DateAdded     json.RawMessage `json:"dateAdded"`
	Notes         []legacyNote    `json:"notes"`
	CurrentPage   int             `json:"currentPage"`
	TotalPages    int             `json:"totalPages"`
}

type legacySession struct {
	DurationSeconds *float64        `json:"durationSeconds"`
	Duration        *float64        `json:"duration"`
	BookID          string          `json:"bookId"`
	Timestamp       json.RawMessage `json:"timestamp"`
	Date            json.RawMessage `json:"date"`
}

// isNumber reports whether raw is a JSON number rather than a string.
func isNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	return raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')
}

// legacyTime decodes either an RFC 3339 string or a number of seconds since
// appleEpoch.
func legacyTime(raw json.RawMessage) (time.Time, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	if isNumber(raw) {
		var secs float64
		if err := json.Unmarshal(raw, &secs); err != nil {
			return time.Time{}, err
		}

		return appleEpoch.Add(time.Duration(secs * float64(time.Second))), nil
	}

	var t time.Time

	err := json.Unmarshal(raw, &t)

	return t, err
}

func migrateSessions(b []byte) ([]models.ReadingSession, bool, error) {
	var records []legacySession
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, false, err
	}

	var changed bool

	sessions := make([]models.ReadingSession, 0, len(records))

	for _, r := range records {
		s := models.ReadingSession{BookID: r.BookID}

		if r.DurationSeconds != nil {
			s.DurationSeconds = *r.DurationSeconds
		} else if r.Duration != nil {
			s.DurationSeconds = *r.Duration
			changed = true
		}

		raw := r.Timestamp
		if len(raw) == 0 {
			raw = r.Date
			changed = changed || len(raw) > 0
		}

		if isNumber(raw) {
			changed = true
		}

		ts, err := legacyTime(raw)
		if err != nil {
			return nil, false, err
		}

		s.Timestamp = ts
		sessions = append(sessions, s)
	}

	return sessions, changed, nil
}

func migrateBooks(b []byte) ([]models.Book, bool, error) {
	var records []legacyBook
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, false, err
	}

	var changed bool

	books := make([]models.Book, 0, len(records))

	for _, r := range records {
		book := models.Book{
			ID:            r.ID,
			Title:         r.Title,
			Author:        r.Author,
			CoverImageRef: r.CoverImageRef,
			CurrentPage:   r.CurrentPage,
			TotalPages:    r.TotalPages,
			Notes:         make([]models.Note, 0, len(r.Notes)),
		}

		if r.CoverImage != nil {
			book.CoverImageRef = *r.CoverImage
			changed = true
		}

		added, err := legacyTime(r.DateAdded)
		if err != nil {
			return nil, false, err
		}

		changed = changed || isNumber(r.DateAdded)
		book.DateAdded = added

		for _, n := range r.Notes {
			raw := n.Timestamp
			if len(raw) == 0 {
				raw = n.Date
				changed = true
			}

			ts, err := legacyTime(raw)
			if err != nil {
				return nil, false, err
			}

			changed = changed || isNumber(raw)

			book.Notes = append(book.Notes, models.Note{
				ID:        n.ID,
				Content:   n.Content,
				Timestamp: ts,
			})
		}

		books = append(books, book)
	}

	return books, changed, nil
}

// migrate rewrites collections stored by the mobile app, whose sessions used
// "duration" and "date" and whose dates were numbers, into the current
// encoding. Data that cannot be decoded is left alone for the loaders to
// report.
func (c *Client) migrate(ctx context.Context) error {
	b, err := c.kv.Get(ctx, KeySessions)
	if err != nil {
		return errRead.Fmt(KeySessions).Wrap(err)
	}

	if len(b) > 0 {
		sessions, changed, err := migrateSessions(b)
		if err == nil && changed {
			slog.InfoContext(ctx, "migrating legacy reading sessions",
				slog.Int("count", len(sessions)),
			)

			if err := c.SaveSessions(ctx, sessions); err != nil {
				return err
			}
		}
	}

	b, err = c.kv.Get(ctx, KeyBooks)
	if err != nil {
		return errRead.Fmt(KeyBooks).Wrap(err)
	}

	if len(b) > 0 {
		books, changed, err := migrateBooks(b)
		if err == nil && changed {
			slog.InfoContext(ctx, "migrating legacy books",
				slog.Int("count", len(books)),
			)

			if err := c.SaveBooks(ctx, books); err != nil {
				return err
			}
		}
	}

	return nil
}
