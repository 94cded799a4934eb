package models

import (
	"time"
)

// Note is a free-form note attached to a book.
type Note struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
}

// Book is a catalog entry with its page progress.
type Book struct {
	DateAdded     time.Time `json:"dateAdded" yaml:"dateAdded"`
	ID            string    `json:"id" yaml:"id"`
	Title         string    `json:"title" yaml:"title"`
	Author        string    `json:"author" yaml:"author"`
	CoverImageRef string    `json:"coverImageRef,omitempty" yaml:"coverImageRef,omitempty"`
	Notes         []Note    `json:"notes" yaml:"notes"`
	CurrentPage   int       `json:"currentPage" yaml:"currentPage"`
	TotalPages    int       `json:"totalPages" yaml:"totalPages"`
}

// Clone returns a copy of the book that shares no memory with b.
func (b Book) Clone() Book {
	c := b
	if b.Notes != nil {
		c.Notes = make([]Note, len(b.Notes))
		copy(c.Notes, b.Notes)
	}

	return c
}

// PercentRead reports the fraction of the book read, from 0 to 1.
func (b Book) PercentRead() float64 {
	if b.TotalPages <= 0 {
		return 0
	}

	return float64(b.CurrentPage) / float64(b.TotalPages)
}

// ReadingSession records one saved stretch of reading.
type ReadingSession struct {
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	BookID          string    `json:"bookId" yaml:"bookId"`
	DurationSeconds float64   `json:"durationSeconds" yaml:"durationSeconds"`
}

// Duration converts DurationSeconds to a time.Duration.
func (s ReadingSession) Duration() time.Duration {
	return time.Duration(s.DurationSeconds * float64(time.Second))
}

// DailyGoalState is today's accumulated reading time against the daily goal.
type DailyGoalState struct {
	// LastResetDate is the calendar date (YYYY-MM-DD) of the last reset.
	LastResetDate           string  `json:"lastResetDate" yaml:"lastResetDate"`
	DailyGoalMinutes        float64 `json:"dailyGoalMinutes" yaml:"dailyGoalMinutes"`
	AccumulatedSecondsToday float64 `json:"accumulatedSecondsToday" yaml:"accumulatedSecondsToday"`
}

// IsZero reports whether the state was never initialised.
func (s DailyGoalState) IsZero() bool {
	return s.LastResetDate == "" && s.DailyGoalMinutes == 0 &&
		s.AccumulatedSecondsToday == 0
}

// Identity is the opaque triple returned by the identity provider.
type Identity struct {
	UserID      string `json:"userId" yaml:"userId"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
}
