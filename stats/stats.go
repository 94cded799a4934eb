// Package stats derives daily and weekly reading statistics from a snapshot
// of reading sessions
package stats

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"time"

	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
)

// UnknownBook labels sessions whose book is no longer in the catalog.
const UnknownBook = "Unknown book"

var errEmptyData = &apperr.Error{
	Message: "no days to compare",
	Kind:    apperr.KindEmptyData,
}

// ErrEmptyData matches BestDay on an empty week.
var ErrEmptyData = errEmptyData

// Day is the reading time on one calendar day.
type Day struct {
	Date        time.Time `json:"date"`
	MinutesRead float64   `json:"minutesRead"`
	Progress    float64   `json:"progress"`
}

// Week holds seven consecutive days, oldest first.
type Week struct {
	StartDate   time.Time `json:"startDate"`
	Days        []Day     `json:"days"`
	GoalMinutes float64   `json:"goalMinutes"`
}

// progress is minutes/goal capped at 1, or 0 for a non-positive goal.
func progress(minutes, goalMinutes float64) float64 {
	if goalMinutes <= 0 {
		return 0
	}

	return math.Min(minutes/goalMinutes, 1)
}

// Weekly computes the seven days ending on ref's calendar day. Days start at
// local midnight in ref's location.
func Weekly(
	src iter.Seq[models.ReadingSession],
	ref time.Time,
	goalMinutes float64,
) Week {
	last := timeutil.RoundToStart(ref)
	first := last.AddDate(0, 0, -(timeutil.DaysInAWeek - 1))

	bounds := make([]time.Time, timeutil.DaysInAWeek+1)
	for i := range bounds {
		bounds[i] = first.AddDate(0, 0, i)
	}

	seconds := make([]float64, timeutil.DaysInAWeek)

	for s := range src {
		if s.Timestamp.Before(bounds[0]) ||
			!s.Timestamp.Before(bounds[timeutil.DaysInAWeek]) {
			continue
		}

		for i := range timeutil.DaysInAWeek {
			if s.Timestamp.Before(bounds[i+1]) {
				seconds[i] += s.DurationSeconds
				break
			}
		}
	}

	week := Week{
		StartDate:   first,
		GoalMinutes: goalMinutes,
		Days:        make([]Day, timeutil.DaysInAWeek),
	}

	for i := range week.Days {
		minutes := seconds[i] / 60

		week.Days[i] = Day{
			Date:        bounds[i],
			MinutesRead: minutes,
			Progress:    progress(minutes, goalMinutes),
		}
	}

	return week
}

// TotalMinutes is the reading time across the week.
func (w Week) TotalMinutes() float64 {
	var total float64
	for _, d := range w.Days {
		total += d.MinutesRead
	}

	return total
}

// AverageMinutesPerDay divides the total by seven, whether or not every day
// has sessions.
func (w Week) AverageMinutesPerDay() float64 {
	return w.TotalMinutes() / timeutil.DaysInAWeek
}

// DaysAtGoal counts the days that met the goal.
func (w Week) DaysAtGoal() int {
	var n int

	for _, d := range w.Days {
		if d.MinutesRead >= w.GoalMinutes {
			n++
		}
	}

	return n
}

// GoalAchievementRate is the percentage of the seven days that met the
// goal, rounded to the nearest integer.
func (w Week) GoalAchievementRate() int {
	return timeutil.Round(
		float64(w.DaysAtGoal()) / timeutil.DaysInAWeek * 100,
	)
}

// AverageProgress is the mean daily progress.
func (w Week) AverageProgress() float64 {
	if len(w.Days) == 0 {
		return 0
	}

	var sum float64
	for _, d := range w.Days {
		sum += d.Progress
	}

	return sum / float64(len(w.Days))
}

// BestDay returns the earliest day with the most reading.
func (w Week) BestDay() (Day, error) {
	if len(w.Days) == 0 {
		return Day{}, errEmptyData
	}

	best := w.Days[0]

	for _, d := range w.Days[1:] {
		if d.MinutesRead > best.MinutesRead {
			best = d
		}
	}

	return best, nil
}

// BookTotal is the reading time spent on one book.
type BookTotal struct {
	BookID  string  `json:"bookId"`
	Title   string  `json:"title"`
	Minutes float64 `json:"minutes"`
}

// ByBook sums reading time per book for sessions in [start, end), most read
// first. titles maps book ids to titles. Sessions for ids missing from titles
// are grouped under UnknownBook.
func ByBook(
	src iter.Seq[models.ReadingSession],
	start, end time.Time,
	titles map[string]string,
) []BookTotal {
	totals := make(map[string]*BookTotal)

	var order []string

	for s := range src {
		if s.Timestamp.Before(start) || !s.Timestamp.Before(end) {
			continue
		}

		id, title := s.BookID, titles[s.BookID]
		if _, ok := titles[s.BookID]; !ok {
			id, title = "", UnknownBook
		}

		bt, ok := totals[id]
		if !ok {
			bt = &BookTotal{BookID: id, Title: title}
			totals[id] = bt
			order = append(order, id)
		}

		bt.Minutes += s.DurationSeconds / 60
	}

	out := make([]BookTotal, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}

	slices.SortStableFunc(out, func(a, b BookTotal) int {
		return cmp.Compare(b.Minutes, a.Minutes)
	})

	return out
}

// Report bundles a week with its derived figures.
type Report struct {
	BestDay              *Day        `json:"bestDay,omitempty"`
	Books                []BookTotal `json:"books"`
	Week                 Week        `json:"week"`
	TotalMinutes         float64     `json:"totalMinutes"`
	AverageMinutesPerDay float64     `json:"averageMinutesPerDay"`
	AverageProgress      float64     `json:"averageProgress"`
	GoalAchievementRate  int         `json:"goalAchievementRate"`
}

// NewReport computes the week ending on ref along with the per-book totals
// for the same days.
func NewReport(
	src iter.Seq[models.ReadingSession],
	ref time.Time,
	goalMinutes float64,
	titles map[string]string,
) Report {
	week := Weekly(src, ref, goalMinutes)

	r := Report{
		Week:                 week,
		TotalMinutes:         week.TotalMinutes(),
		AverageMinutesPerDay: week.AverageMinutesPerDay(),
		AverageProgress:      week.AverageProgress(),
		GoalAchievementRate:  week.GoalAchievementRate(),
		Books: ByBook(
			src,
			week.StartDate,
			week.StartDate.AddDate(0, 0, len(week.Days)),
			titles,
		),
	}

	if best, err := week.BestDay(); err == nil {
		r.BestDay = &best
	}

	return r
}
