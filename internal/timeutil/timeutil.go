// Package timeutil provides utility functions and types for working with
// calendar days and reporting periods.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60
	secondsInAnHour  = 3600
)

// DaysInAWeek is the length of the statistics window.
const DaysInAWeek = 7

// DateLayout is the layout of a calendar date key.
const DateLayout = "2006-01-02"

type Period string

const (
	PeriodAllTime   Period = "all-time"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	Period7Days     Period = "7days"
	Period14Days    Period = "14days"
	Period30Days    Period = "30days"
	Period90Days    Period = "90days"
	Period365Days   Period = "365days"
)

var Range = map[Period]int{
	PeriodAllTime:   0,
	PeriodToday:     0,
	PeriodYesterday: -1,
	Period7Days:     -6,
	Period14Days:    -13,
	Period30Days:    -29,
	Period90Days:    -89,
	Period365Days:   -364,
}

var PeriodCollection = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodYesterday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	Period365Days,
}

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// FormatClock formats a number of seconds as HH:MM:SS.
func FormatClock(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}

	return fmt.Sprintf(
		"%02d:%02d:%02d",
		total/secondsInAnHour,
		total/secondsInAMinute%minutesInAnHour,
		total%secondsInAMinute,
	)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// DateKey returns the calendar date of t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// PeriodRange returns the [start, end) bounds of a reporting period relative
// to now. The all-time period starts at the zero time.
func PeriodRange(period Period, now time.Time) (start, end time.Time) {
	today := RoundToStart(now)
	end = today.AddDate(0, 0, 1)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case PeriodAllTime:
		return time.Time{}, end
	case PeriodYesterday:
		start = today.AddDate(0, 0, Range[period])
		return start, today
	default:
		start = today.AddDate(0, 0, Range[period])
	}

	return start, end
}

// FromStr parses a human-friendly date such as "yesterday", "3 days ago" or
// "2026-10-01" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.ParseInLocation(DateLayout, s, now.Location()); err == nil {
		return t, nil
	}

	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse %q as a date: %w", s, err)
	}

	return dt.Time, nil
}

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
