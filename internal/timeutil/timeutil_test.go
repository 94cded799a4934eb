package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClock(t *testing.T) {
	cases := []struct {
		want    string
		seconds float64
	}{
		{"00:00:00", 0},
		{"00:02:05", 125},
		{"01:00:01", 3601},
		{"00:00:00", -5},
		{"25:00:00", 90000},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatClock(tc.seconds))
	}
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	cases := []struct {
		wantStart time.Time
		wantEnd   time.Time
		period    Period
	}{
		{today, tomorrow, PeriodToday},
		{today.AddDate(0, 0, -1), today, PeriodYesterday},
		{today.AddDate(0, 0, -6), tomorrow, Period7Days},
		{time.Time{}, tomorrow, PeriodAllTime},
	}

	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			start, end := PeriodRange(tc.period, now)

			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func TestDateKeyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-10-18", DateKey(instant))
	assert.Equal(t, "2026-10-19", DateKey(instant.In(loc)))
}

func TestFromStrCalendarDate(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	got, err := FromStr("2026-10-01", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = FromStr("  ", now)
	assert.Error(t, err)
}

func TestMinsToHoursAndMins(t *testing.T) {
	hrs, mins := MinsToHoursAndMins(135)

	assert.Equal(t, 2, hrs)
	assert.Equal(t, 15, mins)
}
