// Package goal tracks today's reading time against the daily goal
package goal

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/ayoisaiah/readtime/events"
	"github.com/ayoisaiah/readtime/internal/apperr"
	"github.com/ayoisaiah/readtime/internal/models"
	"github.com/ayoisaiah/readtime/internal/timeutil"
	"github.com/ayoisaiah/readtime/store"
)

const (
	DefaultMinutes = 30
	maxMinutes     = 24 * 60
)

// Presets are the goal lengths offered in pickers, in minutes.
var Presets = []float64{15, 30, 45, 60, 90, 120}

var errGoal = &apperr.Error{
	Message: "daily goal must be between 1 minute and 24 hours, got %v minutes",
	Kind:    apperr.KindValidation,
}

// NewState returns the state used on first run.
func NewState(now time.Time, defaultMinutes float64) models.DailyGoalState {
	if defaultMinutes <= 0 {
		defaultMinutes = DefaultMinutes
	}

	return models.DailyGoalState{
		DailyGoalMinutes: defaultMinutes,
		LastResetDate:    timeutil.DateKey(now),
	}
}

// Rollover zeroes the accumulated time when now falls on a different
// calendar day than the last reset. It reports whether a reset happened.
// Applying it twice on the same day changes nothing the second time.
func Rollover(
	state models.DailyGoalState,
	now time.Time,
) (models.DailyGoalState, bool) {
	today := timeutil.DateKey(now)
	if state.LastResetDate == today {
		return state, false
	}

	state.LastResetDate = today
	state.AccumulatedSecondsToday = 0

	return state, true
}

// Progress is the fraction of the goal met today, capped at 1. A
// non-positive goal has no progress.
func Progress(state models.DailyGoalState) float64 {
	if state.DailyGoalMinutes <= 0 {
		return 0
	}

	return math.Min(
		state.AccumulatedSecondsToday/(state.DailyGoalMinutes*60),
		1,
	)
}

// Reached reports whether today's goal has been met.
func Reached(state models.DailyGoalState) bool {
	return state.DailyGoalMinutes > 0 && Progress(state) >= 1
}

// SetGoal changes the daily goal.
func SetGoal(
	state models.DailyGoalState,
	minutes float64,
) (models.DailyGoalState, error) {
	if math.IsNaN(minutes) || minutes <= 0 || minutes > maxMinutes {
		return state, errGoal.Fmt(minutes)
	}

	state.DailyGoalMinutes = minutes

	return state, nil
}

// LoadState reads the stored goal state, initialising it on first use and
// applying any pending rollover. The state is saved when either changed it,
// and a rollover is published to pub, which may be nil. Undecodable data is
// replaced by a fresh state.
func LoadState(
	ctx context.Context,
	db store.GoalStore,
	pub events.Publisher,
	now time.Time,
	defaultMinutes float64,
) (models.DailyGoalState, error) {
	state, err := db.LoadGoalState(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return models.DailyGoalState{}, err
		}

		slog.WarnContext(ctx, "discarding unreadable goal state",
			slog.Any("error", err),
		)

		state = models.DailyGoalState{}
	}

	changed := false

	if state.IsZero() || state.DailyGoalMinutes <= 0 {
		fresh := NewState(now, defaultMinutes)
		fresh.AccumulatedSecondsToday = state.AccumulatedSecondsToday

		if state.LastResetDate != "" {
			fresh.LastResetDate = state.LastResetDate
		}

		state = fresh
		changed = true
	}

	state, reset := Rollover(state, now)

	if changed || reset {
		if err := db.SaveGoalState(ctx, state); err != nil {
			return state, err
		}
	}

	if reset && pub != nil {
		pub.Publish(events.DailyProgressReset{Date: state.LastResetDate})
	}

	return state, nil
}
