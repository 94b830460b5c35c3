package kernel

import (
	"time"

	"dinner/internal/pkg/errs"
	"dinner/internal/pkg/guard"
)

// Window is the calendar-day span used as the unit of inventory capacity
// accounting. All reservations for deliveries on the same day share one
// window, regardless of the delivery hour.
//
// A window always covers [00:00:00, 23:59:59.999999999] of a single day in
// the delivery time's location. Windows are value objects: two windows are
// equal when they start at the same instant.
type Window struct {
	start time.Time
	end   time.Time

	guard guard.ConstructorGuard
}

// NewWindowForTime resolves the calendar-day window containing t.
//
// Returns a validation error if t is the zero time.
func NewWindowForTime(t time.Time) (Window, error) {
	if t.IsZero() {
		return Window{}, errs.NewValueIsRequiredError("time")
	}

	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())

	return Window{
		start: start,
		end:   start.AddDate(0, 0, 1).Add(-time.Nanosecond),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the window was created via NewWindowForTime.
func (w Window) Validate() error {
	return w.guard.Validate(errs.NewValueIsInvalidError("window is not constructed"))
}

// Start returns the first instant of the window (00:00:00 of the day).
func (w Window) Start() time.Time {
	return w.start
}

// End returns the last instant of the window (23:59:59.999999999 of the day).
func (w Window) End() time.Time {
	return w.end
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

// IsEqual reports whether both windows cover the same calendar day.
func (w Window) IsEqual(other Window) bool {
	return w.start.Equal(other.start)
}

// IsPast reports whether the whole window lies before now.
func (w Window) IsPast(now time.Time) bool {
	return w.end.Before(now)
}

// DaysUntil returns the number of whole calendar days between the date of
// from and the date of to. Same-day returns 0, tomorrow returns 1, yesterday
// returns -1. Time-of-day is ignored on both sides.
func DaysUntil(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	fromDate := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(toDate.Sub(fromDate).Hours() / 24)
}
