package engine

import (
	"time"

	"github.com/tartampluch/go-planty/internal/dateutil"
)

// Clock abstracts time.Now() to allow deterministic testing.
// The engine derives "today" from it for all due-date computations.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the clock's current local calendar date. Time-of-day and
// UTC offset never shift the resulting day.
func Today(c Clock) dateutil.CalendarDate {
	return dateutil.FromTime(c.Now())
}
