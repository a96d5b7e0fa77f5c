// Package dateutil implements calendar-date arithmetic for the scheduling
// engine. A CalendarDate is a pure year/month/day triple interpreted in the
// user's local wall-clock calendar. It is never derived from a UTC-epoch
// parse: constructing a date from an ISO string via an absolute instant
// shifts the day near midnight in negative-offset zones, which is exactly
// the class of bug the scheduler must not have.
package dateutil

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/errs"
)

// CalendarDate is a local wall-clock calendar day. The zero value is "unset".
// Two CalendarDates constructed from the same (y,m,d) compare equal.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// Date constructs a CalendarDate, normalizing out-of-range components the
// way time.Date does (e.g. Feb 30 becomes Mar 1/2).
func Date(year int, month time.Month, day int) CalendarDate {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime extracts the wall-clock calendar day of t in t's own location.
// Time-of-day and UTC offset are discarded.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Parse converts an ISO YYYY-MM-DD string into a CalendarDate. Invalid input
// (wrong layout, month 13, Feb 30) yields errs.ErrInvalidDate.
func Parse(s string) (CalendarDate, error) {
	t, err := time.Parse(config.DateFormatISO, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%s: %w: %q", config.ErrDateParse, errs.ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// String renders the canonical YYYY-MM-DD form.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is unset.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// anchor maps the calendar triple onto a fixed instant so day arithmetic is
// exact integer math. The anchor is deliberately offset-free (UTC): the
// triple itself carries the local calendar meaning, and anchoring both
// operands identically makes DST transitions and zone offsets irrelevant.
func (d CalendarDate) anchor() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later (earlier for negative n),
// with month and year rollover handled.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromTime(d.anchor().AddDate(0, 0, n))
}

// DaysBetween returns a minus b in whole days. Positive when a is later.
func DaysBetween(a, b CalendarDate) int {
	return int(a.anchor().Sub(b.anchor()) / (24 * time.Hour))
}

// Compare returns -1, 0 or +1 ordering d against o chronologically.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d == o:
		return 0
	case d.Before(o):
		return -1
	default:
		return 1
	}
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDate) Before(o CalendarDate) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d is strictly later than o.
func (d CalendarDate) After(o CalendarDate) bool {
	return o.Before(d)
}

// Midnight returns the local-midnight instant of the calendar day in loc.
// Used when handing the date to calendar encoders that want a time.Time.
func (d CalendarDate) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%s: %w: %s", config.ErrDateParse, errs.ErrInvalidDate, s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
