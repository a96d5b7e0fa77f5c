// Package engine implements the care-scheduling core: pure functions
// deriving watering due dates, urgency classification and repotting
// reminders from a plant's event history, its species' seasonal care
// profile and the current date. Nothing here reads or writes persistent
// state; the hosting application passes the collection and "now" in and
// consumes derived view models.
package engine

import (
	"encoding/json"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/species"
)

// Reason explains why a next-watering date is absent. Callers must branch
// on it rather than treat an absent date as an error: a dormant species and
// a species with missing data render differently.
type Reason string

const (
	// ReasonNone means a concrete date was computed.
	ReasonNone Reason = "none"
	// ReasonDormant means the species is on a no-watering schedule this season.
	ReasonDormant Reason = "dormant"
	// ReasonUnknown means the interval (or the last event) is missing.
	ReasonUnknown Reason = "unknown"
)

// NextWatering is the outcome of the due-date computation. Date is only
// meaningful when Reason is ReasonNone.
type NextWatering struct {
	Date   dateutil.CalendarDate
	Reason Reason
}

// Scheduled reports whether a concrete due date exists.
func (n NextWatering) Scheduled() bool {
	return n.Reason == ReasonNone
}

// MarshalJSON omits the date entirely when no schedule exists, so consumers
// of the JSON feed never see a zero-value placeholder date.
func (n NextWatering) MarshalJSON() ([]byte, error) {
	type payload struct {
		Date   *dateutil.CalendarDate `json:"date,omitempty"`
		Reason Reason                 `json:"reason"`
	}
	p := payload{Reason: n.Reason}
	if n.Scheduled() {
		d := n.Date
		p.Date = &d
	}
	return json.Marshal(p)
}

// NextWateringDate derives the next due date from the last watering and the
// seasonal interval. A missing last event or missing interval data yields
// ReasonUnknown; a dormancy interval yields ReasonDormant.
func NextWateringDate(last *dateutil.CalendarDate, interval species.Interval) NextWatering {
	if last == nil {
		return NextWatering{Reason: ReasonUnknown}
	}
	if interval.IsDormant() {
		return NextWatering{Reason: ReasonDormant}
	}
	days, ok := interval.DaysValue()
	if !ok {
		return NextWatering{Reason: ReasonUnknown}
	}
	return NextWatering{Date: last.AddDays(days), Reason: ReasonNone}
}

// DaysSince counts whole days from the last event to asOf. A negative
// result (event recorded in the future) is preserved, not clamped: it
// signals a data-entry anomaly the caller should surface.
func DaysSince(last, asOf dateutil.CalendarDate) int {
	return dateutil.DaysBetween(asOf, last)
}

// AlertLevel is the urgency band of an upcoming watering.
type AlertLevel string

const (
	Overdue AlertLevel = "overdue"
	DueSoon AlertLevel = "dueSoon"
	OnTrack AlertLevel = "onTrack"
)

// Alert carries the urgency classification. OverdueDays is only set for
// Overdue: due today counts as one day overdue.
type Alert struct {
	Level       AlertLevel `json:"level"`
	DaysUntil   int        `json:"daysUntil"`
	OverdueDays int        `json:"overdueDays,omitempty"`
}

// WateringAlert classifies the urgency of a due date. It only applies to
// concrete intervals of at most config.MaxAlertIntervalDays; long-cycle and
// dormant species get a plain elapsed-days message instead, reported by the
// false return.
//
// The boundary is exact: daysUntil == 0 (due today) is Overdue with
// magnitude 1, daysUntil in 1..3 is DueSoon, beyond that OnTrack.
func WateringAlert(next dateutil.CalendarDate, asOf dateutil.CalendarDate, interval species.Interval) (Alert, bool) {
	days, ok := interval.DaysValue()
	if !ok || days > config.MaxAlertIntervalDays {
		return Alert{}, false
	}

	daysUntil := dateutil.DaysBetween(next, asOf)
	switch {
	case daysUntil <= 0:
		return Alert{Level: Overdue, DaysUntil: daysUntil, OverdueDays: -daysUntil + 1}, true
	case daysUntil <= config.DueSoonThresholdDays:
		return Alert{Level: DueSoon, DaysUntil: daysUntil}, true
	default:
		return Alert{Level: OnTrack, DaysUntil: daysUntil}, true
	}
}

// RepottingDue reports whether a repotting reminder should fire: the
// current month must fall inside the recommended window (which may wrap the
// year boundary) and the last repotting must be absent or at least
// config.RepottingMinElapsedDays old. The 365-day contract is calendar-day
// subtraction; leap-year exactness is deliberately not attempted.
func RepottingDue(lastRepotting *dateutil.CalendarDate, window species.MonthRange, asOf dateutil.CalendarDate) bool {
	if !window.Contains(asOf.Month) {
		return false
	}
	if lastRepotting == nil {
		return true
	}
	return dateutil.DaysBetween(asOf, *lastRepotting) >= config.RepottingMinElapsedDays
}
