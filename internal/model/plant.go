// Package model holds the plant collection data types and the event-log
// invariants: logs are deduplicated on insert, kept sorted descending by
// date, and never mutated in place — every operation returns a fresh log.
package model

import (
	"fmt"
	"sort"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/errs"
)

// WaterType tags what a watering included.
type WaterType string

const (
	WaterOnly                   WaterType = "WaterOnly"
	WaterAndFertilizer          WaterType = "WaterAndFertilizer"
	WaterAndActivator           WaterType = "WaterAndActivator"
	WaterFertilizerAndActivator WaterType = "WaterFertilizerAndActivator"
)

// WaterTypes lists the valid tags in display order.
var WaterTypes = []WaterType{
	WaterOnly,
	WaterAndFertilizer,
	WaterAndActivator,
	WaterFertilizerAndActivator,
}

// Valid reports whether t is one of the four known tags.
func (t WaterType) Valid() bool {
	switch t {
	case WaterOnly, WaterAndFertilizer, WaterAndActivator, WaterFertilizerAndActivator:
		return true
	}
	return false
}

// TranslationKey maps the tag to its localized label.
func (t WaterType) TranslationKey() string {
	switch t {
	case WaterAndFertilizer:
		return config.TKeyWaterFertilizer
	case WaterAndActivator:
		return config.TKeyWaterActivator
	case WaterFertilizerAndActivator:
		return config.TKeyWaterComplex
	default:
		return config.TKeyWaterOnly
	}
}

// WaterLogEntry is one recorded watering. Entries are owned by their plant
// and are never mutated after insertion.
type WaterLogEntry struct {
	Date dateutil.CalendarDate `json:"date"`
	Type WaterType             `json:"type"`
}

// WaterLog is a watering history sorted descending by date: index 0 is the
// last watering. Same-date entries keep their insertion order (stable sort),
// so the order is deterministic even where the date alone does not decide.
type WaterLog []WaterLogEntry

// Insert returns the log with {date, type} added, re-sorted descending.
// An entry with identical date and type already present makes the insert a
// no-op; the second return value reports whether anything was added.
func (l WaterLog) Insert(date dateutil.CalendarDate, t WaterType) (WaterLog, bool) {
	for _, e := range l {
		if e.Date == date && e.Type == t {
			return l, false
		}
	}
	out := make(WaterLog, 0, len(l)+1)
	out = append(out, l...)
	out = append(out, WaterLogEntry{Date: date, Type: t})
	out.sortDesc()
	return out, true
}

// RemoveAt returns the log without the entry at index i.
func (l WaterLog) RemoveAt(i int) (WaterLog, error) {
	if i < 0 || i >= len(l) {
		return l, fmt.Errorf("%w: %d of %d", errs.ErrIndexOutOfRange, i, len(l))
	}
	out := make(WaterLog, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, nil
}

// Latest returns the most recent entry, false when the log is empty.
func (l WaterLog) Latest() (WaterLogEntry, bool) {
	if len(l) == 0 {
		return WaterLogEntry{}, false
	}
	return l[0], true
}

func (l WaterLog) sortDesc() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[j].Date.Before(l[i].Date)
	})
}

// RepottingLogEntry is one recorded repotting.
type RepottingLogEntry struct {
	Date dateutil.CalendarDate `json:"date"`
}

// RepottingLog mirrors WaterLog without a type field: dedup is by date only.
type RepottingLog []RepottingLogEntry

// Insert returns the log with the date added unless already recorded.
func (l RepottingLog) Insert(date dateutil.CalendarDate) (RepottingLog, bool) {
	for _, e := range l {
		if e.Date == date {
			return l, false
		}
	}
	out := make(RepottingLog, 0, len(l)+1)
	out = append(out, l...)
	out = append(out, RepottingLogEntry{Date: date})
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out, true
}

// RemoveAt returns the log without the entry at index i.
func (l RepottingLog) RemoveAt(i int) (RepottingLog, error) {
	if i < 0 || i >= len(l) {
		return l, fmt.Errorf("%w: %d of %d", errs.ErrIndexOutOfRange, i, len(l))
	}
	out := make(RepottingLog, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, nil
}

// Latest returns the most recent entry, false when the log is empty.
func (l RepottingLog) Latest() (RepottingLogEntry, bool) {
	if len(l) == 0 {
		return RepottingLogEntry{}, false
	}
	return l[0], true
}

// Plant is one registered plant. EntryDate is the registration date and is
// immutable after creation.
type Plant struct {
	ID           int
	Name         string
	SpeciesID    int
	EntryDate    dateutil.CalendarDate
	PurchaseDate *dateutil.CalendarDate
	WaterLog     WaterLog
	RepottingLog RepottingLog
}

// NewPlant registers a plant with one initial watering on the entry date.
func NewPlant(id int, name string, speciesID int, entryDate dateutil.CalendarDate, firstWatering WaterType) Plant {
	log, _ := WaterLog(nil).Insert(entryDate, firstWatering)
	return Plant{
		ID:        id,
		Name:      name,
		SpeciesID: speciesID,
		EntryDate: entryDate,
		WaterLog:  log,
	}
}

// LastWatering returns the most recent watering, falling back to the entry
// date (plain water) when the log is empty. A registered plant therefore
// always has a "last watering" to schedule from.
func (p Plant) LastWatering() WaterLogEntry {
	if e, ok := p.WaterLog.Latest(); ok {
		return e
	}
	return WaterLogEntry{Date: p.EntryDate, Type: WaterOnly}
}
