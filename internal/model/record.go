package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
)

// Record is the serialized plant shape used for persistence and
// import/export. Older exports carried a singular lastWatered date or a
// lastWatering {date, type} object instead of a waterLog array, and could
// lack entryDate entirely; NormalizeRecord upgrades all of these.
type Record struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	SpeciesID    SpeciesRef    `json:"speciesId"`
	EntryDate    string        `json:"entryDate,omitempty"`
	PurchaseDate string        `json:"purchaseDate,omitempty"`
	WaterLog     []WaterEvent  `json:"waterLog,omitempty"`
	RepottingLog []RepotEvent  `json:"repottingLog,omitempty"`
	LastWatered  string        `json:"lastWatered,omitempty"`  // legacy
	LastWatering *LegacyWater  `json:"lastWatering,omitempty"` // legacy
}

// WaterEvent is the wire form of a water log entry.
type WaterEvent struct {
	Date string `json:"date"`
	Type string `json:"type"`
}

// RepotEvent is the wire form of a repotting log entry.
type RepotEvent struct {
	Date string `json:"date"`
}

// LegacyWater is the pre-log single-watering record.
type LegacyWater struct {
	Date string `json:"date"`
	Type string `json:"type,omitempty"`
}

// SpeciesRef tolerates the species id being serialized as either a JSON
// number or a numeric string, both of which occur in old exports.
type SpeciesRef int

// UnmarshalJSON accepts 3 and "3" alike.
func (r *SpeciesRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = SpeciesRef(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s: speciesId %s", config.ErrStoreDecode, data)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: speciesId %q", config.ErrStoreDecode, s)
	}
	*r = SpeciesRef(n)
	return nil
}

// MarshalJSON always writes the canonical numeric form.
func (r SpeciesRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(r))
}

// NormalizeRecord converts a serialized record, legacy or canonical, into a
// Plant upholding the log invariants (dedup, descending order). Date parse
// failures propagate; they are never coerced to today. The entry date of a
// record that predates the field is backfilled from the best available
// evidence, falling back to today.
func NormalizeRecord(rec Record, today dateutil.CalendarDate) (Plant, error) {
	p := Plant{
		ID:        rec.ID,
		Name:      rec.Name,
		SpeciesID: int(rec.SpeciesID),
	}

	migrated := false

	for _, ev := range rec.WaterLog {
		date, err := dateutil.Parse(ev.Date)
		if err != nil {
			return Plant{}, err
		}
		t := WaterType(ev.Type)
		if !t.Valid() {
			t = WaterOnly
		}
		p.WaterLog, _ = p.WaterLog.Insert(date, t)
	}

	// Legacy singular fields fold into the log without duplicating an entry
	// already present for the same date.
	if rec.LastWatering != nil && rec.LastWatering.Date != "" {
		date, err := dateutil.Parse(rec.LastWatering.Date)
		if err != nil {
			return Plant{}, err
		}
		t := WaterType(rec.LastWatering.Type)
		if !t.Valid() {
			t = WaterOnly
		}
		var inserted bool
		if p.WaterLog, inserted = p.WaterLog.Insert(date, t); inserted {
			migrated = true
		}
	}
	if rec.LastWatered != "" {
		date, err := dateutil.Parse(rec.LastWatered)
		if err != nil {
			return Plant{}, err
		}
		if !waterLogHasDate(p.WaterLog, date) {
			p.WaterLog, _ = p.WaterLog.Insert(date, WaterOnly)
			migrated = true
		}
	}

	for _, ev := range rec.RepottingLog {
		date, err := dateutil.Parse(ev.Date)
		if err != nil {
			return Plant{}, err
		}
		p.RepottingLog, _ = p.RepottingLog.Insert(date)
	}

	switch {
	case rec.EntryDate != "":
		date, err := dateutil.Parse(rec.EntryDate)
		if err != nil {
			return Plant{}, err
		}
		p.EntryDate = date
	case rec.LastWatered != "":
		p.EntryDate, _ = dateutil.Parse(rec.LastWatered)
		migrated = true
	case len(p.WaterLog) > 0:
		p.EntryDate = p.WaterLog[0].Date
		migrated = true
	default:
		p.EntryDate = today
		migrated = true
	}

	if rec.PurchaseDate != "" {
		date, err := dateutil.Parse(rec.PurchaseDate)
		if err != nil {
			return Plant{}, err
		}
		p.PurchaseDate = &date
	}

	if migrated {
		slog.Debug(config.MsgRecordMigrated,
			config.LogKeyComponent, config.CompModel,
			config.LogKeyPlantID, p.ID,
		)
	}
	return p, nil
}

func waterLogHasDate(l WaterLog, date dateutil.CalendarDate) bool {
	for _, e := range l {
		if e.Date == date {
			return true
		}
	}
	return false
}

// ToRecord serializes a plant into the canonical record shape. Legacy
// fields are never written back.
func ToRecord(p Plant) Record {
	rec := Record{
		ID:        p.ID,
		Name:      p.Name,
		SpeciesID: SpeciesRef(p.SpeciesID),
		EntryDate: p.EntryDate.String(),
	}
	if p.PurchaseDate != nil {
		rec.PurchaseDate = p.PurchaseDate.String()
	}
	for _, e := range p.WaterLog {
		rec.WaterLog = append(rec.WaterLog, WaterEvent{Date: e.Date.String(), Type: string(e.Type)})
	}
	for _, e := range p.RepottingLog {
		rec.RepottingLog = append(rec.RepottingLog, RepotEvent{Date: e.Date.String()})
	}
	return rec
}
