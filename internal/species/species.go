// Package species exposes the read-only care knowledge base: for each
// species and season, the recommended watering interval (or a dormancy tag),
// the repotting month window, and the cold-tolerance floor. The core only
// ever reads it.
package species

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-planty/internal/config"
	"gopkg.in/yaml.v3"
)

// Season is one of four fixed month-range buckets governing which care
// profile applies. No locale dependency beyond the month number.
type Season string

const (
	Spring Season = "SPRING"
	Summer Season = "SUMMER"
	Autumn Season = "AUTUMN"
	Winter Season = "WINTER"
)

// SeasonForMonth buckets a calendar month. Winter wraps the year boundary.
func SeasonForMonth(m time.Month) Season {
	switch {
	case m >= config.SpringStartMonth && m <= config.SpringEndMonth:
		return Spring
	case m >= config.SummerStartMonth && m <= config.SummerEndMonth:
		return Summer
	case m >= config.AutumnStartMonth && m <= config.AutumnEndMonth:
		return Autumn
	default:
		return Winter
	}
}

// Interval is a tagged watering interval: a concrete day count, Dormant
// ("stop watering this season"), or Unknown ("no data"). The tag replaces
// the magic 999 used by older exports, so dormancy and missing data can
// never be confused by arithmetic. The zero value is Unknown.
type Interval struct {
	days    int
	known   bool
	dormant bool
}

// Days constructs a concrete interval of n days.
func Days(n int) Interval {
	return Interval{days: n, known: true}
}

// Dormant is the no-watering schedule state.
func Dormant() Interval {
	return Interval{dormant: true}
}

// DaysValue returns the concrete day count, false for Dormant and Unknown.
func (i Interval) DaysValue() (int, bool) {
	if !i.known || i.dormant {
		return 0, false
	}
	return i.days, true
}

// IsDormant reports the stop-watering state.
func (i Interval) IsDormant() bool {
	return i.dormant
}

// IsUnknown reports missing interval data.
func (i Interval) IsUnknown() bool {
	return !i.known && !i.dormant
}

// String renders the interval for logs.
func (i Interval) String() string {
	switch {
	case i.dormant:
		return config.DormantIntervalTag
	case !i.known:
		return "unknown"
	default:
		return fmt.Sprintf("%dd", i.days)
	}
}

// UnmarshalYAML accepts either a positive integer day count or the literal
// dormancy tag. An absent key stays Unknown via the zero value.
func (i *Interval) UnmarshalYAML(value *yaml.Node) error {
	var days int
	if err := value.Decode(&days); err == nil {
		if days <= 0 {
			return fmt.Errorf("%s: non-positive interval %d", config.ErrCatalogDecode, days)
		}
		*i = Days(days)
		return nil
	}

	var tag string
	if err := value.Decode(&tag); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCatalogDecode, err)
	}
	if tag != config.DormantIntervalTag {
		return fmt.Errorf("%s: unknown interval tag %q", config.ErrCatalogDecode, tag)
	}
	*i = Dormant()
	return nil
}

// MonthRange is an inclusive month window. Start > End means the window
// wraps the year boundary (e.g. Nov-Feb).
type MonthRange struct {
	Start time.Month `yaml:"start"`
	End   time.Month `yaml:"end"`
}

// Contains tests month membership, handling both wrap and non-wrap windows.
func (r MonthRange) Contains(m time.Month) bool {
	if r.Start <= r.End {
		return m >= r.Start && m <= r.End
	}
	return m >= r.Start || m <= r.End
}

// SeasonalIntervals holds the per-season watering intervals of one species.
type SeasonalIntervals struct {
	Spring Interval `yaml:"spring"`
	Summer Interval `yaml:"summer"`
	Autumn Interval `yaml:"autumn"`
	Winter Interval `yaml:"winter"`
}

// ForSeason selects the interval for a season.
func (s SeasonalIntervals) ForSeason(season Season) Interval {
	switch season {
	case Spring:
		return s.Spring
	case Summer:
		return s.Summer
	case Autumn:
		return s.Autumn
	default:
		return s.Winter
	}
}

// Species is one knowledge-base entry.
type Species struct {
	ID               int               `yaml:"id"`
	Name             string            `yaml:"name"`
	Scientific       string            `yaml:"scientific"`
	MinTemp          int               `yaml:"min_temp"`
	Difficulty       string            `yaml:"difficulty"`
	WaterMethod      string            `yaml:"water_method"`
	Water            SeasonalIntervals `yaml:"water"`
	Repotting        MonthRange        `yaml:"repotting"`
	FertilizerMonths []time.Month      `yaml:"fertilizer_months,omitempty"`
	Pruning          string            `yaml:"pruning,omitempty"`
}

// CareProfile is the per-(species, season) view the schedule calculator
// consumes.
type CareProfile struct {
	WaterInterval   Interval
	RepottingWindow MonthRange
	MinTemp         int
}
