package engine

import (
	"log/slog"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/model"
	"github.com/tartampluch/go-planty/internal/species"
)

// PlantView pairs a plant with its species profile and every value derived
// for the current date. It is the read model the roster, the calendar feed
// and the JSON endpoint all consume; nothing downstream recomputes schedule
// state.
type PlantView struct {
	Plant   model.Plant     `json:"plant"`
	Species species.Species `json:"species"`
	Season  species.Season  `json:"season"`

	Interval species.Interval `json:"-"`

	LastWatering model.WaterLogEntry `json:"lastWatering"`
	DaysSince    int                 `json:"daysSinceWatering"`
	Next         NextWatering        `json:"nextWatering"`

	Alert    *Alert `json:"alert,omitempty"`
	RepotDue bool   `json:"repottingDue"`
}

// DaysUntil returns the signed distance from asOf to the next due date.
// Only meaningful when Next.Scheduled() is true.
func (v PlantView) DaysUntil(asOf dateutil.CalendarDate) int {
	return dateutil.DaysBetween(v.Next.Date, asOf)
}

// BuildView computes the full derived state for one plant. The species
// lookup error is propagated so the caller can decide whether a single bad
// reference aborts the whole build.
func BuildView(plant model.Plant, catalog *species.Catalog, asOf dateutil.CalendarDate) (PlantView, error) {
	sp, err := catalog.Species(plant.SpeciesID)
	if err != nil {
		return PlantView{}, err
	}

	season := species.SeasonForMonth(asOf.Month)
	profile := sp.Water.ForSeason(season)

	last := plant.LastWatering()
	next := NextWateringDate(&last.Date, profile)

	var lastRepot *dateutil.CalendarDate
	if e, ok := plant.RepottingLog.Latest(); ok {
		lastRepot = &e.Date
	}

	view := PlantView{
		Plant:        plant,
		Species:      *sp,
		Season:       season,
		Interval:     profile,
		LastWatering: last,
		DaysSince:    DaysSince(last.Date, asOf),
		Next:         next,
		RepotDue:     RepottingDue(lastRepot, sp.Repotting, asOf),
	}

	if next.Scheduled() {
		if alert, ok := WateringAlert(next.Date, asOf, profile); ok {
			view.Alert = &alert
		}
	}
	return view, nil
}

// BuildViews derives the view for every plant in the collection. A plant
// whose species id is not in the catalog is logged and skipped; one corrupt
// reference must not take the roster down.
func BuildViews(plants []model.Plant, catalog *species.Catalog, asOf dateutil.CalendarDate, log *slog.Logger) []PlantView {
	views := make([]PlantView, 0, len(plants))
	for _, p := range plants {
		view, err := BuildView(p, catalog, asOf)
		if err != nil {
			log.Warn(config.MsgPlantSkipped,
				config.LogKeyPlantID, p.ID,
				config.LogKeySpeciesID, p.SpeciesID,
				config.LogKeyError, err)
			continue
		}
		views = append(views, view)
	}
	return views
}
