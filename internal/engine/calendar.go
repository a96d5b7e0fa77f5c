package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
)

// CalendarBuilder renders the care schedule as an iCalendar feed: one
// all-day event per concrete next-watering date, plus a reminder event for
// each plant whose repotting window is open. Localized summaries are
// injected so this layer never touches the translation bundle.
type CalendarBuilder struct {
	Clock Clock

	FormatWaterSummary func(plantName string) string
	FormatRepotSummary func(plantName string) string
}

// Build encodes the feed for the given views. It returns the ICS bytes and
// the number of plants due on asOf or earlier. reminderTrigger is an
// ISO8601 duration ("-P1D"); empty disables alarms.
func (b *CalendarBuilder) Build(views []PlantView, asOf dateutil.CalendarDate, reminderTrigger string) ([]byte, int, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(b.Clock.Now().UTC())

	stats := struct{ total, scheduled, due, repot int }{len(views), 0, 0, 0}

	for _, v := range views {
		if v.Next.Scheduled() {
			stats.scheduled++
			if !asOf.Before(v.Next.Date) {
				stats.due++
				log.Info(config.MsgDueToday,
					config.LogKeyPlant, v.Plant.Name,
					config.LogKeyDate, v.Next.Date.String())
			}

			summary := fmt.Sprintf(config.FallbackWaterSummary, v.Plant.Name)
			if b.FormatWaterSummary != nil {
				summary = b.FormatWaterSummary(v.Plant.Name)
			}
			event := b.newEvent(v.Plant.Name, v.Next.Date, "water", summary, reminderTrigger)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
		}

		if v.RepotDue {
			stats.repot++
			summary := fmt.Sprintf(config.FallbackRepotSummary, v.Plant.Name)
			if b.FormatRepotSummary != nil {
				summary = b.FormatRepotSummary(v.Plant.Name)
			}
			event := b.newEvent(v.Plant.Name, asOf, "repot", summary, reminderTrigger)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
		}
	}

	// An empty VCALENDAR with no children fails strict encoders; emit the
	// constant stub so clients still see a valid feed.
	if len(cal.Children) == 0 {
		b.logSuccess(log, stats)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	b.logSuccess(log, stats)
	log.Debug("Calendar build finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	return buf.Bytes(), stats.due, nil
}

// newEvent assembles one all-day care event. The UID is a salted hash of
// (plant, date, kind) so refreshes never duplicate or reshuffle events in
// subscribing clients.
func (b *CalendarBuilder) newEvent(plantName string, date dateutil.CalendarDate, kind, summary, reminderTrigger string) *ical.Event {
	input := fmt.Sprintf(config.FormatHashInput, plantName, date.String(), config.UIDSalt+kind)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, kind, config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(date.Midnight(b.Clock.Now().Location()))
	event.Props.Set(dtStartProp)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm to the event. The trigger is set as a
// raw value to avoid the encoder adding a VALUE=TEXT parameter.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func (b *CalendarBuilder) logSuccess(log *slog.Logger, stats struct{ total, scheduled, due, repot int }) {
	log.Info(config.MsgCalGenSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.total),
			slog.Int(config.LogKeyScheduled, stats.scheduled),
			slog.Int(config.LogKeyDueToday, stats.due),
		),
	)
}
