package engine_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-planty/internal/engine"
)

func TestCalendarBuild_WateringEvents(t *testing.T) {
	asOf := day(2024, time.June, 10)
	clock := MockClock{CurrentTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}

	d1 := day(2024, time.June, 10)
	d2 := day(2024, time.June, 14)
	views := []engine.PlantView{
		view("Momo", day(2024, time.January, 1), 0, &d1),
		view("Gaju", day(2024, time.January, 1), 0, &d2),
	}

	builder := &engine.CalendarBuilder{
		Clock: clock,
		FormatWaterSummary: func(name string) string {
			return fmt.Sprintf("水やり: %s", name)
		},
	}

	ics, dueToday, err := builder.Build(views, asOf, "")
	require.NoError(t, err)

	assert.Equal(t, 1, dueToday, "Only Momo is due on asOf")

	icsStr := string(ics)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "水やり: Momo")
	assert.Contains(t, icsStr, "水やり: Gaju")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240610")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240614")
}

func TestCalendarBuild_RepottingEvent(t *testing.T) {
	asOf := day(2024, time.June, 10)
	clock := MockClock{CurrentTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}

	v := view("Momo", day(2024, time.January, 1), 0, nil)
	v.RepotDue = true

	builder := &engine.CalendarBuilder{Clock: clock}
	ics, _, err := builder.Build([]engine.PlantView{v}, asOf, "")
	require.NoError(t, err)

	assert.Contains(t, string(ics), "SUMMARY:Repot: Momo",
		"Without an injected formatter the fallback summary is used")
}

func TestCalendarBuild_Alarm(t *testing.T) {
	asOf := day(2024, time.June, 10)
	clock := MockClock{CurrentTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}

	d := day(2024, time.June, 12)
	views := []engine.PlantView{view("Momo", day(2024, time.January, 1), 0, &d)}

	builder := &engine.CalendarBuilder{Clock: clock}
	ics, _, err := builder.Build(views, asOf, "-P1D")
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "BEGIN:VALARM")
	assert.Contains(t, icsStr, "TRIGGER:-P1D")
	assert.NotContains(t, icsStr, "TRIGGER;VALUE=TEXT", "Trigger must stay a raw duration value")
}

func TestCalendarBuild_EmptyYieldsStub(t *testing.T) {
	clock := MockClock{CurrentTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	builder := &engine.CalendarBuilder{Clock: clock}

	ics, dueToday, err := builder.Build(nil, day(2024, time.June, 10), "")
	require.NoError(t, err)

	assert.Equal(t, 0, dueToday)
	icsStr := string(ics)
	assert.True(t, strings.HasPrefix(icsStr, "BEGIN:VCALENDAR"))
	assert.Contains(t, icsStr, "END:VCALENDAR", "Empty feed is still a valid VCALENDAR")
}

func TestCalendarBuild_DeterministicUIDs(t *testing.T) {
	asOf := day(2024, time.June, 10)
	clock := MockClock{CurrentTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}

	d := day(2024, time.June, 12)
	views := []engine.PlantView{view("Momo", day(2024, time.January, 1), 0, &d)}

	builder := &engine.CalendarBuilder{Clock: clock}
	first, _, err := builder.Build(views, asOf, "")
	require.NoError(t, err)
	second, _, err := builder.Build(views, asOf, "")
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second),
		"Identical input must render identical feeds so clients never reshuffle events")
}
