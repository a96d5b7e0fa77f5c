package model_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/errs"
	"github.com/tartampluch/go-planty/internal/model"
)

func day(y int, m time.Month, d int) dateutil.CalendarDate {
	return dateutil.Date(y, m, d)
}

func TestWaterLog_Insert_DedupIdempotent(t *testing.T) {
	var log model.WaterLog

	log, inserted := log.Insert(day(2024, time.June, 10), model.WaterOnly)
	assert.True(t, inserted)
	assert.Len(t, log, 1)

	// Same (date, type) again is a no-op.
	again, inserted := log.Insert(day(2024, time.June, 10), model.WaterOnly)
	assert.False(t, inserted, "duplicate insert must be reported")
	assert.Equal(t, log, again, "duplicate insert must leave the log unchanged")

	// Same date, different type is a distinct entry.
	log, inserted = log.Insert(day(2024, time.June, 10), model.WaterAndFertilizer)
	assert.True(t, inserted)
	assert.Len(t, log, 2)
}

func TestWaterLog_Insert_KeepsDescendingOrder(t *testing.T) {
	var log model.WaterLog
	dates := []dateutil.CalendarDate{
		day(2024, time.June, 1),
		day(2024, time.June, 15),
		day(2024, time.May, 20),
		day(2024, time.June, 10),
	}
	for _, d := range dates {
		log, _ = log.Insert(d, model.WaterOnly)
	}

	require.Len(t, log, 4)
	assert.True(t, sort.SliceIsSorted(log, func(i, j int) bool {
		return log[j].Date.Before(log[i].Date)
	}), "log must be sorted descending by date after every insert")
	assert.Equal(t, day(2024, time.June, 15), log[0].Date, "index 0 is the last watering")
}

func TestWaterLog_Insert_SameDateStableOrder(t *testing.T) {
	var log model.WaterLog
	log, _ = log.Insert(day(2024, time.June, 10), model.WaterOnly)
	log, _ = log.Insert(day(2024, time.June, 10), model.WaterAndActivator)
	log, _ = log.Insert(day(2024, time.June, 11), model.WaterOnly)

	require.Len(t, log, 3)
	assert.Equal(t, day(2024, time.June, 11), log[0].Date)
	// Same-date entries keep insertion order.
	assert.Equal(t, model.WaterOnly, log[1].Type)
	assert.Equal(t, model.WaterAndActivator, log[2].Type)
}

func TestWaterLog_Insert_DoesNotMutateReceiver(t *testing.T) {
	var log model.WaterLog
	log, _ = log.Insert(day(2024, time.June, 10), model.WaterOnly)

	snapshot := make(model.WaterLog, len(log))
	copy(snapshot, log)

	_, _ = log.Insert(day(2024, time.June, 20), model.WaterOnly)
	assert.Equal(t, snapshot, log, "insert must not mutate the original log")
}

func TestWaterLog_RemoveAt(t *testing.T) {
	var log model.WaterLog
	log, _ = log.Insert(day(2024, time.June, 10), model.WaterOnly)
	log, _ = log.Insert(day(2024, time.June, 12), model.WaterOnly)

	shorter, err := log.RemoveAt(0)
	require.NoError(t, err)
	assert.Len(t, shorter, 1)
	assert.Equal(t, day(2024, time.June, 10), shorter[0].Date)

	_, err = log.RemoveAt(2)
	assert.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	_, err = log.RemoveAt(-1)
	assert.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestWaterLog_Latest(t *testing.T) {
	var log model.WaterLog
	_, ok := log.Latest()
	assert.False(t, ok)

	log, _ = log.Insert(day(2024, time.June, 10), model.WaterOnly)
	log, _ = log.Insert(day(2024, time.June, 14), model.WaterAndFertilizer)

	latest, ok := log.Latest()
	require.True(t, ok)
	assert.Equal(t, day(2024, time.June, 14), latest.Date)
	assert.Equal(t, model.WaterAndFertilizer, latest.Type)
}

func TestRepottingLog_DedupByDateOnly(t *testing.T) {
	var log model.RepottingLog

	log, inserted := log.Insert(day(2024, time.May, 1))
	assert.True(t, inserted)

	log, inserted = log.Insert(day(2024, time.May, 1))
	assert.False(t, inserted)
	assert.Len(t, log, 1)

	log, _ = log.Insert(day(2023, time.May, 1))
	require.Len(t, log, 2)
	assert.Equal(t, day(2024, time.May, 1), log[0].Date, "most recent repotting first")
}

func TestWaterType_Valid(t *testing.T) {
	for _, wt := range model.WaterTypes {
		assert.True(t, wt.Valid())
	}
	assert.False(t, model.WaterType("Sprinkle").Valid())
	assert.False(t, model.WaterType("").Valid())
}

func TestNewPlant_HasInitialWatering(t *testing.T) {
	entry := day(2024, time.April, 2)
	p := model.NewPlant(1, "Momo", 3, entry, model.WaterOnly)

	require.Len(t, p.WaterLog, 1)
	assert.Equal(t, entry, p.WaterLog[0].Date)
	assert.Equal(t, entry, p.EntryDate)
	assert.Empty(t, p.RepottingLog)
}

func TestPlant_LastWatering_FallsBackToEntryDate(t *testing.T) {
	p := model.Plant{
		ID:        1,
		Name:      "Momo",
		SpeciesID: 3,
		EntryDate: day(2024, time.April, 2),
	}

	last := p.LastWatering()
	assert.Equal(t, p.EntryDate, last.Date)
	assert.Equal(t, model.WaterOnly, last.Type)
}
