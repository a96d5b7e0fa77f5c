package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/model"
	"github.com/tartampluch/go-planty/internal/store"
)

type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func testClock() MockClock {
	return MockClock{CurrentTime: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
}

func day(y int, m time.Month, d int) dateutil.CalendarDate {
	return dateutil.Date(y, m, d)
}

func TestStore_MissingFileStartsEmpty(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "plants.json"), testClock())

	plants, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, plants)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	s := store.New(path, testClock())

	original := []model.Plant{
		model.NewPlant(1, "Momo", 3, day(2024, time.April, 1), model.WaterOnly),
		model.NewPlant(2, "Sansei", 5, day(2024, time.May, 12), model.WaterAndFertilizer),
	}
	original[0].WaterLog, _ = original[0].WaterLog.Insert(day(2024, time.June, 3), model.WaterOnly)
	original[0].RepottingLog, _ = original[0].RepottingLog.Insert(day(2024, time.April, 1))

	require.NoError(t, s.Save(original))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestStore_SaveWritesMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	s := store.New(path, testClock())

	require.NoError(t, s.Save(nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2024-06-10T09:00:00Z", doc["lastUpdated"])
	assert.Contains(t, doc, "userPlants")
}

func TestStore_LoadBareArray(t *testing.T) {
	// Older exports were a bare record array without the document wrapper.
	path := filepath.Join(t.TempDir(), "plants.json")
	legacy := `[{"id": 1, "name": "Momo", "speciesId": "3", "entryDate": "2024-04-01"}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	s := store.New(path, testClock())
	plants, err := s.Load()
	require.NoError(t, err)

	require.Len(t, plants, 1)
	assert.Equal(t, "Momo", plants[0].Name)
	assert.Equal(t, 3, plants[0].SpeciesID)
	assert.Equal(t, day(2024, time.April, 1), plants[0].EntryDate)
}

func TestStore_LoadSkipsCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	content := `{"userPlants": [
		{"id": 1, "name": "Momo", "speciesId": 3, "entryDate": "2024-04-01"},
		{"id": 2, "name": "Broken", "speciesId": 4, "entryDate": "not-a-date"},
		{"id": 3, "name": "Gaju", "speciesId": 4, "entryDate": "2024-05-01"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := store.New(path, testClock())
	plants, err := s.Load()
	require.NoError(t, err)

	require.Len(t, plants, 2, "One corrupt record must not block the rest")
	assert.Equal(t, "Momo", plants[0].Name)
	assert.Equal(t, "Gaju", plants[1].Name)
}

func TestStore_LoadNormalizesLegacyRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	content := `{"userPlants": [
		{"id": 1, "name": "Momo", "speciesId": 3, "lastWatered": "2024-06-03"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s := store.New(path, testClock())
	plants, err := s.Load()
	require.NoError(t, err)

	require.Len(t, plants, 1)
	assert.Equal(t, day(2024, time.June, 3), plants[0].EntryDate, "Entry date backfilled from lastWatered")
	require.Len(t, plants[0].WaterLog, 1)
	assert.Equal(t, day(2024, time.June, 3), plants[0].WaterLog[0].Date)
}

func TestStore_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	s := store.New(path, testClock())
	_, err := s.Load()
	assert.Error(t, err)
}

func TestStore_ExportImport(t *testing.T) {
	dir := t.TempDir()
	s := store.New(filepath.Join(dir, "plants.json"), testClock())

	plants := []model.Plant{model.NewPlant(1, "Momo", 3, day(2024, time.April, 1), model.WaterOnly)}
	require.NoError(t, s.Save(plants))

	backup := filepath.Join(dir, "backup.json")
	require.NoError(t, s.Export(backup, plants))

	imported, err := s.Import(backup)
	require.NoError(t, err)
	assert.Equal(t, plants, imported)
}

func TestStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	s := store.New(path, testClock())
	require.NoError(t, s.Save(nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
