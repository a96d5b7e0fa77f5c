// Package store persists the plant collection as a JSON file. Writes are
// atomic (temp file + rename) so a crash mid-save never truncates the
// collection, and loads always pass records through the legacy normalizer
// before the core sees them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
	"github.com/tartampluch/go-planty/internal/model"
)

// document is the on-disk shape: the record array plus bookkeeping
// metadata. Older exports were a bare record array; Load accepts both.
type document struct {
	UserPlants  []model.Record `json:"userPlants"`
	LastUpdated string         `json:"lastUpdated,omitempty"`
}

// Store reads and writes one collection file.
type Store struct {
	Path  Path
	Clock interface{ Now() time.Time }

	log *slog.Logger
}

// Path is the absolute location of the collection file.
type Path string

// New builds a store for the given file path.
func New(path string, clock interface{ Now() time.Time }) *Store {
	return &Store{
		Path:  Path(path),
		Clock: clock,
		log:   slog.With(config.LogKeyComponent, config.CompStore),
	}
}

// Load reads and normalizes the collection. A missing file is not an
// error: the collection starts empty. A record that fails normalization is
// logged and skipped so one corrupt entry cannot hold the rest hostage.
func (s *Store) Load() ([]model.Plant, error) {
	raw, err := os.ReadFile(string(s.Path))
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info(config.MsgStoreMissing, config.LogKeyPath, string(s.Path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	today := dateutil.FromTime(s.Clock.Now())
	plants := make([]model.Plant, 0, len(records))
	for _, rec := range records {
		plant, err := model.NormalizeRecord(rec, today)
		if err != nil {
			s.log.Warn(config.MsgRecordSkipped,
				config.LogKeyPlantID, rec.ID,
				config.LogKeyError, err)
			continue
		}
		plants = append(plants, plant)
	}

	s.log.Info(config.MsgStoreLoaded,
		config.LogKeyPath, string(s.Path),
		config.LogKeyCount, len(plants))
	return plants, nil
}

// decodeRecords accepts both the current document shape and the bare array
// older exports used.
func decodeRecords(raw []byte) ([]model.Record, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err == nil && doc.UserPlants != nil {
		return doc.UserPlants, nil
	}

	var bare []model.Record
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}
	return bare, nil
}

// Save serializes the collection and atomically replaces the file. The
// temp file is created in the target directory so the rename never crosses
// filesystems.
func (s *Store) Save(plants []model.Plant) error {
	records := make([]model.Record, 0, len(plants))
	for _, p := range plants {
		records = append(records, model.ToRecord(p))
	}

	doc := document{
		UserPlants:  records,
		LastUpdated: s.Clock.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(doc, "", config.JSONIndent)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreEncode, err)
	}

	dir := filepath.Dir(string(s.Path))
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(dir, config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	if err := os.Chmod(tmpName, config.FilePermUserRW); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	if err := os.Rename(tmpName, string(s.Path)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	s.log.Info(config.MsgStoreSaved,
		config.LogKeyPath, string(s.Path),
		config.LogKeyCount, len(records),
		config.LogKeySizeBytes, len(data))
	return nil
}

// Import loads a collection from an arbitrary file, replacing nothing by
// itself: the caller decides what to do with the result.
func (s *Store) Import(path string) ([]model.Plant, error) {
	other := &Store{Path: Path(path), Clock: s.Clock, log: s.log}
	return other.Load()
}

// Export writes the collection to an arbitrary file using the same
// serialization as Save, for backups.
func (s *Store) Export(path string, plants []model.Plant) error {
	other := &Store{Path: Path(path), Clock: s.Clock, log: s.log}
	return other.Save(plants)
}
