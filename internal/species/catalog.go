package species

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/errs"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the immutable species knowledge base, keyed by species id.
type Catalog struct {
	entries []Species
	byID    map[int]*Species
}

// LoadCatalog decodes the embedded knowledge base. It fails loudly on a
// malformed or empty catalog; a tracker without species data is unusable.
func LoadCatalog() (*Catalog, error) {
	var entries []Species
	if err := yaml.Unmarshal(catalogYAML, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalogDecode, err)
	}
	if len(entries) == 0 {
		return nil, errors.New(config.ErrCatalogEmpty)
	}

	c := &Catalog{
		entries: entries,
		byID:    make(map[int]*Species, len(entries)),
	}
	for i := range c.entries {
		sp := &c.entries[i]
		if _, dup := c.byID[sp.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate species id %d", config.ErrCatalogDecode, sp.ID)
		}
		c.byID[sp.ID] = sp
	}
	return c, nil
}

// Species resolves a species id. A miss is a data-integrity failure for the
// referencing plant, reported via errs.ErrSpeciesUnknown so the caller can
// skip that plant without aborting the rest of the collection.
func (c *Catalog) Species(id int) (*Species, error) {
	sp, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w: id %d", config.ErrSpeciesLookup, errs.ErrSpeciesUnknown, id)
	}
	return sp, nil
}

// Profile returns the care profile for a (species, season) pair. Total for
// any known species id; the interval may still be Dormant or Unknown.
func (c *Catalog) Profile(id int, season Season) (CareProfile, error) {
	sp, err := c.Species(id)
	if err != nil {
		return CareProfile{}, err
	}
	return CareProfile{
		WaterInterval:   sp.Water.ForSeason(season),
		RepottingWindow: sp.Repotting,
		MinTemp:         sp.MinTemp,
	}, nil
}

// All returns the catalog entries in file order.
func (c *Catalog) All() []Species {
	return c.entries
}

// Len reports the number of species.
func (c *Catalog) Len() int {
	return len(c.entries)
}
