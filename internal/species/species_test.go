package species_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-planty/internal/errs"
	"github.com/tartampluch/go-planty/internal/species"
	"gopkg.in/yaml.v3"
)

func TestSeasonForMonth_TableDriven(t *testing.T) {
	tests := []struct {
		month time.Month
		want  species.Season
	}{
		{time.January, species.Winter},
		{time.February, species.Winter},
		{time.March, species.Spring},
		{time.May, species.Spring},
		{time.June, species.Summer},
		{time.August, species.Summer},
		{time.September, species.Autumn},
		{time.November, species.Autumn},
		{time.December, species.Winter},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, species.SeasonForMonth(tt.month))
		})
	}
}

func TestInterval_Tagging(t *testing.T) {
	concrete := species.Days(7)
	days, ok := concrete.DaysValue()
	assert.True(t, ok)
	assert.Equal(t, 7, days)
	assert.False(t, concrete.IsDormant())
	assert.False(t, concrete.IsUnknown())

	dormant := species.Dormant()
	_, ok = dormant.DaysValue()
	assert.False(t, ok, "dormancy must not leak a usable day count")
	assert.True(t, dormant.IsDormant())
	assert.False(t, dormant.IsUnknown())

	var unknown species.Interval
	_, ok = unknown.DaysValue()
	assert.False(t, ok)
	assert.False(t, unknown.IsDormant())
	assert.True(t, unknown.IsUnknown(), "zero value must mean missing data")
}

func TestInterval_YAMLDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, i species.Interval)
		wantErr bool
	}{
		{
			name:  "Integer day count",
			input: "10",
			check: func(t *testing.T, i species.Interval) {
				d, ok := i.DaysValue()
				assert.True(t, ok)
				assert.Equal(t, 10, d)
			},
		},
		{
			name:  "Dormancy tag",
			input: "stop",
			check: func(t *testing.T, i species.Interval) {
				assert.True(t, i.IsDormant())
			},
		},
		{name: "Zero days", input: "0", wantErr: true},
		{name: "Negative days", input: "-3", wantErr: true},
		{name: "Unknown tag", input: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got species.Interval
			err := yaml.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestMonthRange_Contains(t *testing.T) {
	nonWrap := species.MonthRange{Start: time.May, End: time.August}
	assert.True(t, nonWrap.Contains(time.June))
	assert.True(t, nonWrap.Contains(time.May))
	assert.True(t, nonWrap.Contains(time.August))
	assert.False(t, nonWrap.Contains(time.April))
	assert.False(t, nonWrap.Contains(time.September))

	// Nov-Feb wraps the year boundary.
	wrap := species.MonthRange{Start: time.November, End: time.February}
	assert.True(t, wrap.Contains(time.January))
	assert.True(t, wrap.Contains(time.November))
	assert.True(t, wrap.Contains(time.February))
	assert.False(t, wrap.Contains(time.March))
	assert.False(t, wrap.Contains(time.October))
}

func TestLoadCatalog(t *testing.T) {
	cat, err := species.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, 22, cat.Len(), "the knowledge base ships 22 species")

	// Every entry must be internally complete.
	for _, sp := range cat.All() {
		assert.NotZero(t, sp.ID, "species %q must have an id", sp.Name)
		assert.NotEmpty(t, sp.Name)
		assert.NotEmpty(t, sp.Scientific)
		assert.NotZero(t, sp.Repotting.Start, "species %q must have a repotting window", sp.Name)
		assert.NotZero(t, sp.Repotting.End, "species %q must have a repotting window", sp.Name)
	}
}

func TestCatalog_Profile_TotalForAllSeasons(t *testing.T) {
	cat, err := species.LoadCatalog()
	require.NoError(t, err)

	seasons := []species.Season{species.Spring, species.Summer, species.Autumn, species.Winter}
	for _, sp := range cat.All() {
		for _, season := range seasons {
			profile, err := cat.Profile(sp.ID, season)
			require.NoError(t, err, "profile must be total for (%d, %s)", sp.ID, season)
			assert.False(t, profile.WaterInterval.IsUnknown(),
				"catalog data should never be missing for species %d in %s", sp.ID, season)
		}
	}
}

func TestCatalog_KnownDormancies(t *testing.T) {
	cat, err := species.LoadCatalog()
	require.NoError(t, err)

	// Snake plant and desert rose go dry over winter.
	for _, id := range []int{5, 21} {
		profile, err := cat.Profile(id, species.Winter)
		require.NoError(t, err)
		assert.True(t, profile.WaterInterval.IsDormant(), "species %d should be dormant in winter", id)
	}

	// Yucca tolerates frost down to -3.
	profile, err := cat.Profile(8, species.Summer)
	require.NoError(t, err)
	assert.Equal(t, -3, profile.MinTemp)
}

func TestCatalog_UnknownSpecies(t *testing.T) {
	cat, err := species.LoadCatalog()
	require.NoError(t, err)

	_, err = cat.Species(9999)
	assert.ErrorIs(t, err, errs.ErrSpeciesUnknown)

	_, err = cat.Profile(9999, species.Spring)
	assert.ErrorIs(t, err, errs.ErrSpeciesUnknown)
}
