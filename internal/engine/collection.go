package engine

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tartampluch/go-planty/internal/config"
	"github.com/tartampluch/go-planty/internal/dateutil"
)

// FilterByMinTemp keeps the plants whose species tolerates the given
// temperature, i.e. MinTemp >= threshold. The stored collection is never
// mutated; callers get a fresh slice.
func FilterByMinTemp(views []PlantView, threshold int) []PlantView {
	out := make([]PlantView, 0, len(views))
	for _, v := range views {
		if v.Species.MinTemp >= threshold {
			out = append(out, v)
		}
	}
	return out
}

// Sort returns the views ordered by the given key. An unrecognized key
// falls back to the name ordering. All orderings are stable, so plants that
// compare equal keep their stored relative order.
func Sort(views []PlantView, key string, lang string) []PlantView {
	out := make([]PlantView, len(views))
	copy(out, views)

	switch key {
	case config.SortByEntryDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].Plant.EntryDate.Before(out[i].Plant.EntryDate)
		})
	case config.SortByMinTemp:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Species.MinTemp < out[j].Species.MinTemp
		})
	case config.SortByNextWatering:
		sortByNextWatering(out)
	default:
		sortByName(out, lang)
	}
	return out
}

// sortByName orders by plant name under the locale's collation rules, so
// non-ASCII names (the knowledge base is bilingual) sort the way a native
// speaker expects rather than by code point.
func sortByName(views []PlantView, lang string) {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Make(config.DefaultLanguage)
	}
	coll := collate.New(tag)
	sort.SliceStable(views, func(i, j int) bool {
		return coll.CompareString(views[i].Plant.Name, views[j].Plant.Name) < 0
	})
}

// sortByNextWatering orders ascending by due date. Plants without a
// concrete date (dormant or unknown interval) always sort after every
// scheduled plant, keeping their stored relative order among themselves.
func sortByNextWatering(views []PlantView) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].Next, views[j].Next
		switch {
		case a.Scheduled() && b.Scheduled():
			return a.Date.Before(b.Date)
		case a.Scheduled():
			return true
		default:
			return false
		}
	})
}

// DueToday counts the scheduled plants whose due date is asOf or earlier.
func DueToday(views []PlantView, asOf dateutil.CalendarDate) int {
	n := 0
	for _, v := range views {
		if v.Next.Scheduled() && !asOf.Before(v.Next.Date) {
			n++
		}
	}
	return n
}
