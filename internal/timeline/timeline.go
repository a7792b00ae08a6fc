// Package timeline projects records into a year/month structure for
// chronological display. The projection is recomputed on demand and never
// stored.
package timeline

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/models"
)

// UnknownLocation is shown for records without a location label.
const UnknownLocation = "Unknown Location"

// Year groups the months of one calendar year, newest month first.
type Year struct {
	Year   int     `json:"year"`
	Months []Month `json:"months"`
}

// Month holds the records created in one calendar month, newest first.
type Month struct {
	Month   time.Month            `json:"-"`
	Name    string                `json:"month"`
	Records []models.MemoryRecord `json:"memories"`
}

// Group orders records by CreatedAt descending (stable for ties) and buckets
// them by calendar year and month as seen in loc. A nil loc means UTC.
func Group(records []models.MemoryRecord, loc *time.Location) []Year {
	if loc == nil {
		loc = time.UTC
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b models.MemoryRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	years := []Year{}
	for _, r := range sorted {
		t := r.CreatedAt.In(loc)
		y, m := t.Year(), t.Month()

		if n := len(years); n == 0 || years[n-1].Year != y {
			years = append(years, Year{Year: y})
		}
		yr := &years[len(years)-1]

		if n := len(yr.Months); n == 0 || yr.Months[n-1].Month != m {
			yr.Months = append(yr.Months, Month{Month: m, Name: m.String()})
		}
		mo := &yr.Months[len(yr.Months)-1]
		mo.Records = append(mo.Records, r)
	}
	return years
}

// LocationLabel returns r's label or UnknownLocation.
func LocationLabel(r models.MemoryRecord) string {
	if r.LocationLabel == "" {
		return UnknownLocation
	}
	return r.LocationLabel
}
