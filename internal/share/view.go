package share

import (
	"slices"

	"github.com/dmitrijs2005/memorymap/internal/models"
)

// Lister is any source of records in store order.
type Lister interface {
	List() []models.MemoryRecord
}

// View is the read-only result of resolving a share link. It has no
// mutating methods.
type View struct {
	d       models.ShareDescriptor
	records []models.MemoryRecord
}

// Resolve keeps the records of src named by d, in store order. Ids that no
// longer exist are skipped; an empty view is a valid result.
func Resolve(d models.ShareDescriptor, src Lister) View {
	v := View{d: d, records: []models.MemoryRecord{}}
	for _, r := range src.List() {
		if d.Contains(r.ID) {
			v.records = append(v.records, r.Clone())
		}
	}
	return v
}

// Records returns a copy of the shared records.
func (v View) Records() []models.MemoryRecord {
	out := slices.Clone(v.records)
	for i := range out {
		out[i] = out[i].Clone()
	}
	if out == nil {
		out = []models.MemoryRecord{}
	}
	return out
}

func (v View) Len() int { return len(v.records) }

func (v View) Empty() bool { return len(v.records) == 0 }

func (v View) Mode() models.AccessMode { return v.d.Mode }

// Descriptor returns the decoded link the view was built from.
func (v View) Descriptor() models.ShareDescriptor {
	d := v.d
	d.RecordIDs = slices.Clone(v.d.RecordIDs)
	return d
}
