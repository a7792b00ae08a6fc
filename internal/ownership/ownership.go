// Package ownership derives the owner-scoped view of the record collection.
// It is the only access-control boundary in front of the owner's display.
package ownership

import (
	"github.com/dmitrijs2005/memorymap/internal/models"
)

// VisibleTo returns the records owned by p in their original relative
// order. An empty principal sees nothing.
func VisibleTo(records []models.MemoryRecord, p models.Principal) []models.MemoryRecord {
	out := make([]models.MemoryRecord, 0, len(records))
	if p.IsZero() {
		return out
	}
	for _, r := range records {
		if r.OwnerID == p.ID {
			out = append(out, r)
		}
	}
	return out
}

// Owns reports whether r belongs to p.
func Owns(r models.MemoryRecord, p models.Principal) bool {
	return !p.IsZero() && r.OwnerID == p.ID
}
