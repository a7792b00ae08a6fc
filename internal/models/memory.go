// Package models defines the memory record, its create/patch inputs, the
// session principal, and the share descriptor.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/common"
)

// MemoryRecord is a single narrative pinned to a place and a point in time.
// JSON keys match the persisted state layout.
type MemoryRecord struct {
	// ID is unique for the lifetime of the store and never reused.
	ID int64 `json:"id"`

	// OwnerID is the principal that created the record. Immutable.
	OwnerID string `json:"ownerId"`

	Title         string `json:"title"`
	Description   string `json:"description"`
	LocationLabel string `json:"location"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// CreatedAt is set once by the store.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is nil until the first successful edit.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// UnmarshalJSON also accepts the older "userId" key for the owner.
func (r *MemoryRecord) UnmarshalJSON(b []byte) error {
	type plain MemoryRecord
	aux := struct {
		*plain
		UserID string `json:"userId"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if r.OwnerID == "" {
		r.OwnerID = aux.UserID
	}
	return nil
}

// Clone returns a copy that shares no memory with r.
func (r MemoryRecord) Clone() MemoryRecord {
	c := r
	if r.UpdatedAt != nil {
		u := *r.UpdatedAt
		c.UpdatedAt = &u
	}
	return c
}

// Fields are the user-supplied values for a new record.
type Fields struct {
	Title         string
	Description   string
	LocationLabel string
	Latitude      float64
	Longitude     float64
}

// Normalize returns f with text fields trimmed.
func (f Fields) Normalize() Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.LocationLabel = strings.TrimSpace(f.LocationLabel)
	return f
}

// Validate reports common.ErrorValidation when title or description is blank
// or the coordinates are off the globe.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(f.Description) == "" {
		return fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	return validateCoordinates(f.Latitude, f.Longitude)
}

func validateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", common.ErrorValidation, lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", common.ErrorValidation, lng)
	}
	return nil
}

// Principal is the authenticated user on whose behalf an operation runs.
type Principal struct {
	ID string
}

// IsZero reports whether p carries no identity.
func (p Principal) IsZero() bool {
	return strings.TrimSpace(p.ID) == ""
}
