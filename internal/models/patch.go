package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/memorymap/internal/common"
)

// Location is a coordinate pair. Patches carry both values or neither.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Patch lists the updatable fields of a record. Nil means "keep".
type Patch struct {
	Title         *string
	Description   *string
	LocationLabel *string
	Location      *Location
}

// Patch keys accepted by ParsePatch.
const (
	PatchKeyTitle       = "title"
	PatchKeyDescription = "description"
	PatchKeyLocation    = "location"
	PatchKeyLatitude    = "latitude"
	PatchKeyLongitude   = "longitude"
)

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.LocationLabel == nil && p.Location == nil
}

// Validate applies the create-time rules to the supplied fields only.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", common.ErrorValidation)
	}
	if p.Location != nil {
		return validateCoordinates(p.Location.Latitude, p.Location.Longitude)
	}
	return nil
}

// Apply merges the patch into r. Identity and timestamps are left alone.
func (p Patch) Apply(r MemoryRecord) MemoryRecord {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		r.Description = strings.TrimSpace(*p.Description)
	}
	if p.LocationLabel != nil {
		r.LocationLabel = strings.TrimSpace(*p.LocationLabel)
	}
	if p.Location != nil {
		r.Latitude = p.Location.Latitude
		r.Longitude = p.Location.Longitude
	}
	return r
}

// ParsePatch builds a Patch from "name=value" items. Unknown names, malformed
// items, unparsable coordinates and a lone latitude or longitude are
// rejected with common.ErrorValidation.
func ParsePatch(items []string) (Patch, error) {
	var p Patch
	var lat, lng *float64

	for _, item := range items {
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			return Patch{}, fmt.Errorf("%w: %q must be name=value", common.ErrorValidation, item)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)

		switch name {
		case PatchKeyTitle:
			p.Title = &value
		case PatchKeyDescription:
			p.Description = &value
		case PatchKeyLocation:
			p.LocationLabel = &value
		case PatchKeyLatitude, PatchKeyLongitude:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Patch{}, fmt.Errorf("%w: %s %q is not a number", common.ErrorValidation, name, value)
			}
			if name == PatchKeyLatitude {
				lat = &f
			} else {
				lng = &f
			}
		default:
			return Patch{}, fmt.Errorf("%w: unknown field %q", common.ErrorValidation, name)
		}
	}

	switch {
	case lat != nil && lng != nil:
		p.Location = &Location{Latitude: *lat, Longitude: *lng}
	case lat != nil || lng != nil:
		return Patch{}, fmt.Errorf("%w: latitude and longitude must be supplied together", common.ErrorValidation)
	}

	return p, nil
}
