package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/common"
)

// AccessMode is the access level a share link grants.
type AccessMode string

// AccessReadOnly is the only defined mode.
const AccessReadOnly AccessMode = "readonly"

// ParseAccessMode accepts the defined modes only.
func ParseAccessMode(s string) (AccessMode, error) {
	switch AccessMode(s) {
	case AccessReadOnly:
		return AccessReadOnly, nil
	default:
		return "", fmt.Errorf("%w: unknown access mode %q", common.ErrorValidation, s)
	}
}

// ShareDescriptor is the decoded intent of a share link. It is never stored.
type ShareDescriptor struct {
	// RecordIDs keeps the link's order with duplicates removed.
	RecordIDs []int64

	Mode AccessMode

	// Token is the opaque query value. It signals a deliberately generated
	// link and grants nothing by itself.
	Token string

	// IssuedAt is recovered from the token when possible; zero otherwise.
	IssuedAt time.Time
}

// Contains reports whether id is part of the descriptor.
func (d ShareDescriptor) Contains(id int64) bool {
	return slices.Contains(d.RecordIDs, id)
}
