// Package domain holds the shared building blocks every survey entity embeds:
// the identity/timestamp base, the validated email value object, and date
// coercion helpers used by the API boundary converters.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "agrisurvey/pkg/domain-errors"
)

// Identity is the identity/timestamp base embedded by every entity.
//
// Invariants:
//   - ID is non-empty after construction (generated when absent)
//   - CreatedAt is immutable after construction
//   - UpdatedAt changes only through Touch, called exactly once at the end
//     of every mutating entity method
type Identity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewIdentity builds an identity for a freshly created entity. An empty id
// gets a generated UUID; the caller injects now so construction stays
// deterministic under test.
func NewIdentity(id string, now time.Time) Identity {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	return Identity{ID: id, CreatedAt: now, UpdatedAt: now}
}

// RestoreIdentity rebuilds an identity from external data, preserving stored
// timestamps. Zero timestamps default to now so partially-populated records
// still construct.
func RestoreIdentity(id string, createdAt, updatedAt time.Time, now time.Time) Identity {
	ident := NewIdentity(id, now)
	if !createdAt.IsZero() {
		ident.CreatedAt = createdAt
	}
	if !updatedAt.IsZero() {
		ident.UpdatedAt = updatedAt
	}
	return ident
}

// Touch records a mutation timestamp. Entities call this at the end of every
// mutating method; nothing else writes UpdatedAt.
func (i *Identity) Touch(now time.Time) {
	i.UpdatedAt = now
}

// Equals compares identities by id only.
func (i Identity) Equals(other Identity) bool {
	return i.ID != "" && i.ID == other.ID
}

// Validate enforces the non-empty id invariant.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return dErrors.New(dErrors.CodeValidation, "id cannot be empty")
	}
	return nil
}

// Clone returns a structural copy preserving identity and timestamps.
func (i Identity) Clone() Identity {
	return i
}
