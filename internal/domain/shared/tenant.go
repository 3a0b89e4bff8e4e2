package shared

import (
	"errors"

	"github.com/google/uuid"
)

// ErrTenantRequired is returned when a scope is built without an owner
var ErrTenantRequired = errors.New("tenant scope requires a non-nil owner id")

// TenantScope is the capability that grants access to one user's records.
// Repositories for owned data can only be obtained through a scope, and they
// apply the owner filter to every statement they issue.
type TenantScope struct {
	ownerID uuid.UUID
}

// NewTenantScope builds a scope for ownerID
func NewTenantScope(ownerID uuid.UUID) (TenantScope, error) {
	if ownerID == uuid.Nil {
		return TenantScope{}, ErrTenantRequired
	}
	return TenantScope{ownerID: ownerID}, nil
}

// MustTenantScope is NewTenantScope for tests and fixtures; it panics on uuid.Nil
func MustTenantScope(ownerID uuid.UUID) TenantScope {
	s, err := NewTenantScope(ownerID)
	if err != nil {
		panic(err)
	}
	return s
}

// OwnerID returns the owning user id
func (s TenantScope) OwnerID() uuid.UUID {
	return s.ownerID
}

// IsZero reports whether the scope was never initialised
func (s TenantScope) IsZero() bool {
	return s.ownerID == uuid.Nil
}
