package shared

import (
	"github.com/google/uuid"
)

// OwnedEntity is an entity that belongs to exactly one user. The owner id is
// the tenant key: every query against an owned table filters on it.
type OwnedEntity struct {
	BaseEntity
	OwnerID uuid.UUID
}

// NewOwnedEntity creates a base entity owned by ownerID
func NewOwnedEntity(ownerID uuid.UUID) OwnedEntity {
	return OwnedEntity{
		BaseEntity: NewBaseEntity(),
		OwnerID:    ownerID,
	}
}

// IsOwnedBy reports whether userID owns the entity
func (o *OwnedEntity) IsOwnedBy(userID uuid.UUID) bool {
	return o.OwnerID == userID
}
