package models

import (
	"time"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// OwnedModel is the base of every tenant-owned table. owner_id is the
// tenant key applied by persistence/tenant.
type OwnedModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomainOwned converts OwnedModel to the domain OwnedEntity
func (m *OwnedModel) ToDomainOwned() shared.OwnedEntity {
	return shared.OwnedEntity{
		BaseEntity: m.BaseModel.ToDomain(),
		OwnerID:    m.OwnerID,
	}
}

// FromDomainOwned populates OwnedModel from the domain OwnedEntity
func (m *OwnedModel) FromDomainOwned(o shared.OwnedEntity) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.OwnerID = o.OwnerID
}

// All returns every model, in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&UserModel{},
		&CompanyModel{},
		&ProductModel{},
		&InvoiceModel{},
		&InvoiceLineModel{},
	}
}
