package models

import (
	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for the Company domain entity.
// The CNPJ is unique per owner, not globally.
type CompanyModel struct {
	BaseModel
	OwnerID  uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:uq_companies_owner_cnpj,priority:1"`
	Name     string           `gorm:"type:varchar(200);not null"`
	CNPJ     string           `gorm:"column:cnpj;type:varchar(20);not null;uniqueIndex:uq_companies_owner_cnpj,priority:2"`
	Street   string           `gorm:"type:varchar(200)"`
	Number   string           `gorm:"type:varchar(200)"`
	District string           `gorm:"type:varchar(200)"`
	City     string           `gorm:"type:varchar(200)"`
	State    string           `gorm:"type:varchar(200)"`
	ZipCode  string           `gorm:"type:varchar(200)"`
	Regime   fiscal.TaxRegime `gorm:"type:varchar(30);not null"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
// A stored address that no longer validates maps to the zero Address.
func (m *CompanyModel) ToDomain() *company.Company {
	addr, err := valueobject.NewAddress(m.Street, m.Number, m.District, m.City, m.State, m.ZipCode)
	if err != nil {
		addr = valueobject.Address{}
	}
	return &company.Company{
		OwnedEntity: shared.OwnedEntity{BaseEntity: m.BaseModel.ToDomain(), OwnerID: m.OwnerID},
		Name:        m.Name,
		CNPJ:        m.CNPJ,
		Address:     addr,
		Regime:      m.Regime,
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.OwnerID = c.OwnerID
	m.Name = c.Name
	m.CNPJ = c.CNPJ
	m.Street = c.Address.Street()
	m.Number = c.Address.Number()
	m.District = c.Address.District()
	m.City = c.Address.City()
	m.State = c.Address.State()
	m.ZipCode = c.Address.ZipCode()
	m.Regime = c.Regime
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
