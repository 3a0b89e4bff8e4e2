package models

import (
	"github.com/fiscalmanager/backend/internal/domain/catalog"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	OwnedModel
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Code       string          `gorm:"type:varchar(60)"`
	Category   string          `gorm:"type:varchar(100)"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ICMSRate   decimal.Decimal `gorm:"column:icms_rate;type:decimal(9,4);not null"`
	PISRate    decimal.Decimal `gorm:"column:pis_rate;type:decimal(9,4);not null"`
	COFINSRate decimal.Decimal `gorm:"column:cofins_rate;type:decimal(9,4);not null"`
	IPIRate    decimal.Decimal `gorm:"column:ipi_rate;type:decimal(9,4);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Code:        m.Code,
		Category:    m.Category,
		UnitPrice:   m.UnitPrice,
		Rates: fiscal.TaxRates{
			ICMS:   m.ICMSRate,
			PIS:    m.PISRate,
			COFINS: m.COFINSRate,
			IPI:    m.IPIRate,
		},
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainOwned(p.OwnedEntity)
	m.CompanyID = p.CompanyID
	m.Name = p.Name
	m.Code = p.Code
	m.Category = p.Category
	m.UnitPrice = p.UnitPrice
	m.ICMSRate = p.Rates.ICMS
	m.PISRate = p.Rates.PIS
	m.COFINSRate = p.Rates.COFINS
	m.IPIRate = p.Rates.IPI
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
