package models

import (
	"time"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// company_name is a snapshot taken at emission.
type InvoiceModel struct {
	OwnedModel
	CompanyID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	CompanyName  string             `gorm:"type:varchar(200);not null"`
	Number       string             `gorm:"type:varchar(50);not null"`
	IssuedAt     time.Time          `gorm:"not null;index"`
	TotalAmount  decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	ICMSAmount   decimal.Decimal    `gorm:"column:icms_amount;type:decimal(18,2);not null"`
	PISAmount    decimal.Decimal    `gorm:"column:pis_amount;type:decimal(18,2);not null"`
	COFINSAmount decimal.Decimal    `gorm:"column:cofins_amount;type:decimal(18,2);not null"`
	IPIAmount    decimal.Decimal    `gorm:"column:ipi_amount;type:decimal(18,2);not null"`
	Lines        []InvoiceLineModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *fiscal.Invoice {
	inv := &fiscal.Invoice{
		OwnedEntity: m.OwnedModel.ToDomainOwned(),
		CompanyID:   m.CompanyID,
		CompanyName: m.CompanyName,
		Number:      m.Number,
		IssuedAt:    m.IssuedAt.UTC(),
		Totals: fiscal.InvoiceTotals{
			Total:  m.TotalAmount,
			ICMS:   m.ICMSAmount,
			PIS:    m.PISAmount,
			COFINS: m.COFINSAmount,
			IPI:    m.IPIAmount,
		},
		Lines: make([]fiscal.InvoiceLine, len(m.Lines)),
	}
	for i := range m.Lines {
		inv.Lines[i] = m.Lines[i].ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model, lines included
func (m *InvoiceModel) FromDomain(inv *fiscal.Invoice) {
	m.FromDomainOwned(inv.OwnedEntity)
	m.CompanyID = inv.CompanyID
	m.CompanyName = inv.CompanyName
	m.Number = inv.Number
	m.IssuedAt = inv.IssuedAt
	m.TotalAmount = inv.Totals.Total
	m.ICMSAmount = inv.Totals.ICMS
	m.PISAmount = inv.Totals.PIS
	m.COFINSAmount = inv.Totals.COFINS
	m.IPIAmount = inv.Totals.IPI
	m.Lines = make([]InvoiceLineModel, len(inv.Lines))
	for i, l := range inv.Lines {
		m.Lines[i] = InvoiceLineModelFromDomain(inv, l)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *fiscal.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceLineModel is the persistence model for an invoice line. Lines
// carry the owner id of their invoice so they can be filtered the same way.
type InvoiceLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	ProductCode  string          `gorm:"type:varchar(60)"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ICMSRate     decimal.Decimal `gorm:"column:icms_rate;type:decimal(9,4);not null"`
	PISRate      decimal.Decimal `gorm:"column:pis_rate;type:decimal(9,4);not null"`
	COFINSRate   decimal.Decimal `gorm:"column:cofins_rate;type:decimal(9,4);not null"`
	IPIRate      decimal.Decimal `gorm:"column:ipi_rate;type:decimal(9,4);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ICMSAmount   decimal.Decimal `gorm:"column:icms_amount;type:decimal(18,2);not null"`
	PISAmount    decimal.Decimal `gorm:"column:pis_amount;type:decimal(18,2);not null"`
	COFINSAmount decimal.Decimal `gorm:"column:cofins_amount;type:decimal(18,2);not null"`
	IPIAmount    decimal.Decimal `gorm:"column:ipi_amount;type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the line model to a domain InvoiceLine
func (m *InvoiceLineModel) ToDomain() fiscal.InvoiceLine {
	return fiscal.InvoiceLine{
		ID:          m.ID,
		Position:    m.Position,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		ProductCode: m.ProductCode,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Rates: fiscal.TaxRates{
			ICMS:   m.ICMSRate,
			PIS:    m.PISRate,
			COFINS: m.COFINSRate,
			IPI:    m.IPIRate,
		},
		LineTaxes: fiscal.LineTaxes{
			LineTotal: m.LineTotal,
			ICMS:      m.ICMSAmount,
			PIS:       m.PISAmount,
			COFINS:    m.COFINSAmount,
			IPI:       m.IPIAmount,
		},
	}
}

// InvoiceLineModelFromDomain builds the line model for line of inv
func InvoiceLineModelFromDomain(inv *fiscal.Invoice, l fiscal.InvoiceLine) InvoiceLineModel {
	return InvoiceLineModel{
		ID:           l.ID,
		OwnerID:      inv.OwnerID,
		InvoiceID:    inv.ID,
		Position:     l.Position,
		ProductID:    l.ProductID,
		ProductName:  l.ProductName,
		ProductCode:  l.ProductCode,
		Quantity:     l.Quantity,
		UnitPrice:    l.UnitPrice,
		ICMSRate:     l.Rates.ICMS,
		PISRate:      l.Rates.PIS,
		COFINSRate:   l.Rates.COFINS,
		IPIRate:      l.Rates.IPI,
		LineTotal:    l.LineTotal,
		ICMSAmount:   l.ICMS,
		PISAmount:    l.PIS,
		COFINSAmount: l.COFINS,
		IPIAmount:    l.IPI,
	}
}
