package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item of a company with its tax rates
type Product struct {
	shared.OwnedEntity
	CompanyID uuid.UUID
	Name      string
	Code      string
	Category  string
	UnitPrice decimal.Decimal
	Rates     fiscal.TaxRates
}

// ProductInput carries the mutable product fields. Nil rates fall back to
// the defaults (ICMS 18, PIS 1.65, COFINS 7.6, IPI 0).
type ProductInput struct {
	CompanyID  uuid.UUID
	Name       string
	Code       string
	Category   string
	UnitPrice  decimal.Decimal
	ICMSRate   *decimal.Decimal
	PISRate    *decimal.Decimal
	COFINSRate *decimal.Decimal
	IPIRate    *decimal.Decimal
}

// Rates resolves the input rates against the defaults
func (in ProductInput) Rates() fiscal.TaxRates {
	r := fiscal.DefaultTaxRates()
	if in.ICMSRate != nil {
		r.ICMS = *in.ICMSRate
	}
	if in.PISRate != nil {
		r.PIS = *in.PISRate
	}
	if in.COFINSRate != nil {
		r.COFINS = *in.COFINSRate
	}
	if in.IPIRate != nil {
		r.IPI = *in.IPIRate
	}
	return r
}

// NewProduct creates a product owned by ownerID
func NewProduct(ownerID uuid.UUID, in ProductInput) (*Product, error) {
	p := &Product{OwnedEntity: shared.NewOwnedEntity(ownerID)}
	if err := p.apply(in); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces every mutable field. Invoices already issued keep their
// own copy of the product data.
func (p *Product) Update(in ProductInput) error {
	if err := p.apply(in); err != nil {
		return err
	}
	p.Touch()
	return nil
}

// Snapshot returns the data copied into invoice lines
func (p *Product) Snapshot() fiscal.ProductSnapshot {
	return fiscal.ProductSnapshot{
		ID:        p.ID,
		Name:      p.Name,
		Code:      p.Code,
		UnitPrice: p.UnitPrice,
		Rates:     p.Rates,
	}
}

func (p *Product) apply(in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)

	if in.CompanyID == uuid.Nil {
		return shared.NewValidationError("empresa_id", "empresa_id is required")
	}
	if name == "" {
		return shared.NewValidationError("nome", "nome is required")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewValidationError("nome", "nome cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(code) > 60 {
		return shared.NewValidationError("codigo", "codigo cannot exceed 60 characters")
	}
	if in.UnitPrice.IsNegative() {
		return shared.NewValidationError("valor_unitario", "valor_unitario must not be negative, got %s", in.UnitPrice.String())
	}
	rates := in.Rates()
	if err := rates.Validate(); err != nil {
		return err
	}

	p.CompanyID = in.CompanyID
	p.Name = name
	p.Code = code
	p.Category = strings.TrimSpace(in.Category)
	p.UnitPrice = in.UnitPrice
	p.Rates = rates
	return nil
}
