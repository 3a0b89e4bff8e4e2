package fiscal

import (
	"strings"
	"time"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLine is an item of an invoice. Product data is copied at emission
// so later product edits do not change issued invoices.
type InvoiceLine struct {
	ID          uuid.UUID
	Position    int
	ProductID   uuid.UUID
	ProductName string
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Rates       TaxRates
	LineTaxes
}

// Invoice is an emitted fiscal document (nota fiscal). Invoices are
// immutable; the only lifecycle operation after emission is deletion.
type Invoice struct {
	shared.OwnedEntity
	CompanyID   uuid.UUID
	CompanyName string
	Number      string
	IssuedAt    time.Time
	Lines       []InvoiceLine
	Totals      InvoiceTotals
}

// NewInvoice assembles an invoice from resolved lines and computes totals
func NewInvoice(ownerID, companyID uuid.UUID, companyName, number string, issuedAt time.Time, lines []InvoiceLine) (*Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewValidationError("numero_nf", "numero_nf is required")
	}
	if len(number) > 50 {
		return nil, shared.NewValidationError("numero_nf", "numero_nf cannot exceed 50 characters")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("empresa_id", "empresa_id is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewValidationError("itens", "an invoice needs at least one item")
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	inv := &Invoice{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		CompanyID:   companyID,
		CompanyName: companyName,
		Number:      number,
		IssuedAt:    issuedAt.UTC(),
		Lines:       make([]InvoiceLine, len(lines)),
	}

	taxes := make([]LineTaxes, len(lines))
	for i, l := range lines {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		l.Position = i + 1
		inv.Lines[i] = l
		taxes[i] = l.LineTaxes
	}
	inv.Totals = SumTotals(taxes)

	return inv, nil
}

// TotalTaxes returns ICMS + PIS + COFINS + IPI
func (i *Invoice) TotalTaxes() decimal.Decimal {
	return i.Totals.ICMS.Add(i.Totals.PIS).Add(i.Totals.COFINS).Add(i.Totals.IPI)
}
