package fiscal

import (
	"fmt"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuantityPlaces is the scale of invoice_lines.quantity. Taxes are computed
// on the requested quantity, so a finer one would be stored rounded and no
// longer match its taxes.
const QuantityPlaces = 4

// LineRequest is one requested invoice item
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// ProductSnapshot is the product data copied into an invoice line
type ProductSnapshot struct {
	ID        uuid.UUID
	Name      string
	Code      string
	UnitPrice decimal.Decimal
	Rates     TaxRates
}

// LineResult is the outcome of resolving one LineRequest. It is either a
// ResolvedLine or a MissingProduct.
type LineResult interface {
	lineResult()
}

// ResolvedLine carries a fully calculated invoice line
type ResolvedLine struct {
	Line InvoiceLine
}

// MissingProduct reports a requested product that is absent from the
// caller's catalog
type MissingProduct struct {
	ProductID uuid.UUID
}

func (ResolvedLine) lineResult()   {}
func (MissingProduct) lineResult() {}

// ResolveLine snapshots the product and runs the tax calculator, or reports
// the product as missing.
func ResolveLine(req LineRequest, products map[uuid.UUID]ProductSnapshot, regime TaxRegime) LineResult {
	p, ok := products[req.ProductID]
	if !ok {
		return MissingProduct{ProductID: req.ProductID}
	}
	return ResolvedLine{Line: InvoiceLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		ProductCode: p.Code,
		Quantity:    req.Quantity,
		UnitPrice:   p.UnitPrice,
		Rates:       p.Rates,
		LineTaxes:   CalculateLineTaxes(p.UnitPrice, req.Quantity, p.Rates, regime),
	}}
}

// ResolveLines resolves every request, in order
func ResolveLines(reqs []LineRequest, products map[uuid.UUID]ProductSnapshot, regime TaxRegime) []LineResult {
	out := make([]LineResult, len(reqs))
	for i, r := range reqs {
		out[i] = ResolveLine(r, products, regime)
	}
	return out
}

// CollectLines returns the resolved lines, or a not-found error naming the
// first missing product. Either every line resolves or none is returned.
func CollectLines(results []LineResult) ([]InvoiceLine, error) {
	lines := make([]InvoiceLine, 0, len(results))
	for _, r := range results {
		switch v := r.(type) {
		case ResolvedLine:
			lines = append(lines, v.Line)
		case MissingProduct:
			return nil, shared.NewNotFoundError(fmt.Sprintf("Produto %s não encontrado", v.ProductID))
		default:
			return nil, fmt.Errorf("unexpected line result %T", r)
		}
	}
	return lines, nil
}

// ValidateLineRequests rejects negative quantities
func ValidateLineRequests(reqs []LineRequest) error {
	for i, r := range reqs {
		if r.ProductID == uuid.Nil {
			return shared.NewValidationError("itens", "item %d: produto_id is required", i+1)
		}
		if r.Quantity.IsNegative() {
			return shared.NewValidationError("itens", "item %d: quantidade must not be negative, got %s", i+1, r.Quantity.String())
		}
		if !r.Quantity.Equal(r.Quantity.Truncate(QuantityPlaces)) {
			return shared.NewValidationError("itens", "item %d: quantidade allows at most %d decimal places, got %s", i+1, QuantityPlaces, r.Quantity.String())
		}
	}
	return nil
}
