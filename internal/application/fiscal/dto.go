package fiscal

import (
	"time"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one requested line
type InvoiceItemRequest struct {
	ProductID uuid.UUID       `json:"produto_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantidade"`
}

// CreateInvoiceRequest is the body of invoice emission. Prices and rates
// come from the referenced products, never from the client.
type CreateInvoiceRequest struct {
	CompanyID uuid.UUID            `json:"empresa_id" binding:"required"`
	Number    string               `json:"numero_nf" binding:"required,max=50"`
	Items     []InvoiceItemRequest `json:"itens" binding:"required,min=1,dive"`
}

func (r CreateInvoiceRequest) lineRequests() []fiscal.LineRequest {
	reqs := make([]fiscal.LineRequest, len(r.Items))
	for i, it := range r.Items {
		reqs[i] = fiscal.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return reqs
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	CompanyID *uuid.UUID `form:"empresa_id"`
}

// InvoiceItemResponse is an invoice line in API responses
type InvoiceItemResponse struct {
	ProductID   uuid.UUID          `json:"produto_id"`
	ProductName string             `json:"produto_nome"`
	ProductCode string             `json:"produto_codigo,omitempty"`
	Quantity    decimal.Decimal    `json:"quantidade"`
	UnitPrice   decimal.Decimal    `json:"valor_unitario"`
	ICMSRate    decimal.Decimal    `json:"aliquota_icms"`
	PISRate     decimal.Decimal    `json:"aliquota_pis"`
	COFINSRate  decimal.Decimal    `json:"aliquota_cofins"`
	IPIRate     decimal.Decimal    `json:"aliquota_ipi"`
	LineTotal   valueobject.Amount `json:"total_item"`
	ICMS        valueobject.Amount `json:"icms"`
	PIS         valueobject.Amount `json:"pis"`
	COFINS      valueobject.Amount `json:"cofins"`
	IPI         valueobject.Amount `json:"ipi"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID          uuid.UUID             `json:"id"`
	CompanyID   uuid.UUID             `json:"empresa_id"`
	CompanyName string                `json:"empresa_nome"`
	Number      string                `json:"numero_nf"`
	IssuedAt    time.Time             `json:"data_emissao"`
	Items       []InvoiceItemResponse `json:"itens"`
	TotalValue  valueobject.Amount    `json:"total_valor"`
	TotalICMS   valueobject.Amount    `json:"total_icms"`
	TotalPIS    valueobject.Amount    `json:"total_pis"`
	TotalCOFINS valueobject.Amount    `json:"total_cofins"`
	TotalIPI    valueobject.Amount    `json:"total_ipi"`
	OwnerID     uuid.UUID             `json:"usuario_id"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts a domain invoice to its response DTO
func ToInvoiceResponse(inv *fiscal.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Lines))
	for i, l := range inv.Lines {
		items[i] = InvoiceItemResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			ICMSRate:    l.Rates.ICMS,
			PISRate:     l.Rates.PIS,
			COFINSRate:  l.Rates.COFINS,
			IPIRate:     l.Rates.IPI,
			LineTotal:   valueobject.NewAmount(l.LineTotal),
			ICMS:        valueobject.NewAmount(l.ICMS),
			PIS:         valueobject.NewAmount(l.PIS),
			COFINS:      valueobject.NewAmount(l.COFINS),
			IPI:         valueobject.NewAmount(l.IPI),
		}
	}
	return InvoiceResponse{
		ID:          inv.ID,
		CompanyID:   inv.CompanyID,
		CompanyName: inv.CompanyName,
		Number:      inv.Number,
		IssuedAt:    inv.IssuedAt,
		Items:       items,
		TotalValue:  valueobject.NewAmount(inv.Totals.Total),
		TotalICMS:   valueobject.NewAmount(inv.Totals.ICMS),
		TotalPIS:    valueobject.NewAmount(inv.Totals.PIS),
		TotalCOFINS: valueobject.NewAmount(inv.Totals.COFINS),
		TotalIPI:    valueobject.NewAmount(inv.Totals.IPI),
		OwnerID:     inv.OwnerID,
		CreatedAt:   inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invs []fiscal.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invs))
	for i := range invs {
		out[i] = ToInvoiceResponse(&invs[i])
	}
	return out
}
