package catalog

import (
	"time"

	"github.com/fiscalmanager/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRequest is the body of create and update. Omitted rates take the
// defaults 18 / 1.65 / 7.6 / 0.
type ProductRequest struct {
	CompanyID  uuid.UUID        `json:"empresa_id" binding:"required"`
	Name       string           `json:"nome" binding:"required,max=200"`
	Code       string           `json:"codigo" binding:"max=60"`
	Category   string           `json:"categoria" binding:"max=100"`
	UnitPrice  decimal.Decimal  `json:"valor_unitario"`
	ICMSRate   *decimal.Decimal `json:"aliquota_icms"`
	PISRate    *decimal.Decimal `json:"aliquota_pis"`
	COFINSRate *decimal.Decimal `json:"aliquota_cofins"`
	IPIRate    *decimal.Decimal `json:"aliquota_ipi"`
}

func (r ProductRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		CompanyID:  r.CompanyID,
		Name:       r.Name,
		Code:       r.Code,
		Category:   r.Category,
		UnitPrice:  r.UnitPrice,
		ICMSRate:   r.ICMSRate,
		PISRate:    r.PISRate,
		COFINSRate: r.COFINSRate,
		IPIRate:    r.IPIRate,
	}
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	CompanyID *uuid.UUID `form:"empresa_id"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	CompanyID  uuid.UUID       `json:"empresa_id"`
	Name       string          `json:"nome"`
	Code       string          `json:"codigo"`
	Category   string          `json:"categoria"`
	UnitPrice  decimal.Decimal `json:"valor_unitario"`
	ICMSRate   decimal.Decimal `json:"aliquota_icms"`
	PISRate    decimal.Decimal `json:"aliquota_pis"`
	COFINSRate decimal.Decimal `json:"aliquota_cofins"`
	IPIRate    decimal.Decimal `json:"aliquota_ipi"`
	OwnerID    uuid.UUID       `json:"usuario_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		Name:       p.Name,
		Code:       p.Code,
		Category:   p.Category,
		UnitPrice:  p.UnitPrice,
		ICMSRate:   p.Rates.ICMS,
		PISRate:    p.Rates.PIS,
		COFINSRate: p.Rates.COFINS,
		IPIRate:    p.Rates.IPI,
		OwnerID:    p.OwnerID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
