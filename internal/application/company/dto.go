package company

import (
	"time"

	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/google/uuid"
)

// CompanyRequest is the body of create and update; updates replace every field
type CompanyRequest struct {
	Name     string `json:"nome" binding:"required,max=200"`
	CNPJ     string `json:"cnpj" binding:"required,max=20"`
	Street   string `json:"rua" binding:"max=200"`
	Number   string `json:"numero" binding:"max=200"`
	District string `json:"bairro" binding:"max=200"`
	City     string `json:"cidade" binding:"required,max=200"`
	State    string `json:"estado" binding:"required,max=200"`
	ZipCode  string `json:"cep" binding:"max=200"`
	Regime   string `json:"regime_tributario" binding:"required,tax_regime"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	CNPJ      string    `json:"cnpj"`
	Street    string    `json:"rua"`
	Number    string    `json:"numero"`
	District  string    `json:"bairro"`
	City      string    `json:"cidade"`
	State     string    `json:"estado"`
	ZipCode   string    `json:"cep"`
	Regime    string    `json:"regime_tributario"`
	OwnerID   uuid.UUID `json:"usuario_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCompanyResponse converts a domain company to its response DTO
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Street:    c.Address.Street(),
		Number:    c.Address.Number(),
		District:  c.Address.District(),
		City:      c.Address.City(),
		State:     c.Address.State(),
		ZipCode:   c.Address.ZipCode(),
		Regime:    c.Regime.String(),
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCompanyResponses converts a slice of companies
func ToCompanyResponses(cs []company.Company) []CompanyResponse {
	out := make([]CompanyResponse, len(cs))
	for i := range cs {
		out[i] = ToCompanyResponse(&cs[i])
	}
	return out
}
