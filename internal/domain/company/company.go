package company

import (
	"strings"
	"unicode/utf8"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Company is an issuer of invoices, owned by one user
type Company struct {
	shared.OwnedEntity
	Name    string
	CNPJ    string
	Address valueobject.Address
	Regime  fiscal.TaxRegime
}

// NewCompany creates a company owned by ownerID. The CNPJ is stored as given
// (trimmed); check digits are not verified.
func NewCompany(ownerID uuid.UUID, name, cnpj string, addr valueobject.Address, regime fiscal.TaxRegime) (*Company, error) {
	c := &Company{OwnedEntity: shared.NewOwnedEntity(ownerID)}
	if err := c.apply(name, cnpj, addr, regime); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces every mutable field
func (c *Company) Update(name, cnpj string, addr valueobject.Address, regime fiscal.TaxRegime) error {
	if err := c.apply(name, cnpj, addr, regime); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *Company) apply(name, cnpj string, addr valueobject.Address, regime fiscal.TaxRegime) error {
	name = strings.TrimSpace(name)
	cnpj = strings.TrimSpace(cnpj)

	if name == "" {
		return shared.NewValidationError("nome", "nome is required")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewValidationError("nome", "nome cannot exceed 200 characters")
	}
	if cnpj == "" {
		return shared.NewValidationError("cnpj", "cnpj is required")
	}
	if len(cnpj) > 20 {
		return shared.NewValidationError("cnpj", "cnpj cannot exceed 20 characters")
	}
	if !regime.IsValid() {
		return shared.NewValidationError("regime_tributario", "regime tributário inválido: %q", string(regime))
	}

	c.Name = name
	c.CNPJ = cnpj
	c.Address = addr
	c.Regime = regime
	return nil
}
