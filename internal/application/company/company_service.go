package company

import (
	"context"
	"errors"

	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyService handles company registration and maintenance
type CompanyService struct {
	companies company.RepositoryFactory
	logger    *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companies company.RepositoryFactory, logger *zap.Logger) *CompanyService {
	return &CompanyService{companies: companies, logger: logger}
}

// Create registers a company for the scope owner. The CNPJ must be unused
// among that owner's companies.
func (s *CompanyService) Create(ctx context.Context, scope shared.TenantScope, req CompanyRequest) (*CompanyResponse, error) {
	regime, addr, err := parseRequest(req)
	if err != nil {
		return nil, err
	}

	c, err := company.NewCompany(scope.OwnerID(), req.Name, req.CNPJ, addr, regime)
	if err != nil {
		return nil, err
	}

	repo := s.companies.ForTenant(scope)
	if err := ensureCNPJAvailable(ctx, repo, c.CNPJ, uuid.Nil); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Company created",
		zap.String("company_id", c.ID.String()),
		zap.String("owner_id", scope.OwnerID().String()))

	resp := ToCompanyResponse(c)
	return &resp, nil
}

// List returns every company of the scope owner, oldest first
func (s *CompanyService) List(ctx context.Context, scope shared.TenantScope) ([]CompanyResponse, error) {
	cs, err := s.companies.ForTenant(scope).FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponses(cs), nil
}

// GetByID returns one company
func (s *CompanyService) GetByID(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*CompanyResponse, error) {
	c, err := s.companies.ForTenant(scope).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(c)
	return &resp, nil
}

// Update replaces the company data. A changed CNPJ is checked again for
// uniqueness.
func (s *CompanyService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req CompanyRequest) (*CompanyResponse, error) {
	regime, addr, err := parseRequest(req)
	if err != nil {
		return nil, err
	}

	repo := s.companies.ForTenant(scope)
	c, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousCNPJ := c.CNPJ
	if err := c.Update(req.Name, req.CNPJ, addr, regime); err != nil {
		return nil, err
	}
	if c.CNPJ != previousCNPJ {
		if err := ensureCNPJAvailable(ctx, repo, c.CNPJ, c.ID); err != nil {
			return nil, err
		}
	}
	if err := repo.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(c)
	return &resp, nil
}

// Delete removes a company. Products and invoices of the company are kept.
func (s *CompanyService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if err := s.companies.ForTenant(scope).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Company deleted", zap.String("company_id", id.String()))
	return nil
}

func ensureCNPJAvailable(ctx context.Context, repo company.Repository, cnpj string, excludeID uuid.UUID) error {
	taken, err := repo.ExistsByCNPJ(ctx, cnpj, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return company.ErrCNPJTaken
	}
	return nil
}

func parseRequest(req CompanyRequest) (fiscal.TaxRegime, valueobject.Address, error) {
	regime, err := fiscal.ParseTaxRegime(req.Regime)
	if err != nil {
		return "", valueobject.Address{}, err
	}
	addr, err := valueobject.NewAddress(req.Street, req.Number, req.District, req.City, req.State, req.ZipCode)
	if err != nil {
		var ae *valueobject.AddressError
		if errors.As(err, &ae) {
			return "", valueobject.Address{}, shared.NewValidationError(ae.Field, "%s %s", ae.Field, ae.Reason)
		}
		return "", valueobject.Address{}, err
	}
	return regime, addr, nil
}
