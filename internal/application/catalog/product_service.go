package catalog

import (
	"context"
	"errors"

	"github.com/fiscalmanager/backend/internal/domain/catalog"
	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	products  catalog.ProductRepositoryFactory
	companies company.RepositoryFactory
	logger    *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	products catalog.ProductRepositoryFactory,
	companies company.RepositoryFactory,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:  products,
		companies: companies,
		logger:    logger,
	}
}

// Create adds a product to one of the scope owner's companies
func (s *ProductService) Create(ctx context.Context, scope shared.TenantScope, req ProductRequest) (*ProductResponse, error) {
	if err := s.ensureCompany(ctx, scope, req.CompanyID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(scope.OwnerID(), req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.products.ForTenant(scope).Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("company_id", product.CompanyID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns the owner's products, optionally for one company only
func (s *ProductService) List(ctx context.Context, scope shared.TenantScope, filter ProductListFilter) ([]ProductResponse, error) {
	products, err := s.products.ForTenant(scope).FindAll(ctx, catalog.ProductFilter{CompanyID: filter.CompanyID})
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.ForTenant(scope).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces the product data. Moving the product to another company
// requires that company to belong to the owner as well.
func (s *ProductService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	repo := s.products.ForTenant(scope)
	product, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCompany(ctx, scope, req.CompanyID); err != nil {
		return nil, err
	}
	if err := product.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product. Invoice lines keep their snapshot of it.
func (s *ProductService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if err := s.products.ForTenant(scope).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) ensureCompany(ctx context.Context, scope shared.TenantScope, companyID uuid.UUID) error {
	if companyID == uuid.Nil {
		return shared.NewValidationError("empresa_id", "empresa_id is required")
	}
	if _, err := s.companies.ForTenant(scope).FindByID(ctx, companyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return company.ErrCompanyNotFound
		}
		return err
	}
	return nil
}
