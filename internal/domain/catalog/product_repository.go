package catalog

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	CompanyID *uuid.UUID
}

// ProductRepository accesses the products of a single owner
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs returns the products found among ids; unknown ids are skipped
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// ProductRepositoryFactory hands out owner-scoped product repositories
type ProductRepositoryFactory interface {
	ForTenant(scope shared.TenantScope) ProductRepository
}

// ErrProductNotFound is returned for unknown or foreign products
var ErrProductNotFound = shared.NewNotFoundError("Produto não encontrado")
