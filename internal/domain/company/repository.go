package company

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository accesses the companies of a single owner
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindAll(ctx context.Context) ([]Company, error)
	// ExistsByCNPJ reports whether another company of the owner uses cnpj.
	// excludeID may be uuid.Nil.
	ExistsByCNPJ(ctx context.Context, cnpj string, excludeID uuid.UUID) (bool, error)
	Save(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// RepositoryFactory hands out owner-scoped company repositories
type RepositoryFactory interface {
	ForTenant(scope shared.TenantScope) Repository
}

// Company errors
var (
	ErrCompanyNotFound = shared.NewNotFoundError("Empresa não encontrada")
	ErrCNPJTaken       = shared.NewConflictError("cnpj", "CNPJ já cadastrado")
)
