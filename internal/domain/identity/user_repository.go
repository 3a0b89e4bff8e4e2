package identity

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines user persistence. Users are global: they are the
// tenants, so lookups are not owner-scoped.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// User errors
var (
	ErrUserNotFound = shared.NewNotFoundError("Usuário não encontrado")
	ErrEmailTaken   = shared.NewConflictError("email", "Email já cadastrado")
)
