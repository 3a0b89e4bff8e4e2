package persistence

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/identity"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository stores the accounts. Users are the tenants themselves,
// so this is the one repository that is not obtained through ForTenant and
// the users table is not covered by the tenant guard.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a user. Losing the race on uq_users_email yields
// identity.ErrEmailTaken, same as the service-level check.
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return translateDuplicate(
		r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error,
		identity.ErrEmailTaken,
	)
}

// FindByID loads the account behind a token's user_id claim
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, translateNotFound(err, identity.ErrUserNotFound)
	}
	return model.ToDomain(), nil
}

// FindByEmail looks an account up for login. An address that cannot be
// normalized cannot belong to anyone, so it is reported as not found.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	normalized, err := identity.NormalizeEmail(email)
	if err != nil {
		return nil, identity.ErrUserNotFound
	}
	var model models.UserModel
	if err := r.byEmail(ctx, normalized).Take(&model).Error; err != nil {
		return nil, translateNotFound(err, identity.ErrUserNotFound)
	}
	return model.ToDomain(), nil
}

// ExistsByEmail reports whether email is registered, ignoring case
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	normalized, err := identity.NormalizeEmail(email)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.byEmail(ctx, normalized).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormUserRepository) byEmail(ctx context.Context, normalized string) *gorm.DB {
	return r.db.WithContext(ctx).Where("email = ?", normalized)
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
