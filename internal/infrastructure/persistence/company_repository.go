package persistence

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence/models"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepositoryFactory builds owner-scoped company repositories
type GormCompanyRepositoryFactory struct {
	db *gorm.DB
}

// NewGormCompanyRepositoryFactory creates a new GormCompanyRepositoryFactory
func NewGormCompanyRepositoryFactory(db *gorm.DB) *GormCompanyRepositoryFactory {
	return &GormCompanyRepositoryFactory{db: db}
}

// ForTenant implements company.RepositoryFactory
func (f *GormCompanyRepositoryFactory) ForTenant(scope shared.TenantScope) company.Repository {
	return &GormCompanyRepository{db: tenant.New(f.db, scope)}
}

// GormCompanyRepository implements company.Repository for one owner
type GormCompanyRepository struct {
	db *tenant.DB
}

// FindByID finds a company of the owner
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, company.ErrCompanyNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll lists the owner's companies in creation order
func (r *GormCompanyRepository) FindAll(ctx context.Context) ([]company.Company, error) {
	var rows []models.CompanyModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]company.Company, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByCNPJ checks whether another company of the owner uses cnpj
func (r *GormCompanyRepository) ExistsByCNPJ(ctx context.Context, cnpj string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.CompanyModel{}).Where("cnpj = ?", cnpj)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save updates the company when it exists and inserts it otherwise
func (r *GormCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	model := models.CompanyModelFromDomain(c)

	result := r.db.WithContext(ctx).Model(model).
		Select("*").Omit("id", "owner_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return translateDuplicate(result.Error, company.ErrCNPJTaken)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	db, err := r.db.ForCreate(ctx, c.OwnerID)
	if err != nil {
		return err
	}
	return translateDuplicate(db.Create(model).Error, company.ErrCNPJTaken)
}

// Delete removes a company of the owner
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CompanyModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

// Count counts the owner's companies
func (r *GormCompanyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).Count(&count).Error
	return count, err
}

var (
	_ company.RepositoryFactory = (*GormCompanyRepositoryFactory)(nil)
	_ company.Repository        = (*GormCompanyRepository)(nil)
)
