package persistence

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/catalog"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence/models"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepositoryFactory builds owner-scoped product repositories
type GormProductRepositoryFactory struct {
	db *gorm.DB
}

// NewGormProductRepositoryFactory creates a new GormProductRepositoryFactory
func NewGormProductRepositoryFactory(db *gorm.DB) *GormProductRepositoryFactory {
	return &GormProductRepositoryFactory{db: db}
}

// ForTenant implements catalog.ProductRepositoryFactory
func (f *GormProductRepositoryFactory) ForTenant(scope shared.TenantScope) catalog.ProductRepository {
	return &GormProductRepository{db: tenant.New(f.db, scope)}
}

// GormProductRepository implements catalog.ProductRepository for one owner
type GormProductRepository struct {
	db *tenant.DB
}

// FindByID finds a product of the owner
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateNotFound(err, catalog.ErrProductNotFound)
	}
	return model.ToDomain(), nil
}

// FindByIDs loads every product of the owner among ids in one query
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// FindAll lists the owner's products, optionally for one company
func (r *GormProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx)
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	var rows []models.ProductModel
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return productsToDomain(rows), nil
}

// Save updates the product when it exists and inserts it otherwise
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	model := models.ProductModelFromDomain(p)

	result := r.db.WithContext(ctx).Model(model).
		Select("*").Omit("id", "owner_id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	db, err := r.db.ForCreate(ctx, p.OwnerID)
	if err != nil {
		return err
	}
	return db.Create(model).Error
}

// Delete removes a product of the owner
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// Count counts the owner's products
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error
	return count, err
}

func productsToDomain(rows []models.ProductModel) []catalog.Product {
	out := make([]catalog.Product, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var (
	_ catalog.ProductRepositoryFactory = (*GormProductRepositoryFactory)(nil)
	_ catalog.ProductRepository        = (*GormProductRepository)(nil)
)
