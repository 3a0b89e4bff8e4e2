package persistence

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence/models"
	"github.com/fiscalmanager/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepositoryFactory builds owner-scoped invoice repositories
type GormInvoiceRepositoryFactory struct {
	db *gorm.DB
}

// NewGormInvoiceRepositoryFactory creates a new GormInvoiceRepositoryFactory
func NewGormInvoiceRepositoryFactory(db *gorm.DB) *GormInvoiceRepositoryFactory {
	return &GormInvoiceRepositoryFactory{db: db}
}

// ForTenant implements fiscal.InvoiceRepositoryFactory
func (f *GormInvoiceRepositoryFactory) ForTenant(scope shared.TenantScope) fiscal.InvoiceRepository {
	return &GormInvoiceRepository{db: tenant.New(f.db, scope)}
}

// GormInvoiceRepository implements fiscal.InvoiceRepository for one owner
type GormInvoiceRepository struct {
	db *tenant.DB
}

// withLines preloads the invoice lines in position order
func (r *GormInvoiceRepository) withLines(db *gorm.DB) *gorm.DB {
	owner := r.db.OwnerID()
	return db.Preload("Lines", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("owner_id = ?", owner).Order("position ASC")
	})
}

// FindByID finds an invoice of the owner with its lines
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.Invoice, error) {
	var model models.InvoiceModel
	err := r.withLines(r.db.WithContext(ctx)).Where("id = ?", id).First(&model).Error
	if err != nil {
		return nil, translateNotFound(err, fiscal.ErrInvoiceNotFound)
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices newest first (issued_at desc, id desc)
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter fiscal.InvoiceFilter) ([]fiscal.Invoice, error) {
	query := r.applyFilter(r.withLines(r.db.WithContext(ctx)), filter).
		Order("issued_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.InvoiceModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]fiscal.Invoice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts the invoice and its lines in one transaction. Invoices are
// never updated.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *fiscal.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	lines := model.Lines
	model.Lines = nil

	return r.db.Transaction(ctx, func(tx *tenant.DB) error {
		db, err := tx.ForCreate(ctx, invoice.OwnerID)
		if err != nil {
			return err
		}
		if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		return db.Create(&lines).Error
	})
}

// Delete removes an invoice of the owner together with its lines
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx *tenant.DB) error {
		if err := tx.WithContext(ctx).Where("invoice_id = ?", id).Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
		result := tx.WithContext(ctx).Where("id = ?", id).Delete(&models.InvoiceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiscal.ErrInvoiceNotFound
		}
		return nil
	})
}

type invoiceSummaryRow struct {
	InvoiceCount int64
	TotalAmount  decimal.Decimal
	ICMSAmount   decimal.Decimal
	PISAmount    decimal.Decimal
	COFINSAmount decimal.Decimal
	IPIAmount    decimal.Decimal
}

// Summarize counts the owner's invoices and sums their stored totals. The
// sums are rounded to cents.
func (r *GormInvoiceRepository) Summarize(ctx context.Context, filter fiscal.InvoiceFilter) (fiscal.InvoiceSummary, error) {
	var row invoiceSummaryRow
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter).
		Select(`COUNT(*) AS invoice_count,
			COALESCE(SUM(total_amount), 0) AS total_amount,
			COALESCE(SUM(icms_amount), 0) AS icms_amount,
			COALESCE(SUM(pis_amount), 0) AS pis_amount,
			COALESCE(SUM(cofins_amount), 0) AS cofins_amount,
			COALESCE(SUM(ipi_amount), 0) AS ipi_amount`).
		Scan(&row).Error
	if err != nil {
		return fiscal.InvoiceSummary{}, err
	}

	totals := fiscal.InvoiceTotals{
		Total:  row.TotalAmount,
		ICMS:   row.ICMSAmount,
		PIS:    row.PISAmount,
		COFINS: row.COFINSAmount,
		IPI:    row.IPIAmount,
	}
	return fiscal.InvoiceSummary{Count: row.InvoiceCount, Totals: totals.Rounded()}, nil
}

func (r *GormInvoiceRepository) applyFilter(db *gorm.DB, filter fiscal.InvoiceFilter) *gorm.DB {
	if filter.CompanyID != nil {
		db = db.Where("company_id = ?", *filter.CompanyID)
	}
	return db
}

var (
	_ fiscal.InvoiceRepositoryFactory = (*GormInvoiceRepositoryFactory)(nil)
	_ fiscal.InvoiceRepository        = (*GormInvoiceRepository)(nil)
)
