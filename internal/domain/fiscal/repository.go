package fiscal

import (
	"context"

	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter narrows invoice listings
type InvoiceFilter struct {
	CompanyID *uuid.UUID
	Limit     int // 0 = no limit
}

// InvoiceSummary aggregates every invoice in a scope
type InvoiceSummary struct {
	Count  int64
	Totals InvoiceTotals
}

// InvoiceRepository accesses the invoices of a single owner. Listings are
// ordered by emission time descending, then id descending.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	// Save persists the invoice and its lines atomically
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	Summarize(ctx context.Context, filter InvoiceFilter) (InvoiceSummary, error)
}

// InvoiceRepositoryFactory hands out owner-scoped invoice repositories
type InvoiceRepositoryFactory interface {
	ForTenant(scope shared.TenantScope) InvoiceRepository
}

// ErrInvoiceNotFound is returned for unknown or foreign invoices
var ErrInvoiceNotFound = shared.NewNotFoundError("Nota fiscal não encontrada")
