package fiscal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fiscalmanager/backend/internal/domain/catalog"
	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceMetrics receives a notification for every emitted invoice
type InvoiceMetrics interface {
	RecordInvoiceIssued(ctx context.Context, regime fiscal.TaxRegime, totals fiscal.InvoiceTotals)
}

type noopInvoiceMetrics struct{}

func (noopInvoiceMetrics) RecordInvoiceIssued(context.Context, fiscal.TaxRegime, fiscal.InvoiceTotals) {}

// InvoiceService emits, lists and deletes invoices. Invoices are never
// updated after emission.
type InvoiceService struct {
	invoices  fiscal.InvoiceRepositoryFactory
	products  catalog.ProductRepositoryFactory
	companies company.RepositoryFactory
	metrics   InvoiceMetrics
	now       func() time.Time
	logger    *zap.Logger
}

// InvoiceServiceOption configures an InvoiceService
type InvoiceServiceOption func(*InvoiceService)

// WithInvoiceMetrics reports emitted invoices to m
func WithInvoiceMetrics(m InvoiceMetrics) InvoiceServiceOption {
	return func(s *InvoiceService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the emission clock
func WithClock(now func() time.Time) InvoiceServiceOption {
	return func(s *InvoiceService) { s.now = now }
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoices fiscal.InvoiceRepositoryFactory,
	products catalog.ProductRepositoryFactory,
	companies company.RepositoryFactory,
	logger *zap.Logger,
	opts ...InvoiceServiceOption,
) *InvoiceService {
	s := &InvoiceService{
		invoices:  invoices,
		products:  products,
		companies: companies,
		metrics:   noopInvoiceMetrics{},
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create emits an invoice. Every line is resolved against the owner's
// catalog before anything is written; one unknown product aborts the whole
// invoice with a not-found error naming it.
func (s *InvoiceService) Create(ctx context.Context, scope shared.TenantScope, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	lineReqs := req.lineRequests()
	if len(lineReqs) == 0 {
		return nil, shared.NewValidationError("itens", "an invoice needs at least one item")
	}
	if err := fiscal.ValidateLineRequests(lineReqs); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "emit",
		telemetry.AttrInvoiceLines.Int(len(lineReqs)),
	)
	defer span.End()

	issuer, err := s.companies.ForTenant(scope).FindByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(telemetry.AttrTaxRegime.String(string(issuer.Regime)))

	snapshots, err := s.loadSnapshots(ctx, scope, lineReqs)
	if err != nil {
		return nil, err
	}

	lines, err := fiscal.CollectLines(fiscal.ResolveLines(lineReqs, snapshots, issuer.Regime))
	if err != nil {
		return nil, err
	}

	invoice, err := fiscal.NewInvoice(scope.OwnerID(), issuer.ID, issuer.Name, req.Number, s.now(), lines)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.ForTenant(scope).Save(ctx, invoice); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordInvoiceIssued(ctx, issuer.Regime, invoice.Totals)
	s.logger.Info("Invoice emitted",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("company_id", issuer.ID.String()),
		zap.Int("lines", len(invoice.Lines)),
		zap.String("total", invoice.Totals.Total.StringFixed(2)))

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// List returns the owner's invoices, newest first
func (s *InvoiceService) List(ctx context.Context, scope shared.TenantScope, filter InvoiceListFilter) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.ForTenant(scope).FindAll(ctx, fiscal.InvoiceFilter{CompanyID: filter.CompanyID})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// GetByID returns one invoice with its lines
func (s *InvoiceService) GetByID(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.ForTenant(scope).FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes an invoice and its lines
func (s *InvoiceService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if err := s.invoices.ForTenant(scope).Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

// loadSnapshots fetches every distinct requested product in one query
func (s *InvoiceService) loadSnapshots(ctx context.Context, scope shared.TenantScope, reqs []fiscal.LineRequest) (map[uuid.UUID]fiscal.ProductSnapshot, error) {
	ids := make([]uuid.UUID, 0, len(reqs))
	seen := make(map[uuid.UUID]struct{}, len(reqs))
	for _, r := range reqs {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}

	products, err := s.products.ForTenant(scope).FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	snapshots := make(map[uuid.UUID]fiscal.ProductSnapshot, len(products))
	for i := range products {
		snapshots[products[i].ID] = products[i].Snapshot()
	}
	return snapshots, nil
}
