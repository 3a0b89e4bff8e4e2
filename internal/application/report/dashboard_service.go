package report

import (
	"context"

	appfiscal "github.com/fiscalmanager/backend/internal/application/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/catalog"
	"github.com/fiscalmanager/backend/internal/domain/company"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecentInvoiceLimit caps notas_recentes
const RecentInvoiceLimit = 5

// DashboardService builds the tenant overview. The sums are recomputed
// from every invoice of the owner on each call.
type DashboardService struct {
	companies company.RepositoryFactory
	products  catalog.ProductRepositoryFactory
	invoices  fiscal.InvoiceRepositoryFactory
	logger    *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	companies company.RepositoryFactory,
	products catalog.ProductRepositoryFactory,
	invoices fiscal.InvoiceRepositoryFactory,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		companies: companies,
		products:  products,
		invoices:  invoices,
		logger:    logger,
	}
}

// Get returns counts, invoice sums and the five most recent invoices
func (s *DashboardService) Get(ctx context.Context, scope shared.TenantScope) (*DashboardResponse, error) {
	var (
		companyCount int64
		productCount int64
		summary      fiscal.InvoiceSummary
		recent       []fiscal.Invoice
	)

	invoices := s.invoices.ForTenant(scope)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		companyCount, err = s.companies.ForTenant(scope).Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		productCount, err = s.products.ForTenant(scope).Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary, err = invoices.Summarize(gctx, fiscal.InvoiceFilter{})
		return err
	})
	g.Go(func() (err error) {
		recent, err = invoices.FindAll(gctx, fiscal.InvoiceFilter{Limit: RecentInvoiceLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := summary.Totals.Rounded()
	return &DashboardResponse{
		TotalCompanies: companyCount,
		TotalProducts:  productCount,
		TotalInvoices:  summary.Count,
		TotalValue:     valueobject.NewAmount(totals.Total),
		TotalTaxes:     toTaxTotals(totals),
		RecentInvoices: appfiscal.ToInvoiceResponses(recent),
	}, nil
}
