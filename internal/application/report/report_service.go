package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/report"
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/fiscalmanager/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrArchiveDisabled is returned by ListArchived when no archive is configured
var ErrArchiveDisabled = errors.New("report archive is not configured")

// ReportMetrics receives a notification for every generated report
type ReportMetrics interface {
	RecordReportGenerated(ctx context.Context, format report.Format, invoices int, size int)
}

type noopReportMetrics struct{}

func (noopReportMetrics) RecordReportGenerated(context.Context, report.Format, int, int) {}

// ReportService renders the fiscal report of an owner and optionally keeps a
// copy of every generated document in an archive.
type ReportService struct {
	invoices  fiscal.InvoiceRepositoryFactory
	renderers map[report.Format]report.Renderer
	archive   report.Archive
	metrics   ReportMetrics
	now       func() time.Time
	logger    *zap.Logger
}

// ReportServiceOption configures a ReportService
type ReportServiceOption func(*ReportService)

// WithArchive stores generated reports in a
func WithArchive(a report.Archive) ReportServiceOption {
	return func(s *ReportService) { s.archive = a }
}

// WithReportMetrics reports generated documents to m
func WithReportMetrics(m ReportMetrics) ReportServiceOption {
	return func(s *ReportService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithReportClock overrides the generation clock
func WithReportClock(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) { s.now = now }
}

// NewReportService creates a new ReportService with one renderer per format
func NewReportService(
	invoices fiscal.InvoiceRepositoryFactory,
	renderers []report.Renderer,
	logger *zap.Logger,
	opts ...ReportServiceOption,
) *ReportService {
	s := &ReportService{
		invoices:  invoices,
		renderers: make(map[report.Format]report.Renderer, len(renderers)),
		metrics:   noopReportMetrics{},
		now:       time.Now,
		logger:    logger,
	}
	for _, r := range renderers {
		s.renderers[r.Format()] = r
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate renders every invoice of the owner, newest first, in the given
// format. A failed archive upload is logged and does not fail the request.
func (s *ReportService) Generate(ctx context.Context, scope shared.TenantScope, format report.Format, filter ReportFilter) (*GeneratedReport, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, shared.NewValidationError("formato", "formato de relatório não suportado: %q", format)
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "report", "generate",
		telemetry.AttrReportFormat.String(string(format)),
	)
	defer span.End()

	invoices, err := s.invoices.ForTenant(scope).FindAll(ctx, fiscal.InvoiceFilter{CompanyID: filter.CompanyID})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	doc := report.FiscalReport{
		GeneratedAt: s.now(),
		Summary:     summarize(invoices),
		Invoices:    invoices,
	}
	var body []byte
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("report_render", map[string]string{
		"format": string(format),
	}), func(context.Context) {
		body, err = renderer.Render(doc)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	out := &GeneratedReport{
		Filename:    format.Filename(),
		ContentType: format.ContentType(),
		Body:        body,
	}

	if s.archive != nil {
		key := report.ArchiveKey(scope.OwnerID(), doc.GeneratedAt, format)
		if err := s.archive.Put(ctx, key, body, out.ContentType); err != nil {
			s.logger.Warn("Failed to archive report",
				zap.String("key", key),
				zap.Error(err),
			)
		} else {
			out.ArchiveKey = key
		}
	}

	s.metrics.RecordReportGenerated(ctx, format, len(invoices), len(body))
	s.logger.Info("Report generated",
		zap.String("owner_id", scope.OwnerID().String()),
		zap.String("format", string(format)),
		zap.Int("invoices", len(invoices)),
		zap.Int("bytes", len(body)),
	)
	return out, nil
}

// ListArchived returns the owner's archived reports
func (s *ReportService) ListArchived(ctx context.Context, scope shared.TenantScope) ([]ArchivedReportResponse, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	items, err := s.archive.List(ctx, report.ArchivePrefix(scope.OwnerID()))
	if err != nil {
		return nil, fmt.Errorf("list archived reports: %w", err)
	}
	out := make([]ArchivedReportResponse, len(items))
	for i, it := range items {
		out[i] = ArchivedReportResponse{Key: it.Key, Size: it.Size, LastModified: it.LastModified}
	}
	return out, nil
}

// ArchiveEnabled reports whether generated reports are archived
func (s *ReportService) ArchiveEnabled() bool {
	return s.archive != nil
}

func summarize(invoices []fiscal.Invoice) fiscal.InvoiceSummary {
	var totals fiscal.InvoiceTotals
	for _, inv := range invoices {
		totals = totals.Plus(inv.Totals)
	}
	return fiscal.InvoiceSummary{Count: int64(len(invoices)), Totals: totals.Rounded()}
}
