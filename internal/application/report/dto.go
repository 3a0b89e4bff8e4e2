package report

import (
	"time"

	appfiscal "github.com/fiscalmanager/backend/internal/application/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TaxTotalsResponse holds the four tax sums
type TaxTotalsResponse struct {
	ICMS   valueobject.Amount `json:"icms"`
	PIS    valueobject.Amount `json:"pis"`
	COFINS valueobject.Amount `json:"cofins"`
	IPI    valueobject.Amount `json:"ipi"`
}

func toTaxTotals(t fiscal.InvoiceTotals) TaxTotalsResponse {
	return TaxTotalsResponse{
		ICMS:   valueobject.NewAmount(t.ICMS),
		PIS:    valueobject.NewAmount(t.PIS),
		COFINS: valueobject.NewAmount(t.COFINS),
		IPI:    valueobject.NewAmount(t.IPI),
	}
}

// DashboardResponse is the tenant overview
type DashboardResponse struct {
	TotalCompanies int64                       `json:"total_empresas"`
	TotalProducts  int64                       `json:"total_produtos"`
	TotalInvoices  int64                       `json:"total_notas"`
	TotalValue     valueobject.Amount          `json:"total_valor_notas"`
	TotalTaxes     TaxTotalsResponse           `json:"total_impostos"`
	RecentInvoices []appfiscal.InvoiceResponse `json:"notas_recentes"`
}

// ReportFilter narrows the invoices a report covers
type ReportFilter struct {
	CompanyID *uuid.UUID `form:"empresa_id"`
}

// GeneratedReport is a rendered report ready to be served
type GeneratedReport struct {
	Filename    string
	ContentType string
	Body        []byte
	ArchiveKey  string // empty when the report was not archived
}

// ArchivedReportResponse describes a stored report
type ArchivedReportResponse struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
