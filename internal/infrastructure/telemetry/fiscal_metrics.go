package telemetry

import (
	"context"
	"errors"

	"github.com/fiscalmanager/backend/internal/domain/fiscal"
	"github.com/fiscalmanager/backend/internal/domain/report"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives a nil meter.
var ErrMeterNil = errors.New("meter cannot be nil")

// FiscalMetrics counts emitted invoices, the tax they carry and generated
// reports. Amounts are exported in reais as float counters.
type FiscalMetrics struct {
	invoicesIssued   *Counter
	invoiceAmount    *FloatCounter
	taxAmount        *FloatCounter
	reportsGenerated *Counter
	reportSize       *Histogram
	reportInvoices   *Histogram
}

// NewFiscalMetrics creates the fiscal instruments on meter
func NewFiscalMetrics(meter metric.Meter) (*FiscalMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &FiscalMetrics{}
	var err error

	if m.invoicesIssued, err = NewCounter(meter,
		"fiscal_invoice_issued_total", "Total number of invoices issued", "{invoices}"); err != nil {
		return nil, err
	}
	if m.invoiceAmount, err = NewFloatCounter(meter,
		"fiscal_invoice_amount_total", "Sum of issued invoice totals", "BRL"); err != nil {
		return nil, err
	}
	if m.taxAmount, err = NewFloatCounter(meter,
		"fiscal_tax_amount_total", "Sum of taxes on issued invoices, by tax", "BRL"); err != nil {
		return nil, err
	}
	if m.reportsGenerated, err = NewCounter(meter,
		"fiscal_report_generated_total", "Total number of fiscal reports generated", "{reports}"); err != nil {
		return nil, err
	}
	if m.reportSize, err = NewHistogram(meter, HistogramOpts{
		Name:        "fiscal_report_size_bytes",
		Description: "Size of generated fiscal reports",
		Unit:        "By",
		Boundaries:  SizeBuckets,
	}); err != nil {
		return nil, err
	}
	if m.reportInvoices, err = NewHistogram(meter, HistogramOpts{
		Name:        "fiscal_report_invoices",
		Description: "Number of invoices covered by a generated report",
		Unit:        "{invoices}",
		Boundaries:  []float64{0, 10, 100, 1000, 10000},
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordInvoiceIssued records one emitted invoice
func (m *FiscalMetrics) RecordInvoiceIssued(ctx context.Context, regime fiscal.TaxRegime, totals fiscal.InvoiceTotals) {
	regimeAttr := AttrTaxRegime.String(string(regime))
	m.invoicesIssued.Inc(ctx, regimeAttr)
	m.invoiceAmount.Add(ctx, totals.Total.InexactFloat64(), regimeAttr)

	for _, tax := range []struct {
		name   string
		amount float64
	}{
		{"icms", totals.ICMS.InexactFloat64()},
		{"pis", totals.PIS.InexactFloat64()},
		{"cofins", totals.COFINS.InexactFloat64()},
		{"ipi", totals.IPI.InexactFloat64()},
	} {
		m.taxAmount.Add(ctx, tax.amount, regimeAttr, AttrTax.String(tax.name))
	}
}

// RecordReportGenerated records one rendered report
func (m *FiscalMetrics) RecordReportGenerated(ctx context.Context, format report.Format, invoices int, size int) {
	attrs := []attribute.KeyValue{AttrReportFormat.String(string(format))}
	m.reportsGenerated.Inc(ctx, attrs...)
	m.reportSize.Record(ctx, float64(size), attrs...)
	m.reportInvoices.Record(ctx, float64(invoices), attrs...)
}
