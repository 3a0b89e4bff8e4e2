package fiscal

import (
	"github.com/fiscalmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Default product rates, in percent
var (
	DefaultICMSRate   = decimal.RequireFromString("18.0")
	DefaultPISRate    = decimal.RequireFromString("1.65")
	DefaultCOFINSRate = decimal.RequireFromString("7.6")
	DefaultIPIRate    = decimal.Zero
)

// simplesICMSFactor is the 30% ICMS reduction granted under Simples Nacional
var simplesICMSFactor = decimal.RequireFromString("0.7")

var hundred = decimal.NewFromInt(100)

// TaxRates are the four product tax rates, each a percentage (18 means 18%)
type TaxRates struct {
	ICMS   decimal.Decimal
	PIS    decimal.Decimal
	COFINS decimal.Decimal
	IPI    decimal.Decimal
}

// DefaultTaxRates returns 18 / 1.65 / 7.6 / 0
func DefaultTaxRates() TaxRates {
	return TaxRates{
		ICMS:   DefaultICMSRate,
		PIS:    DefaultPISRate,
		COFINS: DefaultCOFINSRate,
		IPI:    DefaultIPIRate,
	}
}

// Validate rejects negative rates
func (r TaxRates) Validate() error {
	checks := []struct {
		field string
		rate  decimal.Decimal
	}{
		{"aliquota_icms", r.ICMS},
		{"aliquota_pis", r.PIS},
		{"aliquota_cofins", r.COFINS},
		{"aliquota_ipi", r.IPI},
	}
	for _, c := range checks {
		if c.rate.IsNegative() {
			return shared.NewValidationError(c.field, "%s must not be negative, got %s", c.field, c.rate.String())
		}
	}
	return nil
}

// LineTaxes is the calculated breakdown of one invoice line. Every field is
// rounded to cents.
type LineTaxes struct {
	LineTotal decimal.Decimal
	ICMS      decimal.Decimal
	PIS       decimal.Decimal
	COFINS    decimal.Decimal
	IPI       decimal.Decimal
}

// RoundCents rounds to 2 decimal places, half to even
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// CalculateLineTaxes computes the line total and the four tax amounts.
// Each tax is line_total * rate / 100 on the unrounded line total. Under
// Simples Nacional the raw ICMS is multiplied by 0.7 and then rounded once.
func CalculateLineTaxes(unitPrice, quantity decimal.Decimal, rates TaxRates, regime TaxRegime) LineTaxes {
	gross := unitPrice.Mul(quantity)

	icms := gross.Mul(rates.ICMS).Div(hundred)
	if regime == SimplesNacional {
		icms = icms.Mul(simplesICMSFactor)
	}

	return LineTaxes{
		LineTotal: RoundCents(gross),
		ICMS:      RoundCents(icms),
		PIS:       RoundCents(gross.Mul(rates.PIS).Div(hundred)),
		COFINS:    RoundCents(gross.Mul(rates.COFINS).Div(hundred)),
		IPI:       RoundCents(gross.Mul(rates.IPI).Div(hundred)),
	}
}

// InvoiceTotals aggregates the lines of an invoice
type InvoiceTotals struct {
	Total  decimal.Decimal
	ICMS   decimal.Decimal
	PIS    decimal.Decimal
	COFINS decimal.Decimal
	IPI    decimal.Decimal
}

// Add accumulates one set of line taxes without rounding
func (t InvoiceTotals) Add(l LineTaxes) InvoiceTotals {
	return InvoiceTotals{
		Total:  t.Total.Add(l.LineTotal),
		ICMS:   t.ICMS.Add(l.ICMS),
		PIS:    t.PIS.Add(l.PIS),
		COFINS: t.COFINS.Add(l.COFINS),
		IPI:    t.IPI.Add(l.IPI),
	}
}

// Plus adds another set of totals without rounding
func (t InvoiceTotals) Plus(o InvoiceTotals) InvoiceTotals {
	return InvoiceTotals{
		Total:  t.Total.Add(o.Total),
		ICMS:   t.ICMS.Add(o.ICMS),
		PIS:    t.PIS.Add(o.PIS),
		COFINS: t.COFINS.Add(o.COFINS),
		IPI:    t.IPI.Add(o.IPI),
	}
}

// Rounded rounds every total to cents
func (t InvoiceTotals) Rounded() InvoiceTotals {
	return InvoiceTotals{
		Total:  RoundCents(t.Total),
		ICMS:   RoundCents(t.ICMS),
		PIS:    RoundCents(t.PIS),
		COFINS: RoundCents(t.COFINS),
		IPI:    RoundCents(t.IPI),
	}
}

// SumTotals adds the already-rounded line amounts and rounds each sum again.
// The second rounding is kept for compatibility with stored invoices.
func SumTotals(lines []LineTaxes) InvoiceTotals {
	var t InvoiceTotals
	for _, l := range lines {
		t = t.Add(l)
	}
	return t.Rounded()
}
