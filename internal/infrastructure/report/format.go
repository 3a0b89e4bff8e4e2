// Package report renders the fiscal report as PDF (maroto) and XLSX
// (excelize). Amounts are printed the Brazilian way, "R$ 1.234,56".
package report

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// dateLayout is the dd/mm/yyyy hh:mm layout used in both formats
const dateLayout = "02/01/2006 15:04"

// Column headers shared by the PDF invoice table and the spreadsheet
var invoiceHeaders = []string{
	"Número NF", "Empresa", "Data Emissão", "Valor Total", "ICMS", "PIS", "COFINS", "IPI",
}

var ptBR = language.BrazilianPortuguese

// formatMoney renders d as "R$ 1.234,56"
func formatMoney(d decimal.Decimal) string {
	p := message.NewPrinter(ptBR)
	return p.Sprintf("R$ %v", number.Decimal(d.RoundBank(2).InexactFloat64(), number.Scale(2)))
}

// formatCount renders n with pt-BR digit grouping
func formatCount(n int64) string {
	return message.NewPrinter(ptBR).Sprint(number.Decimal(n))
}

// formatDate renders t in the report's location
func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(dateLayout)
}
